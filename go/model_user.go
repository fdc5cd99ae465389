package userserver

import "github.com/oapi-codegen/runtime/types"

// User is the outward-facing user representation. BirthDate is a pointer so
// an omitted date is distinguishable from a present one during binding.
type User struct {
	Id        int64       `json:"id,omitempty"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	BirthDate *types.Date `json:"birthDate,omitempty"`
	Address   string      `json:"address,omitempty"`
	Phone     string      `json:"phone,omitempty"`
}

// CreateUserResponse carries the identifier assigned on creation.
type CreateUserResponse struct {
	Id int64 `json:"id"`
}
