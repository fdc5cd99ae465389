package mapper

import (
	"time"

	userdomain "github.com/clearsolutions/user-api/internal/domains/users/domain"
)

// User represents the transport-level user payload.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	BirthDate time.Time
	Address   string
	Phone     string
}

// ToDomainUser converts a transport user to its domain counterpart, running
// the field-level validation as it goes.
func ToDomainUser(model User) (*userdomain.User, error) {
	user := &userdomain.User{ID: model.ID}
	if err := user.SetEmail(model.Email); err != nil {
		return nil, err
	}
	if err := user.SetName(model.FirstName, model.LastName); err != nil {
		return nil, err
	}
	if err := user.SetBirthDate(model.BirthDate); err != nil {
		return nil, err
	}
	if err := user.SetPhone(model.Phone); err != nil {
		return nil, err
	}
	user.SetAddress(model.Address)
	return user, nil
}

// FromDomainUser copies every field of a domain user into its transport
// representation verbatim.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: user.BirthDate,
		Address:   user.Address,
		Phone:     user.Phone,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
