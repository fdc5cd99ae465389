package userserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime/types"

	userhttpmapper "github.com/clearsolutions/user-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/clearsolutions/user-api/internal/domains/users/ports"
	"github.com/clearsolutions/user-api/internal/shared/apierrors"
)

// UserAPI implements the user HTTP endpoints.
type UserAPI struct {
	service   userports.Service
	responder *apierrors.Responder
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service, responder: newUserErrorResponder()}
}

func toTransportUser(model User) userhttpmapper.User {
	user := userhttpmapper.User{
		ID:        model.Id,
		Email:     model.Email,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Address:   model.Address,
		Phone:     model.Phone,
	}
	if model.BirthDate != nil {
		user.BirthDate = model.BirthDate.Time
	}
	return user
}

func fromTransportUser(user userhttpmapper.User) User {
	birthDate := types.Date{Time: user.BirthDate}
	return User{
		Id:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: &birthDate,
		Address:   user.Address,
		Phone:     user.Phone,
	}
}

func fromTransportUsers(users []userhttpmapper.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, fromTransportUser(user))
	}
	return result
}

// Post /api/v1/users
// Create a user; responds with the store-assigned identifier.
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.BadRequest(err.Error()))
		return
	}
	user, err := userhttpmapper.ToDomainUser(toTransportUser(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	id, err := api.service.CreateUser(c.Request.Context(), user)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CreateUserResponse{Id: id})
}

// Put /api/v1/users
// Update a user; overwrites every mutable field with the payload values.
func (api *UserAPI) UpdateUser(c *gin.Context) {
	var payload User
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.BadRequest(err.Error()))
		return
	}
	if payload.Id == 0 {
		apierrors.Respond(c, apierrors.BadRequest("id is required"))
		return
	}
	user, err := userhttpmapper.ToDomainUser(toTransportUser(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	if err := api.service.UpdateUser(c.Request.Context(), user); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Delete /api/v1/users/:userId
// Delete a user by its textual identifier.
func (api *UserAPI) DeleteUser(c *gin.Context) {
	if err := api.service.DeleteUser(c.Request.Context(), c.Param("userId")); err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Get /api/v1/users?from=YYYY-MM-DD&to=YYYY-MM-DD
// Search users whose birth date falls inside the inclusive range.
func (api *UserAPI) SearchByBirthDateRange(c *gin.Context) {
	from, ok := dateQueryParam(c, "from")
	if !ok {
		return
	}
	to, ok := dateQueryParam(c, "to")
	if !ok {
		return
	}
	users, err := api.service.SearchByBirthDateRange(c.Request.Context(), from, to)
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportUsers(userhttpmapper.FromDomainUsers(users)))
}

func dateQueryParam(c *gin.Context, name string) (time.Time, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		apierrors.Respond(c, apierrors.BadRequest(fmt.Sprintf("required parameter is missing: %s", name)))
		return time.Time{}, false
	}
	value, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		apierrors.Respond(c, apierrors.BadRequest(fmt.Sprintf("invalid date for parameter %s: %s", name, raw)))
		return time.Time{}, false
	}
	return value, true
}
