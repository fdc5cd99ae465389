package userserver

import (
	"errors"

	userapp "github.com/clearsolutions/user-api/internal/domains/users/application"
	userports "github.com/clearsolutions/user-api/internal/domains/users/ports"
	"github.com/clearsolutions/user-api/internal/shared/apierrors"
)

// newUserErrorResponder maps the application error taxonomy onto the wire
// categories. Anything unrecognized (store failures included) stays a 400.
func newUserErrorResponder() *apierrors.Responder {
	return apierrors.NewResponder(
		func(err error) (apierrors.APIError, bool) {
			if errors.Is(err, userports.ErrNotFound) {
				return apierrors.NotFound(err.Error()), true
			}
			return apierrors.APIError{}, false
		},
		func(err error) (apierrors.APIError, bool) {
			if errors.Is(err, userapp.ErrValidation) || errors.Is(err, userapp.ErrBusinessRule) {
				return apierrors.BadRequest(err.Error()), true
			}
			return apierrors.APIError{}, false
		},
	)
}
