package apierrors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Respond sends an APIError with its status code, filling in the request path.
func Respond(c *gin.Context, apiErr APIError) {
	if apiErr.Path == "" {
		apiErr.Path = c.Request.URL.Path
	}
	c.JSON(apiErr.Status(), apiErr)
}

// ErrorMapper translates a domain/application error into an APIError.
// A false second return passes the error to the next mapper in the chain.
type ErrorMapper func(err error) (APIError, bool)

// Responder converts errors to structured responses through a mapper chain.
type Responder struct {
	mappers []ErrorMapper
}

// NewResponder builds a responder with the given mapper chain.
func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// RespondError tries each mapper in order. Unrecognized errors surface as
// BAD_REQUEST: store failures are treated as client-visible here rather than
// masked as server faults.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		Respond(c, apiErr)
		return
	}
	for _, mapper := range r.mappers {
		if mapped, ok := mapper(err); ok {
			Respond(c, mapped)
			return
		}
	}
	Respond(c, BadRequest(err.Error()))
}
