// Package apierrors renders the service's structured error body:
// {"error": <category>, "message": <text>, "path": <request path>}.
package apierrors

import (
	"fmt"
	"net/http"
)

// Categories mirror the HTTP status names exposed to clients.
const (
	CategoryBadRequest = "BAD_REQUEST"
	CategoryNotFound   = "NOT_FOUND"
	CategoryInternal   = "INTERNAL_SERVER_ERROR"
)

// APIError is the wire shape of every error response.
type APIError struct {
	Category string `json:"error"`
	Message  string `json:"message"`
	Path     string `json:"path"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Status maps the category back to its HTTP status code.
func (e APIError) Status() int {
	switch e.Category {
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// BadRequest builds a 400 error body.
func BadRequest(message string) APIError {
	return APIError{Category: CategoryBadRequest, Message: message}
}

// NotFound builds a 404 error body.
func NotFound(message string) APIError {
	return APIError{Category: CategoryNotFound, Message: message}
}

// Internal builds a 500 error body.
func Internal(message string) APIError {
	return APIError{Category: CategoryInternal, Message: message}
}
