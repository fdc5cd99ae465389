package userserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

type Routes []Route

// ApiHandleFunctions groups the API sections served by the router.
type ApiHandleFunctions struct {
	UserAPI UserAPI
}

// NewRouter returns a gin engine with all routes registered.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine registers all routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		handler := route.HandlerFunc
		if handler == nil {
			handler = defaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, handler)
		case http.MethodPost:
			router.POST(route.Pattern, handler)
		case http.MethodPut:
			router.PUT(route.Pattern, handler)
		case http.MethodDelete:
			router.DELETE(route.Pattern, handler)
		}
	}
	return router
}

func defaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) Routes {
	userAPI := handleFunctions.UserAPI
	return Routes{
		{"CreateUser", http.MethodPost, "/api/v1/users", userAPI.CreateUser},
		{"UpdateUser", http.MethodPut, "/api/v1/users", userAPI.UpdateUser},
		{"DeleteUser", http.MethodDelete, "/api/v1/users/:userId", userAPI.DeleteUser},
		{"SearchUsersByBirthDateRange", http.MethodGet, "/api/v1/users", userAPI.SearchByBirthDateRange},
	}
}
