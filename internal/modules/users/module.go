package users

import (
	apphttp "github.com/regdesk/regdesk-backend/internal/http"
	"github.com/regdesk/regdesk-backend/internal/http/handlers"
)

// Module carries the two admin identity surfaces: the unauthenticated login
// endpoint and the guarded user management CRUD.
func Module(authHandler *handlers.AuthHandler, usersHandler *handlers.UsersHandler) apphttp.Module {
	return apphttp.Module{
		Name: "users",
		Kind: apphttp.KindDual,
		AuthRoutes: func(s apphttp.Surfaces) {
			s.AdminAuth.POST("/login", authHandler.Login)
		},
		AdminRoutes: func(s apphttp.Surfaces) {
			s.Admin.GET("/users", usersHandler.List)
			s.Admin.POST("/users", usersHandler.Create)
			s.Admin.PUT("/users/:id", usersHandler.Update)
			s.Admin.DELETE("/users/:id", usersHandler.Delete)
		},
	}
}
