package app

import (
	"github.com/regdesk/regdesk-backend/internal/http/handlers"
	"github.com/regdesk/regdesk-backend/internal/http/middleware"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Registration *handlers.RegistrationHandler
	Admin        *handlers.AdminHandler
	Users        *handlers.UsersHandler
}

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       handlers.NewHealthHandler(),
		Auth:         handlers.NewAuthHandler(services.Auth),
		Registration: handlers.NewRegistrationHandler(services.Registration),
		Admin:        handlers.NewAdminHandler(services.Admin),
		Users:        handlers.NewUsersHandler(services.Admin),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, services.Auth),
	}
}
