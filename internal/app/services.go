package app

import (
	"gorm.io/gorm"

	"github.com/regdesk/regdesk-backend/internal/events"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
	"github.com/regdesk/regdesk-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	Registration services.RegistrationService
	Admin        services.AdminService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients, bus *events.Bus) Services {
	log.Info("Wiring services...")

	authService := services.NewAuthService(db, log, repos.AdminUser, cfg.JWTSecretKey, cfg.AccessTokenTTL)
	registrationService := services.NewRegistrationService(db, log, repos.Registration, repos.Payment, bus)
	adminService := services.NewAdminService(db, log, repos.Registration, repos.Payment, repos.AdminUser, clients.StatsCache, cfg.ReportLocation)

	return Services{
		Auth:         authService,
		Registration: registrationService,
		Admin:        adminService,
	}
}
