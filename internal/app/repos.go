package app

import (
	"gorm.io/gorm"

	"github.com/regdesk/regdesk-backend/internal/data/repos"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type Repos struct {
	Registration repos.RegistrationRepo
	Payment      repos.PaymentRepo
	AdminUser    repos.AdminUserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Registration: repos.NewRegistrationRepo(db, log),
		Payment:      repos.NewPaymentRepo(db, log),
		AdminUser:    repos.NewAdminUserRepo(db, log),
	}
}
