package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusPaid      = "paid"
	RegistrationStatusCancelled = "cancelled"
)

type Registration struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string         `gorm:"not null;column:name" json:"name"`
	Email        string         `gorm:"not null;column:email" json:"email"`
	Phone        string         `gorm:"column:phone" json:"phone"`
	Organization string         `gorm:"column:organization" json:"organization"`
	Status       string         `gorm:"not null;default:'pending';column:status" json:"status"`
	Amount       int64          `gorm:"not null;default:0;column:amount" json:"amount"`
	Fields       datatypes.JSON `gorm:"column:fields" json:"fields"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Registration) TableName() string {
	return "registration"
}

// RegistrationSearchFields are the text columns free-text search matches
// against, case-insensitively.
var RegistrationSearchFields = []string{"name", "email", "phone", "organization"}
