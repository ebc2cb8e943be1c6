package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

type Payment struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RegistrationID uuid.UUID `gorm:"type:uuid;not null;column:registration_id" json:"registration_id"`
	Amount         int64     `gorm:"not null;default:0;column:amount" json:"amount"`
	Method         string    `gorm:"column:method" json:"method"`
	Status         string    `gorm:"not null;default:'pending';column:status" json:"status"`
	Reference      string    `gorm:"uniqueIndex;column:reference" json:"reference"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payment"
}

var PaymentSearchFields = []string{"reference", "method"}
