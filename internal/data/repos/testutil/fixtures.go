package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/regdesk/regdesk-backend/internal/domain"
)

func SeedRegistration(tb testing.TB, ctx context.Context, tx *gorm.DB, email, status string, amount int64) *domain.Registration {
	tb.Helper()
	reg := &domain.Registration{
		ID:           uuid.New(),
		Name:         "Attendee",
		Email:        email,
		Phone:        "555-0100",
		Organization: "Acme",
		Status:       status,
		Amount:       amount,
		Fields:       datatypes.JSON([]byte("{}")),
	}
	if err := tx.WithContext(ctx).Create(reg).Error; err != nil {
		tb.Fatalf("seed registration: %v", err)
	}
	return reg
}

func SeedPayment(tb testing.TB, ctx context.Context, tx *gorm.DB, regID uuid.UUID, reference, status string, amount int64) *domain.Payment {
	tb.Helper()
	p := &domain.Payment{
		ID:             uuid.New(),
		RegistrationID: regID,
		Amount:         amount,
		Method:         "transfer",
		Status:         status,
		Reference:      reference,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed payment: %v", err)
	}
	return p
}

func SeedAdminUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username, role string) *domain.AdminUser {
	tb.Helper()
	u := &domain.AdminUser{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: "$2a$10$seedseedseedseedseedsePlaceholderHashValueAbcdefghi",
		Name:     "Admin " + username,
		Role:     role,
		Status:   domain.AdminStatusActive,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed admin user: %v", err)
	}
	return u
}

func PtrTime(v time.Time) *time.Time { return &v }

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }
