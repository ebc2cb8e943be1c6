package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/regdesk/regdesk-backend/internal/data/repos"
	"github.com/regdesk/regdesk-backend/internal/data/repos/testutil"
	"github.com/regdesk/regdesk-backend/internal/domain"
	"github.com/regdesk/regdesk-backend/internal/events"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/services"
)

func TestRegistrationServiceCreateAndPaymentFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	regRepo := repos.NewRegistrationRepo(tx, log)
	payRepo := repos.NewPaymentRepo(tx, log)
	bus := events.NewBus(log)
	svc := services.NewRegistrationService(tx, log, regRepo, payRepo, bus)

	// the same wiring the payments module hook performs at boot
	bus.Subscribe(events.TopicPaymentCompleted, svc.MarkRegistrationPaid)

	reg, payment, err := svc.CreateRegistration(ctx, services.CreateRegistrationInput{
		Name:   "Ana Gómez",
		Email:  " Ana@Example.COM ",
		Amount: 1500,
	})
	if err != nil {
		t.Fatalf("create registration: %v", err)
	}
	if reg.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", reg.Email)
	}
	if reg.Status != domain.RegistrationStatusPending {
		t.Fatalf("new registration should be pending, got %q", reg.Status)
	}
	if payment.Status != domain.PaymentStatusPending || !strings.HasPrefix(payment.Reference, "REG-") {
		t.Fatalf("unexpected payment %+v", payment)
	}

	notified, err := svc.HandlePaymentNotify(ctx, payment.Reference, domain.PaymentStatusSuccess, "card")
	if err != nil {
		t.Fatalf("payment notify: %v", err)
	}
	if notified.Status != domain.PaymentStatusSuccess || notified.Method != "card" {
		t.Fatalf("unexpected notified payment %+v", notified)
	}

	// Publish is synchronous, so the listener has already run.
	rows, err := regRepo.GetByIDs(ctx, nil, []uuid.UUID{reg.ID})
	if err != nil {
		t.Fatalf("reload registration: %v", err)
	}
	if rows[0].Status != domain.RegistrationStatusPaid {
		t.Fatalf("registration should be paid after the completed event, got %q", rows[0].Status)
	}
}

func TestRegistrationServiceFailedPaymentLeavesRegistrationPending(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	regRepo := repos.NewRegistrationRepo(tx, log)
	payRepo := repos.NewPaymentRepo(tx, log)
	bus := events.NewBus(log)
	svc := services.NewRegistrationService(tx, log, regRepo, payRepo, bus)
	bus.Subscribe(events.TopicPaymentCompleted, svc.MarkRegistrationPaid)

	reg, payment, err := svc.CreateRegistration(ctx, services.CreateRegistrationInput{
		Name:   "Pat",
		Email:  "pat@example.com",
		Amount: 100,
	})
	if err != nil {
		t.Fatalf("create registration: %v", err)
	}

	if _, err := svc.HandlePaymentNotify(ctx, payment.Reference, domain.PaymentStatusFailed, ""); err != nil {
		t.Fatalf("payment notify: %v", err)
	}

	rows, err := regRepo.GetByIDs(ctx, nil, []uuid.UUID{reg.ID})
	if err != nil {
		t.Fatalf("reload registration: %v", err)
	}
	if rows[0].Status != domain.RegistrationStatusPending {
		t.Fatalf("failed payment must not mark the registration paid, got %q", rows[0].Status)
	}
}

func TestRegistrationServiceValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	svc := services.NewRegistrationService(
		tx, log,
		repos.NewRegistrationRepo(tx, log),
		repos.NewPaymentRepo(tx, log),
		events.NewBus(log),
	)

	_, _, err := svc.CreateRegistration(ctx, services.CreateRegistrationInput{Email: "x@example.com"})
	if apierr.From(err).Status != 400 {
		t.Fatalf("expected 400 for missing name, got %v", err)
	}

	_, _, err = svc.CreateRegistration(ctx, services.CreateRegistrationInput{
		Name: "N", Email: "x@example.com", Amount: -5,
	})
	if apierr.From(err).Status != 400 {
		t.Fatalf("expected 400 for negative amount, got %v", err)
	}

	_, err = svc.HandlePaymentNotify(ctx, "REG-DOESNOTEXIST", domain.PaymentStatusSuccess, "")
	if apierr.From(err).Status != 404 {
		t.Fatalf("expected 404 for unknown reference, got %v", err)
	}

	_, err = svc.HandlePaymentNotify(ctx, "REG-DOESNOTEXIST", "refunded", "")
	if apierr.From(err).Status != 400 {
		t.Fatalf("expected 400 for unknown status, got %v", err)
	}
}
