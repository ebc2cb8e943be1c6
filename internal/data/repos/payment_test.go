package repos_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/regdesk/regdesk-backend/internal/data/repos"
	"github.com/regdesk/regdesk-backend/internal/data/repos/testutil"
	"github.com/regdesk/regdesk-backend/internal/domain"
)

func TestPaymentRepoGroupStatisticsSums(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewPaymentRepo(db, testutil.Logger(t))

	before, err := repo.GroupStatistics(ctx, tx, "status", "amount")
	if err != nil {
		t.Fatalf("group statistics baseline: %v", err)
	}

	reg := testutil.SeedRegistration(t, ctx, tx, "payer@example.com", domain.RegistrationStatusPending, 0)
	testutil.SeedPayment(t, ctx, tx, reg.ID, "PAY-"+uuid.New().String(), domain.PaymentStatusSuccess, 1000)
	testutil.SeedPayment(t, ctx, tx, reg.ID, "PAY-"+uuid.New().String(), domain.PaymentStatusSuccess, 500)
	testutil.SeedPayment(t, ctx, tx, reg.ID, "PAY-"+uuid.New().String(), domain.PaymentStatusPending, 250)

	after, err := repo.GroupStatistics(ctx, tx, "status", "amount")
	if err != nil {
		t.Fatalf("group statistics: %v", err)
	}

	successBefore := statBy(before, domain.PaymentStatusSuccess)
	successAfter := statBy(after, domain.PaymentStatusSuccess)
	if successAfter.Count-successBefore.Count != 2 {
		t.Fatalf("expected success count +2, got %d -> %d", successBefore.Count, successAfter.Count)
	}
	if successAfter.Sum-successBefore.Sum != 1500 {
		t.Fatalf("expected success sum +1500, got %d -> %d", successBefore.Sum, successAfter.Sum)
	}
}

func TestPaymentRepoRecordOutcome(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewPaymentRepo(db, testutil.Logger(t))

	reg := testutil.SeedRegistration(t, ctx, tx, "outcome@example.com", domain.RegistrationStatusPending, 100)
	reference := "PAY-" + uuid.New().String()
	payment := testutil.SeedPayment(t, ctx, tx, reg.ID, reference, domain.PaymentStatusPending, 100)

	byRef, err := repo.GetByReferences(ctx, tx, []string{reference})
	if err != nil {
		t.Fatalf("get by references: %v", err)
	}
	if len(byRef) != 1 || byRef[0].ID != payment.ID {
		t.Fatalf("expected seeded payment by reference, got %+v", byRef)
	}

	if err := repo.RecordOutcome(ctx, tx, payment.ID, domain.PaymentStatusSuccess, "card"); err != nil {
		t.Fatalf("record outcome: %v", err)
	}

	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{payment.ID})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(rows))
	}
	if rows[0].Status != domain.PaymentStatusSuccess || rows[0].Method != "card" {
		t.Fatalf("outcome not persisted: %+v", rows[0])
	}
}

func TestPaymentRepoRecordOutcomeKeepsMethodWhenAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := repos.NewPaymentRepo(db, testutil.Logger(t))

	reg := testutil.SeedRegistration(t, ctx, tx, "keep@example.com", domain.RegistrationStatusPending, 100)
	payment := testutil.SeedPayment(t, ctx, tx, reg.ID, "PAY-"+uuid.New().String(), domain.PaymentStatusPending, 100)

	if err := repo.RecordOutcome(ctx, tx, payment.ID, domain.PaymentStatusFailed, ""); err != nil {
		t.Fatalf("record outcome: %v", err)
	}

	rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{payment.ID})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if rows[0].Status != domain.PaymentStatusFailed {
		t.Fatalf("expected failed status, got %q", rows[0].Status)
	}
	if rows[0].Method != "transfer" {
		t.Fatalf("empty method must not clobber the stored one, got %q", rows[0].Method)
	}
}
