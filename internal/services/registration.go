package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/regdesk/regdesk-backend/internal/data/repos"
	"github.com/regdesk/regdesk-backend/internal/domain"
	"github.com/regdesk/regdesk-backend/internal/events"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
	"github.com/regdesk/regdesk-backend/internal/pkg/normalize"
)

type CreateRegistrationInput struct {
	Name         string
	Email        string
	Phone        string
	Organization string
	Amount       int64
	Fields       []byte
}

type RegistrationService interface {
	CreateRegistration(ctx context.Context, input CreateRegistrationInput) (*domain.Registration, *domain.Payment, error)
	// HandlePaymentNotify resolves the payment by its provider reference,
	// records the outcome, and publishes the completion event on success.
	HandlePaymentNotify(ctx context.Context, reference, status, method string) (*domain.Payment, error)
	// MarkRegistrationPaid is the payment-completed listener wired by the
	// payments module at registration time.
	MarkRegistrationPaid(ctx context.Context, event any)
}

type registrationService struct {
	db               *gorm.DB
	log              *logger.Logger
	registrationRepo repos.RegistrationRepo
	paymentRepo      repos.PaymentRepo
	bus              *events.Bus
}

func NewRegistrationService(db *gorm.DB, log *logger.Logger, registrationRepo repos.RegistrationRepo, paymentRepo repos.PaymentRepo, bus *events.Bus) RegistrationService {
	serviceLog := log.With("service", "RegistrationService")
	return &registrationService{
		db:               db,
		log:              serviceLog,
		registrationRepo: registrationRepo,
		paymentRepo:      paymentRepo,
		bus:              bus,
	}
}

func (s *registrationService) CreateRegistration(ctx context.Context, input CreateRegistrationInput) (*domain.Registration, *domain.Payment, error) {
	name := strings.TrimSpace(input.Name)
	email := normalize.Lower(input.Email)
	if name == "" || email == "" {
		return nil, nil, apierr.Validation("invalid_request", fmt.Errorf("name and email are required"))
	}
	if input.Amount < 0 {
		return nil, nil, apierr.Validation("invalid_request", fmt.Errorf("amount cannot be negative"))
	}

	fields := input.Fields
	if len(fields) == 0 {
		fields = []byte("{}")
	}

	reg := &domain.Registration{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		Organization: strings.TrimSpace(input.Organization),
		Status:       domain.RegistrationStatusPending,
		Amount:       input.Amount,
		Fields:       datatypes.JSON(fields),
	}
	payment := &domain.Payment{
		ID:             uuid.New(),
		RegistrationID: reg.ID,
		Amount:         input.Amount,
		Status:         domain.PaymentStatusPending,
		Reference:      "REG-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12]),
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.registrationRepo.Create(ctx, tx, []*domain.Registration{reg}); err != nil {
			return err
		}
		_, err := s.paymentRepo.Create(ctx, tx, []*domain.Payment{payment})
		return err
	}); err != nil {
		s.log.Error("CreateRegistration failed", "error", err)
		return nil, nil, err
	}

	s.log.Info("Registration created", "registration_id", reg.ID.String(), "reference", payment.Reference)
	return reg, payment, nil
}

func (s *registrationService) HandlePaymentNotify(ctx context.Context, reference, status, method string) (*domain.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("reference is required"))
	}
	if status != domain.PaymentStatusSuccess && status != domain.PaymentStatusFailed {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("unknown payment status %q", status))
	}

	payments, err := s.paymentRepo.GetByReferences(ctx, nil, []string{reference})
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 || payments[0] == nil {
		return nil, apierr.NotFound("payment_not_found", fmt.Errorf("no payment with reference %s", reference))
	}
	payment := payments[0]

	if err := s.paymentRepo.RecordOutcome(ctx, nil, payment.ID, status, method); err != nil {
		return nil, err
	}
	payment.Status = status
	if method != "" {
		payment.Method = method
	}

	if status == domain.PaymentStatusSuccess {
		s.bus.Publish(ctx, events.TopicPaymentCompleted, events.PaymentCompleted{
			PaymentID:      payment.ID,
			RegistrationID: payment.RegistrationID,
			Amount:         payment.Amount,
		})
	}

	s.log.Info("Payment notification handled", "reference", reference, "status", status)
	return payment, nil
}

func (s *registrationService) MarkRegistrationPaid(ctx context.Context, event any) {
	completed, ok := event.(events.PaymentCompleted)
	if !ok {
		return
	}
	if err := s.registrationRepo.UpdateStatusByIDs(ctx, nil, []uuid.UUID{completed.RegistrationID}, domain.RegistrationStatusPaid); err != nil {
		s.log.Error("Failed to mark registration paid", "registration_id", completed.RegistrationID.String(), "error", err)
	}
}
