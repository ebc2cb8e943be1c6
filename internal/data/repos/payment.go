package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/regdesk/regdesk-backend/internal/data/query"
	"github.com/regdesk/regdesk-backend/internal/domain"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type PaymentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, payments []*domain.Payment) ([]*domain.Payment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Payment, error)
	GetByReferences(ctx context.Context, tx *gorm.DB, refs []string) ([]*domain.Payment, error)
	Count(ctx context.Context, tx *gorm.DB, spec query.Spec) (int64, error)
	Find(ctx context.Context, tx *gorm.DB, spec query.Spec, sort query.Sort, skip, limit int) ([]*domain.Payment, error)
	GroupStatistics(ctx context.Context, tx *gorm.DB, field, sumField string) ([]domain.GroupStat, error)
	FindByDateRange(ctx context.Context, tx *gorm.DB, field string, since time.Time, until *time.Time) ([]*domain.Payment, error)
	UpdateStatusByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, status string) error
	RecordOutcome(ctx context.Context, tx *gorm.DB, id uuid.UUID, status, method string) error
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	repoLog := baseLog.With("repo", "PaymentRepo")
	return &paymentRepo{db: db, log: repoLog}
}

func (r *paymentRepo) Create(ctx context.Context, tx *gorm.DB, payments []*domain.Payment) ([]*domain.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(payments) == 0 {
		return []*domain.Payment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&payments).Error; err != nil {
		return nil, storeErr(err)
	}
	return payments, nil
}

func (r *paymentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Payment
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (r *paymentRepo) GetByReferences(ctx context.Context, tx *gorm.DB, refs []string) ([]*domain.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Payment
	if len(refs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("reference IN ?", refs).
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (r *paymentRepo) Count(ctx context.Context, tx *gorm.DB, spec query.Spec) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	q := spec.Apply(transaction.WithContext(ctx).Model(&domain.Payment{}))
	if err := q.Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (r *paymentRepo) Find(ctx context.Context, tx *gorm.DB, spec query.Spec, sort query.Sort, skip, limit int) ([]*domain.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Payment
	q := spec.Apply(transaction.WithContext(ctx).Model(&domain.Payment{}))
	if sort.Field != "" {
		q = q.Order(sort.OrderClause())
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (r *paymentRepo) GroupStatistics(ctx context.Context, tx *gorm.DB, field, sumField string) ([]domain.GroupStat, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	sel := field + " AS key, COUNT(*) AS count"
	if sumField != "" {
		sel += ", COALESCE(SUM(" + sumField + "), 0) AS sum"
	}

	var rows []domain.GroupStat
	if err := transaction.WithContext(ctx).
		Model(&domain.Payment{}).
		Select(sel).
		Where(field + " IS NOT NULL AND " + field + " <> ''").
		Group(field).
		Order(field + " ASC").
		Scan(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	return rows, nil
}

func (r *paymentRepo) FindByDateRange(ctx context.Context, tx *gorm.DB, field string, since time.Time, until *time.Time) ([]*domain.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&domain.Payment{}).
		Where(field+" >= ?", since)
	if until != nil {
		q = q.Where(field+" < ?", *until)
	}

	var results []*domain.Payment
	if err := q.Order(field + " ASC").Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (r *paymentRepo) UpdateStatusByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

// RecordOutcome persists the terminal status reported by the payment provider
// together with the method used, when the callback carries one.
func (r *paymentRepo) RecordOutcome(ctx context.Context, tx *gorm.DB, id uuid.UUID, status, method string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	fields := map[string]any{"status": status, "updated_at": time.Now()}
	if method != "" {
		fields["method"] = method
	}

	if err := transaction.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return storeErr(err)
	}
	return nil
}
