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

type RegistrationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, regs []*domain.Registration) ([]*domain.Registration, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Registration, error)
	Count(ctx context.Context, tx *gorm.DB, spec query.Spec) (int64, error)
	Find(ctx context.Context, tx *gorm.DB, spec query.Spec, sort query.Sort, skip, limit int) ([]*domain.Registration, error)
	GroupStatistics(ctx context.Context, tx *gorm.DB, field, sumField string) ([]domain.GroupStat, error)
	FindByDateRange(ctx context.Context, tx *gorm.DB, field string, since time.Time, until *time.Time) ([]*domain.Registration, error)
	UpdateStatusByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, status string) error
}

type registrationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRegistrationRepo(db *gorm.DB, baseLog *logger.Logger) RegistrationRepo {
	repoLog := baseLog.With("repo", "RegistrationRepo")
	return &registrationRepo{db: db, log: repoLog}
}

func (r *registrationRepo) Create(ctx context.Context, tx *gorm.DB, regs []*domain.Registration) ([]*domain.Registration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(regs) == 0 {
		return []*domain.Registration{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&regs).Error; err != nil {
		return nil, storeErr(err)
	}
	return regs, nil
}

func (r *registrationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.Registration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Registration
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

func (r *registrationRepo) Count(ctx context.Context, tx *gorm.DB, spec query.Spec) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	q := spec.Apply(transaction.WithContext(ctx).Model(&domain.Registration{}))
	if err := q.Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (r *registrationRepo) Find(ctx context.Context, tx *gorm.DB, spec query.Spec, sort query.Sort, skip, limit int) ([]*domain.Registration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Registration
	q := spec.Apply(transaction.WithContext(ctx).Model(&domain.Registration{}))
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

// GroupStatistics groups by field's distinct values. Rows with a NULL or
// empty grouped value are excluded. When sumField is non-empty each group also
// carries the total of that column, missing values counted as 0.
func (r *registrationRepo) GroupStatistics(ctx context.Context, tx *gorm.DB, field, sumField string) ([]domain.GroupStat, error) {
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
		Model(&domain.Registration{}).
		Select(sel).
		Where(field + " IS NOT NULL AND " + field + " <> ''").
		Group(field).
		Order(field + " ASC").
		Scan(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	return rows, nil
}

func (r *registrationRepo) FindByDateRange(ctx context.Context, tx *gorm.DB, field string, since time.Time, until *time.Time) ([]*domain.Registration, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&domain.Registration{}).
		Where(field+" >= ?", since)
	if until != nil {
		q = q.Where(field+" < ?", *until)
	}

	var results []*domain.Registration
	if err := q.Order(field + " ASC").Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (r *registrationRepo) UpdateStatusByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&domain.Registration{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error; err != nil {
		return storeErr(err)
	}
	return nil
}
