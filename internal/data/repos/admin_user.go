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

type AdminUserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*domain.AdminUser) ([]*domain.AdminUser, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.AdminUser, error)
	GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*domain.AdminUser, error)
	// UsernameOrEmailExists probes uniqueness before a create. exceptID, when
	// non-nil, excludes that record so updates can keep their own values.
	UsernameOrEmailExists(ctx context.Context, tx *gorm.DB, username, email string, exceptID *uuid.UUID) (bool, error)
	Count(ctx context.Context, tx *gorm.DB, spec query.Spec) (int64, error)
	Find(ctx context.Context, tx *gorm.DB, spec query.Spec, sort query.Sort, skip, limit int) ([]*domain.AdminUser, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	CountByRole(ctx context.Context, tx *gorm.DB, role string) (int64, error)
}

type adminUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminUserRepo(db *gorm.DB, baseLog *logger.Logger) AdminUserRepo {
	repoLog := baseLog.With("repo", "AdminUserRepo")
	return &adminUserRepo{db: db, log: repoLog}
}

func (r *adminUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*domain.AdminUser) ([]*domain.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(users) == 0 {
		return []*domain.AdminUser{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, storeErr(err)
	}
	return users, nil
}

func (r *adminUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*domain.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.AdminUser
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

func (r *adminUserRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*domain.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.AdminUser
	if len(usernames) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("username IN ?", usernames).
		Find(&results).Error; err != nil {
		return nil, storeErr(err)
	}
	return results, nil
}

func (r *adminUserRepo) UsernameOrEmailExists(ctx context.Context, tx *gorm.DB, username, email string, exceptID *uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Model(&domain.AdminUser{}).
		Where("username = ? OR email = ?", username, email)
	if exceptID != nil {
		q = q.Where("id <> ?", *exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

func (r *adminUserRepo) Count(ctx context.Context, tx *gorm.DB, spec query.Spec) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	q := spec.Apply(transaction.WithContext(ctx).Model(&domain.AdminUser{}))
	if err := q.Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (r *adminUserRepo) Find(ctx context.Context, tx *gorm.DB, spec query.Spec, sort query.Sort, skip, limit int) ([]*domain.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.AdminUser
	q := spec.Apply(transaction.WithContext(ctx).Model(&domain.AdminUser{}))
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

func (r *adminUserRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	if err := transaction.WithContext(ctx).
		Model(&domain.AdminUser{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *adminUserRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.AdminUser{}).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *adminUserRepo) CountByRole(ctx context.Context, tx *gorm.DB, role string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.AdminUser{}).
		Where("role = ?", role).
		Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}
