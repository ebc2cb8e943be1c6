package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	redisclient "github.com/regdesk/regdesk-backend/internal/clients/redis"
	"github.com/regdesk/regdesk-backend/internal/data/query"
	"github.com/regdesk/regdesk-backend/internal/data/repos"
	"github.com/regdesk/regdesk-backend/internal/domain"
	"github.com/regdesk/regdesk-backend/internal/export"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/pkg/ctxutil"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
	"github.com/regdesk/regdesk-backend/internal/pkg/normalize"
)

type CreateUserInput struct {
	Username string
	Password string
	Email    string
	Name     string
	Role     string
	Status   string
}

type UpdateUserInput struct {
	Email  *string
	Name   *string
	Role   *string
	Status *string
}

// AdminService composes the repositories behind the administrative surface:
// paginated listings, the cross-entity stats snapshot, bulk exports, and
// identity management (its only writes).
type AdminService interface {
	ListRegistrations(ctx context.Context, opts ListOptions) (*domain.PaginatedResult[*domain.Registration], error)
	ListPayments(ctx context.Context, opts ListOptions) (*domain.PaginatedResult[*domain.Payment], error)
	Stats(ctx context.Context) (*domain.StatsSnapshot, error)
	ExportRegistrations(ctx context.Context, opts ListOptions, format export.Format) (*export.Artifact, error)
	ExportPayments(ctx context.Context, opts ListOptions, format export.Format) (*export.Artifact, error)

	ListUsers(ctx context.Context, opts ListOptions) (*domain.PaginatedResult[*domain.AdminUser], error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.AdminUser, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.AdminUser, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	db               *gorm.DB
	log              *logger.Logger
	registrationRepo repos.RegistrationRepo
	paymentRepo      repos.PaymentRepo
	adminUserRepo    repos.AdminUserRepo
	statsCache       redisclient.StatsCache
	reportLoc        *time.Location
}

var registrationSortable = map[string]bool{
	"created_at": true, "name": true, "email": true, "status": true, "amount": true,
}

var paymentSortable = map[string]bool{
	"created_at": true, "amount": true, "status": true, "reference": true, "method": true,
}

var adminUserSortable = map[string]bool{
	"created_at": true, "username": true, "email": true, "role": true, "status": true,
}

func NewAdminService(
	db *gorm.DB,
	log *logger.Logger,
	registrationRepo repos.RegistrationRepo,
	paymentRepo repos.PaymentRepo,
	adminUserRepo repos.AdminUserRepo,
	statsCache redisclient.StatsCache,
	reportLoc *time.Location,
) AdminService {
	serviceLog := log.With("service", "AdminService")
	if reportLoc == nil {
		reportLoc = time.Local
	}
	return &adminService{
		db:               db,
		log:              serviceLog,
		registrationRepo: registrationRepo,
		paymentRepo:      paymentRepo,
		adminUserRepo:    adminUserRepo,
		statsCache:       statsCache,
		reportLoc:        reportLoc,
	}
}

func (s *adminService) ListRegistrations(ctx context.Context, opts ListOptions) (*domain.PaginatedResult[*domain.Registration], error) {
	page, limit, skip, sort := opts.normalize(registrationSortable, "created_at")
	spec := opts.spec(domain.RegistrationSearchFields)

	items, err := s.registrationRepo.Find(ctx, nil, spec, sort, skip, limit)
	if err != nil {
		s.log.Error("ListRegistrations find failed", "error", err)
		return nil, err
	}
	total, err := s.registrationRepo.Count(ctx, nil, spec)
	if err != nil {
		s.log.Error("ListRegistrations count failed", "error", err)
		return nil, err
	}
	return domain.NewPaginatedResult(items, page, limit, total), nil
}

func (s *adminService) ListPayments(ctx context.Context, opts ListOptions) (*domain.PaginatedResult[*domain.Payment], error) {
	page, limit, skip, sort := opts.normalize(paymentSortable, "created_at")
	spec := opts.spec(domain.PaymentSearchFields)

	items, err := s.paymentRepo.Find(ctx, nil, spec, sort, skip, limit)
	if err != nil {
		s.log.Error("ListPayments find failed", "error", err)
		return nil, err
	}
	total, err := s.paymentRepo.Count(ctx, nil, spec)
	if err != nil {
		s.log.Error("ListPayments count failed", "error", err)
		return nil, err
	}
	return domain.NewPaginatedResult(items, page, limit, total), nil
}

// Stats builds the snapshot from six independent read-only queries issued
// concurrently. "Today" is midnight in the configured report timezone.
func (s *adminService) Stats(ctx context.Context) (*domain.StatsSnapshot, error) {
	if s.statsCache != nil {
		if snap, ok := s.statsCache.Get(ctx); ok {
			return snap, nil
		}
	}

	now := time.Now().In(s.reportLoc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.reportLoc)

	var (
		regGroups []domain.GroupStat
		regTotal  int64
		regToday  []*domain.Registration
		payGroups []domain.GroupStat
		payTotal  int64
		payToday  []*domain.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		regGroups, err = s.registrationRepo.GroupStatistics(gctx, nil, "status", "")
		return err
	})
	g.Go(func() error {
		var err error
		regTotal, err = s.registrationRepo.Count(gctx, nil, query.Spec{})
		return err
	})
	g.Go(func() error {
		var err error
		regToday, err = s.registrationRepo.FindByDateRange(gctx, nil, "created_at", midnight, nil)
		return err
	})
	g.Go(func() error {
		var err error
		payGroups, err = s.paymentRepo.GroupStatistics(gctx, nil, "status", "amount")
		return err
	})
	g.Go(func() error {
		var err error
		payTotal, err = s.paymentRepo.Count(gctx, nil, query.Spec{})
		return err
	})
	g.Go(func() error {
		var err error
		payToday, err = s.paymentRepo.FindByDateRange(gctx, nil, "created_at", midnight, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("Stats aggregation failed", "error", err)
		return nil, err
	}

	snap := &domain.StatsSnapshot{
		Registrations: domain.EntityStats{
			Total:    regTotal,
			Today:    int64(len(regToday)),
			Statuses: make(map[string]domain.StatusStat, len(regGroups)),
		},
		Payments: domain.EntityStats{
			Total:    payTotal,
			Today:    int64(len(payToday)),
			Statuses: make(map[string]domain.StatusStat, len(payGroups)),
		},
	}
	for _, gstat := range regGroups {
		snap.Registrations.Statuses[gstat.Key] = domain.StatusStat{Count: gstat.Count}
	}
	for _, gstat := range payGroups {
		snap.Payments.Statuses[gstat.Key] = domain.StatusStat{Count: gstat.Count, Amount: gstat.Sum}
		if gstat.Key == domain.PaymentStatusSuccess {
			snap.TotalAmount += gstat.Sum
		}
	}

	if s.statsCache != nil {
		s.statsCache.Set(ctx, snap)
	}
	return snap, nil
}

func (s *adminService) ExportRegistrations(ctx context.Context, opts ListOptions, format export.Format) (*export.Artifact, error) {
	spec := opts.spec(domain.RegistrationSearchFields)
	rows, err := s.registrationRepo.Find(ctx, nil, spec, query.Sort{Field: "created_at", Desc: true}, 0, 0)
	if err != nil {
		s.log.Error("ExportRegistrations find failed", "error", err)
		return nil, err
	}
	return export.Registrations(rows, format, time.Now().In(s.reportLoc))
}

func (s *adminService) ExportPayments(ctx context.Context, opts ListOptions, format export.Format) (*export.Artifact, error) {
	spec := opts.spec(domain.PaymentSearchFields)
	rows, err := s.paymentRepo.Find(ctx, nil, spec, query.Sort{Field: "created_at", Desc: true}, 0, 0)
	if err != nil {
		s.log.Error("ExportPayments find failed", "error", err)
		return nil, err
	}
	return export.Payments(rows, format, time.Now().In(s.reportLoc))
}

func (s *adminService) ListUsers(ctx context.Context, opts ListOptions) (*domain.PaginatedResult[*domain.AdminUser], error) {
	page, limit, skip, sort := opts.normalize(adminUserSortable, "created_at")
	spec := opts.spec([]string{"username", "email", "name"})

	items, err := s.adminUserRepo.Find(ctx, nil, spec, sort, skip, limit)
	if err != nil {
		s.log.Error("ListUsers find failed", "error", err)
		return nil, err
	}
	total, err := s.adminUserRepo.Count(ctx, nil, spec)
	if err != nil {
		s.log.Error("ListUsers count failed", "error", err)
		return nil, err
	}

	sanitized := make([]*domain.AdminUser, 0, len(items))
	for _, u := range items {
		sanitized = append(sanitized, u.Sanitized())
	}
	return domain.NewPaginatedResult(sanitized, page, limit, total), nil
}

func (s *adminService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.AdminUser, error) {
	rd, err := s.actingAdmin(ctx)
	if err != nil {
		return nil, err
	}

	username := normalize.Lower(input.Username)
	email := normalize.Lower(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("username, email and password are required"))
	}
	role := input.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	if role != domain.RoleAdmin && role != domain.RoleSuperadmin {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("unknown role %q", role))
	}
	status := input.Status
	if status == "" {
		status = domain.AdminStatusActive
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.AdminUser{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Password: string(hash),
		Name:     strings.TrimSpace(input.Name),
		Role:     role,
		Status:   status,
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.adminUserRepo.UsernameOrEmailExists(ctx, tx, username, email, nil)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Validation("duplicate_user", fmt.Errorf("username or email already exists"))
		}
		_, err = s.adminUserRepo.Create(ctx, tx, []*domain.AdminUser{user})
		return err
	}); err != nil {
		return nil, err
	}

	s.log.Info("Admin user created", "acting_user", rd.Username, "created_user", username, "role", role)
	return user.Sanitized(), nil
}

func (s *adminService) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.AdminUser, error) {
	rd, err := s.actingAdmin(ctx)
	if err != nil {
		return nil, err
	}

	targets, err := s.adminUserRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 || targets[0] == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %s does not exist", id))
	}
	target := targets[0]

	if target.Role == domain.RoleSuperadmin && input.Role != nil && *input.Role != domain.RoleSuperadmin {
		return nil, apierr.Forbidden("superadmin_protected", fmt.Errorf("a superadmin account cannot be demoted"))
	}

	fields := make(map[string]any)
	var email string
	probeEmail := false
	if input.Email != nil {
		email = normalize.Lower(*input.Email)
		if email == "" {
			return nil, apierr.Validation("invalid_request", fmt.Errorf("email cannot be empty"))
		}
		probeEmail = email != target.Email
		fields["email"] = email
	}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Role != nil {
		if *input.Role != domain.RoleAdmin && *input.Role != domain.RoleSuperadmin {
			return nil, apierr.Validation("invalid_request", fmt.Errorf("unknown role %q", *input.Role))
		}
		fields["role"] = *input.Role
	}
	if input.Status != nil {
		if target.Role == domain.RoleSuperadmin && *input.Status != domain.AdminStatusActive {
			count, err := s.adminUserRepo.CountByRole(ctx, nil, domain.RoleSuperadmin)
			if err != nil {
				return nil, err
			}
			if count <= 1 {
				return nil, apierr.Forbidden("superadmin_protected", fmt.Errorf("the only superadmin account cannot be deactivated"))
			}
		}
		fields["status"] = *input.Status
	}
	if len(fields) == 0 {
		return nil, apierr.Validation("invalid_request", fmt.Errorf("no updates provided"))
	}

	// Probe and write share one transaction so a concurrent email change still
	// surfaces as duplicate_user rather than a raw unique-index failure.
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if probeEmail {
			exists, err := s.adminUserRepo.UsernameOrEmailExists(ctx, tx, "", email, &id)
			if err != nil {
				return err
			}
			if exists {
				return apierr.Validation("duplicate_user", fmt.Errorf("email already exists"))
			}
		}
		return s.adminUserRepo.Update(ctx, tx, id, fields)
	}); err != nil {
		return nil, err
	}

	updated, err := s.adminUserRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 || updated[0] == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user %s does not exist", id))
	}

	s.log.Info("Admin user updated", "acting_user", rd.Username, "updated_user", target.Username)
	return updated[0].Sanitized(), nil
}

func (s *adminService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	rd, err := s.actingAdmin(ctx)
	if err != nil {
		return err
	}

	targets, err := s.adminUserRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if len(targets) == 0 || targets[0] == nil {
		return apierr.NotFound("user_not_found", fmt.Errorf("user %s does not exist", id))
	}
	target := targets[0]

	if target.Role == domain.RoleSuperadmin {
		return apierr.Forbidden("superadmin_protected", fmt.Errorf("a superadmin account cannot be deleted"))
	}
	if target.ID == rd.UserID {
		return apierr.Forbidden("self_delete", fmt.Errorf("you cannot delete your own account"))
	}

	if err := s.adminUserRepo.Delete(ctx, nil, id); err != nil {
		return err
	}

	s.log.Info("Admin user deleted", "acting_user", rd.Username, "deleted_user", target.Username)
	return nil
}

func (s *adminService) actingAdmin(ctx context.Context) (*ctxutil.RequestData, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthorized("unauthorized", fmt.Errorf("acting admin not set in context"))
	}
	return rd, nil
}
