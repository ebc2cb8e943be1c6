package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/regdesk/regdesk-backend/internal/data/repos"
	"github.com/regdesk/regdesk-backend/internal/data/repos/testutil"
	"github.com/regdesk/regdesk-backend/internal/domain"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/pkg/ctxutil"
	"github.com/regdesk/regdesk-backend/internal/services"
)

func seedLoginUser(t *testing.T, ctx context.Context, tx *gorm.DB, password, status string) *domain.AdminUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	username := "login-" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
	u := &domain.AdminUser{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		Name:     "Login User",
		Role:     domain.RoleAdmin,
		Status:   status,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		t.Fatalf("seed login user: %v", err)
	}
	return u
}

func TestAuthServiceLoginAndTokenRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := repos.NewAdminUserRepo(tx, testutil.Logger(t))
	svc := services.NewAuthService(tx, testutil.Logger(t), repo, "test-secret", time.Hour)

	user := seedLoginUser(t, ctx, tx, "s3cret", domain.AdminStatusActive)

	token, loggedIn, err := svc.Login(ctx, "  "+strings.ToUpper(user.Username)+" ", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if loggedIn.Password != "" {
		t.Fatal("login must not return the password hash")
	}

	authedCtx, err := svc.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("set context from token: %v", err)
	}
	rd := ctxutil.GetRequestData(authedCtx)
	if rd == nil {
		t.Fatal("expected request data on authed context")
	}
	if rd.UserID != user.ID || rd.Username != user.Username || rd.Role != domain.RoleAdmin {
		t.Fatalf("unexpected request data %+v", rd)
	}
}

func TestAuthServiceLoginRejectsBadPassword(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := repos.NewAdminUserRepo(tx, testutil.Logger(t))
	svc := services.NewAuthService(tx, testutil.Logger(t), repo, "test-secret", time.Hour)

	user := seedLoginUser(t, ctx, tx, "s3cret", domain.AdminStatusActive)

	_, _, err := svc.Login(ctx, user.Username, "wrong")
	if apierr.From(err).Status != 401 {
		t.Fatalf("expected 401 for wrong password, got %v", err)
	}

	_, _, err = svc.Login(ctx, "no-such-user", "s3cret")
	if apierr.From(err).Status != 401 {
		t.Fatalf("expected 401 for unknown user, got %v", err)
	}
}

func TestAuthServiceRejectsInactiveAccount(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()

	repo := repos.NewAdminUserRepo(tx, testutil.Logger(t))
	svc := services.NewAuthService(tx, testutil.Logger(t), repo, "test-secret", time.Hour)

	user := seedLoginUser(t, ctx, tx, "s3cret", domain.AdminStatusInactive)

	_, _, err := svc.Login(ctx, user.Username, "s3cret")
	if apierr.From(err).Status != 403 {
		t.Fatalf("expected 403 for inactive account, got %v", err)
	}
}

func TestAuthServiceRejectsTamperedToken(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := repos.NewAdminUserRepo(tx, testutil.Logger(t))
	svc := services.NewAuthService(tx, testutil.Logger(t), repo, "test-secret", time.Hour)

	_, err := svc.SetContextFromToken(context.Background(), "not.a.token")
	if apierr.From(err).Status != 401 {
		t.Fatalf("expected 401 for garbage token, got %v", err)
	}
}
