package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/regdesk/regdesk-backend/internal/data/repos"
	"github.com/regdesk/regdesk-backend/internal/domain"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/pkg/ctxutil"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
	"github.com/regdesk/regdesk-backend/internal/pkg/normalize"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.AdminUser, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	adminUserRepo repos.AdminUserRepo
	jwtSecretKey  string
	accessTTL     time.Duration
}

type adminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(db *gorm.DB, log *logger.Logger, adminUserRepo repos.AdminUserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		adminUserRepo: adminUserRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
	}
}

func (as *authService) Login(ctx context.Context, username, password string) (string, *domain.AdminUser, error) {
	username = normalize.Lower(username)
	if username == "" || password == "" {
		return "", nil, apierr.Validation("invalid_request", fmt.Errorf("username and password are required"))
	}

	users, err := as.adminUserRepo.GetByUsernames(ctx, nil, []string{username})
	if err != nil {
		return "", nil, err
	}
	if len(users) == 0 || users[0] == nil {
		return "", nil, apierr.Unauthorized("invalid_credentials", fmt.Errorf("invalid username or password"))
	}

	user := users[0]
	if user.Status != domain.AdminStatusActive {
		return "", nil, apierr.Forbidden("account_disabled", fmt.Errorf("account is not active"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apierr.Unauthorized("invalid_credentials", fmt.Errorf("invalid username or password"))
	}

	now := time.Now()
	claims := adminClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", nil, apierr.Internal(fmt.Errorf("sign token: %w", err))
	}

	as.log.Info("Admin login", "username", user.Username, "role", user.Role)
	return token, user.Sanitized(), nil
}

// SetContextFromToken validates the bearer token and attaches the acting admin
// to the request context. The identity is re-checked against the store so a
// deactivated or deleted admin loses access immediately.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("invalid or expired token"))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("invalid token subject"))
	}

	users, err := as.adminUserRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 || users[0] == nil {
		return nil, apierr.Unauthorized("invalid_token", fmt.Errorf("account no longer exists"))
	}
	if users[0].Status != domain.AdminStatusActive {
		return nil, apierr.Forbidden("account_disabled", fmt.Errorf("account is not active"))
	}

	rd := &ctxutil.RequestData{
		UserID:   users[0].ID,
		Username: users[0].Username,
		Role:     users[0].Role,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
