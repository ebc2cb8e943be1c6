package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/regdesk/regdesk-backend/internal/http/response"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/pkg/ctxutil"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
	"github.com/regdesk/regdesk-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

// RequireAdmin validates the bearer token and loads the acting admin into the
// request context for downstream handlers and audit logs.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			response.AbortError(c, apierr.Unauthorized("unauthorized", fmt.Errorf("missing or invalid token")))
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			response.AbortError(c, err)
			return
		}
		c.Request = c.Request.WithContext(ctx)
		rd := ctxutil.GetRequestData(ctx)
		if rd == nil || rd.UserID == uuid.Nil {
			response.AbortError(c, apierr.Forbidden("forbidden", fmt.Errorf("forbidden")))
			return
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
