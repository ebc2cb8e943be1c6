package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/regdesk/regdesk-backend/internal/http/response"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid_request", err))
		return
	}
	token, user, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	expiresIn := int(ah.authService.GetAccessTTL().Seconds())
	response.RespondOK(c, gin.H{
		"access_token": token,
		"expires_in":   expiresIn,
		"user":         user,
	})
}
