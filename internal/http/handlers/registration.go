package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/regdesk/regdesk-backend/internal/http/response"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/services"
)

type RegistrationHandler struct {
	registrationService services.RegistrationService
}

func NewRegistrationHandler(registrationService services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

func (rh *RegistrationHandler) Create(c *gin.Context) {
	var req struct {
		Name         string          `json:"name"`
		Email        string          `json:"email"`
		Phone        string          `json:"phone"`
		Organization string          `json:"organization"`
		Amount       int64           `json:"amount"`
		Fields       json.RawMessage `json:"fields"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid_request", err))
		return
	}

	reg, payment, err := rh.registrationService.CreateRegistration(c.Request.Context(), services.CreateRegistrationInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		Amount:       req.Amount,
		Fields:       req.Fields,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"registration":      reg,
		"payment_reference": payment.Reference,
	})
}

func (rh *RegistrationHandler) PaymentNotify(c *gin.Context) {
	var req struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Method    string `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid_request", err))
		return
	}

	payment, err := rh.registrationService.HandlePaymentNotify(c.Request.Context(), req.Reference, req.Status, req.Method)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"payment": payment})
}
