package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/regdesk/regdesk-backend/internal/http/response"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/services"
)

type UsersHandler struct {
	adminService services.AdminService
}

func NewUsersHandler(adminService services.AdminService) *UsersHandler {
	return &UsersHandler{adminService: adminService}
}

func (uh *UsersHandler) List(c *gin.Context) {
	result, err := uh.adminService.ListUsers(c.Request.Context(), listOptionsFromQuery(c))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (uh *UsersHandler) Create(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Status   string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid_request", err))
		return
	}

	user, err := uh.adminService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Status:   req.Status,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"user": user})
}

func (uh *UsersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid_request", fmt.Errorf("invalid user id")))
		return
	}

	var req struct {
		Email  *string `json:"email"`
		Name   *string `json:"name"`
		Role   *string `json:"role"`
		Status *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, apierr.Validation("invalid_request", err))
		return
	}

	user, err := uh.adminService.UpdateUser(c.Request.Context(), id, services.UpdateUserInput{
		Email:  req.Email,
		Name:   req.Name,
		Role:   req.Role,
		Status: req.Status,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

func (uh *UsersHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid_request", fmt.Errorf("invalid user id")))
		return
	}

	if err := uh.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondMessage(c, "user deleted")
}
