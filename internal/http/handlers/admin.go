package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/regdesk/regdesk-backend/internal/export"
	"github.com/regdesk/regdesk-backend/internal/http/response"
	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
	"github.com/regdesk/regdesk-backend/internal/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func listOptionsFromQuery(c *gin.Context) services.ListOptions {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return services.ListOptions{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}
}

func (ah *AdminHandler) ListRegistrations(c *gin.Context) {
	result, err := ah.adminService.ListRegistrations(c.Request.Context(), listOptionsFromQuery(c))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (ah *AdminHandler) ListPayments(c *gin.Context) {
	result, err := ah.adminService.ListPayments(c.Request.Context(), listOptionsFromQuery(c))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (ah *AdminHandler) Stats(c *gin.Context) {
	snap, err := ah.adminService.Stats(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, snap)
}

// Export endpoints stream an attachment on success; failures return the JSON
// envelope with the originating status, never a corrupt file body.
func (ah *AdminHandler) ExportRegistrations(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid_format", err))
		return
	}
	artifact, err := ah.adminService.ExportRegistrations(c.Request.Context(), listOptionsFromQuery(c), format)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	writeArtifact(c, artifact)
}

func (ah *AdminHandler) ExportPayments(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		response.RespondError(c, apierr.Validation("invalid_format", err))
		return
	}
	artifact, err := ah.adminService.ExportPayments(c.Request.Context(), listOptionsFromQuery(c), format)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	writeArtifact(c, artifact)
}

func writeArtifact(c *gin.Context, artifact *export.Artifact) {
	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Payload)
}
