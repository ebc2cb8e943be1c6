package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/regdesk/regdesk-backend/internal/pkg/apierr"
)

// Envelope is the uniform response wrapper every endpoint returns.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func RespondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// RespondError maps the error's kind onto the HTTP status. Store and internal
// failures are reported with a generic message so callers never see raw
// driver errors or stack traces.
func RespondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	msg := ae.Error()
	if ae.Status >= http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(ae.Status, Envelope{Success: false, Error: msg})
}

func AbortError(c *gin.Context, err error) {
	ae := apierr.From(err)
	msg := ae.Error()
	if ae.Status >= http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(ae.Status, Envelope{Success: false, Error: msg})
}
