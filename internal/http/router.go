package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/regdesk/regdesk-backend/internal/http/handlers"
	"github.com/regdesk/regdesk-backend/internal/http/middleware"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	HealthHandler  *handlers.HealthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Modules        []Module
}

// NewRouter builds the shared engine, mounts the ambient middleware and the
// health endpoint, then hands each feature module its surfaces exactly once.
func NewRouter(cfg RouterConfig) (*gin.Engine, []Result) {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middleware.CORS())
	r.Use(middleware.AttachTraceContext())
	r.Use(middleware.RequestLogger(cfg.Log))

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	adminAuth := api.Group("/admin/auth")
	admin := api.Group("/admin")
	if cfg.AuthMiddleware != nil {
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
	}

	surfaces := Surfaces{API: api, AdminAuth: adminAuth, Admin: admin}
	results := RegisterAll(surfaces, r, cfg.Modules, cfg.Log)
	return r, results
}
