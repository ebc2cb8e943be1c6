package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/regdesk/regdesk-backend/internal/db"
	"github.com/regdesk/regdesk-backend/internal/events"
	apphttp "github.com/regdesk/regdesk-backend/internal/http"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services
	Bus      *events.Bus
	Modules  []apphttp.Result
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	clients := wireClients(log, cfg)
	bus := events.NewBus(log)
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients, bus)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, serviceset)

	manifest := moduleManifest(handlerset, serviceset, bus)
	router, results := apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		HealthHandler:  handlerset.Health,
		AuthMiddleware: middleware.Auth,
		Modules:        manifest,
	})

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Clients:  clients,
		Services: serviceset,
		Bus:      bus,
		Modules:  results,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Clients.StatsCache != nil {
		_ = a.Clients.StatsCache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
