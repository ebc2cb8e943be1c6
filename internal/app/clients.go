package app

import (
	redisclient "github.com/regdesk/regdesk-backend/internal/clients/redis"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type Clients struct {
	// StatsCache is nil when REDIS_ADDR is not configured; the stats endpoint
	// recomputes on every call in that case.
	StatsCache redisclient.StatsCache
}

func wireClients(log *logger.Logger, cfg Config) Clients {
	log.Info("Wiring clients...")

	statsCache, err := redisclient.NewStatsCache(log, cfg.StatsCacheTTL)
	if err != nil {
		log.Warn("Stats cache disabled", "error", err)
		statsCache = nil
	}

	return Clients{StatsCache: statsCache}
}
