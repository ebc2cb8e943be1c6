package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/regdesk/regdesk-backend/internal/domain"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type StatsCache interface {
	Get(ctx context.Context) (*domain.StatsSnapshot, bool)
	Set(ctx context.Context, snap *domain.StatsSnapshot)
	Close() error
}

type statsCache struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
	ttl time.Duration
}

// NewStatsCache connects using REDIS_ADDR. A missing address is not an error
// for the caller; the service runs without the cache.
func NewStatsCache(log *logger.Logger, ttl time.Duration) (StatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &statsCache{
		log: log.With("service", "RedisStatsCache"),
		rdb: rdb,
		key: "regdesk:stats:snapshot",
		ttl: ttl,
	}, nil
}

func (c *statsCache) Get(ctx context.Context) (*domain.StatsSnapshot, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Stats cache read failed", "error", err)
		}
		return nil, false
	}
	var snap domain.StatsSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.log.Warn("Stats cache payload corrupt, ignoring", "error", err)
		return nil, false
	}
	return &snap, true
}

func (c *statsCache) Set(ctx context.Context, snap *domain.StatsSnapshot) {
	if c == nil || c.rdb == nil || snap == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Stats cache write failed", "error", err)
	}
}

func (c *statsCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
