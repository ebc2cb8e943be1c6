package app

import (
	"time"

	"github.com/regdesk/regdesk-backend/internal/pkg/envutil"
	"github.com/regdesk/regdesk-backend/internal/pkg/logger"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	// ReportLocation is the timezone "today" is computed in for the stats
	// snapshot. Defaults to the server's local zone.
	ReportLocation *time.Location
	StatsCacheTTL  time.Duration
	ServiceName    string
	Environment    string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	statsCacheTTLSeconds := envutil.GetEnvAsInt("STATS_CACHE_TTL", 30, log)
	serviceName := envutil.GetEnv("SERVICE_NAME", "regdesk", log)
	environment := envutil.GetEnv("ENVIRONMENT", "development", log)

	reportLoc := time.Local
	if tz := envutil.GetEnv("REPORT_TIMEZONE", "", log); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			log.Warn("Invalid REPORT_TIMEZONE, falling back to server local", "timezone", tz, "error", err)
		} else {
			reportLoc = loc
		}
	}

	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		ReportLocation: reportLoc,
		StatsCacheTTL:  time.Duration(statsCacheTTLSeconds) * time.Second,
		ServiceName:    serviceName,
		Environment:    environment,
	}
}
