package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/regdesk/regdesk-backend/internal/app"
	"github.com/regdesk/regdesk-backend/internal/observability"
	"github.com/regdesk/regdesk-backend/internal/pkg/envutil"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	shutdown := observability.InitOTel(context.Background(), a.Log, observability.OtelConfig{
		ServiceName: a.Cfg.ServiceName,
		Environment: a.Cfg.Environment,
		Version:     os.Getenv("SERVICE_VERSION"),
	})
	if shutdown != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	for _, res := range a.Modules {
		if res.Err != nil {
			a.Log.Warn("Module came up degraded", "module", res.Module, "error", res.Err)
		}
	}

	port := envutil.GetEnv("PORT", "8080", a.Log)
	a.Log.Info("Server listening", "port", port)
	if err := a.Run(":" + port); err != nil {
		a.Log.Error("Server failed", "error", err)
	}
}
