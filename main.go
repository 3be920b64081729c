package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"esglens/adapters/excel"
	"esglens/app"
	"esglens/internal"
	"esglens/internal/config"
	"esglens/internal/profiling"
	"esglens/internal/session"
	"esglens/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger
	logger.SetLevel(internal.ParseLogLevel(appConfig.Logging.Level))
	logger.Info("Configuration loaded: port=%s max_upload=%dMB session_ttl=%v",
		appConfig.Server.Port, appConfig.Upload.MaxBytes>>20, appConfig.Session.TTL)

	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start pprof server for performance profiling
	profiling.Start(ctx, appConfig.Profiling)

	reader := excel.NewDataReader(excel.DefaultReaderConfig())
	dashboards := app.NewDashboardService(reader, appConfig.Dashboard, appConfig.Upload.MaxConcurrent)

	sessions := session.NewStore(appConfig.Session.TTL)
	go sessions.RunJanitor(ctx, janitorInterval(appConfig.Session.TTL))

	server := ui.NewServer(appConfig, dashboards, sessions)
	if err := server.Run(ctx, ":"+appConfig.Server.Port); err != nil {
		logger.Error("Server stopped: %v", err)
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("Server stopped")
}

// janitorInterval sweeps expired sessions a few times per ttl
func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	return interval
}
