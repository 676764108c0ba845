package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mobilecare/config"
	"mobilecare/internal/api"
	"mobilecare/internal/httpserver"
	"mobilecare/internal/httpserver/handler"
	"mobilecare/internal/notification"
	"mobilecare/internal/session"
	pkglogger "mobilecare/pkg/logger"
	redisclient "mobilecare/pkg/redis"
)

func main() {
	// Load config
	cfg := config.Load()

	logger := pkglogger.NewLogger()
	defer logger.Sync()

	// Session store
	var store session.Store
	switch cfg.State.Backend {
	case "file":
		store = session.NewFileStore(cfg.State.Path, cfg.State.Passphrase, logger)
	case "redis":
		rdb := redisclient.NewRedisClient(cfg.State.Redis)
		defer rdb.Close()
		store = session.NewRedisStore(rdb, cfg.State.TerminalID, logger)
	default:
		store = session.NewMemoryStore()
	}

	// Platform backend client
	client := api.NewClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		store,
		logger,
	)

	// Notification workflow
	workflow := notification.NewWorkflow(client, logger)

	// Session guard, torn down with the process
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	guard := session.NewGuard(store, logger)
	guard.TTL = time.Duration(cfg.Session.TTLHours) * time.Hour
	guard.Interval = time.Duration(cfg.Session.CheckIntervalSeconds) * time.Second
	go guard.Run(ctx)

	// Handlers
	authHandler := handler.NewAuthHandler(client, store, logger)
	dashboardHandler := handler.NewDashboardHandler(client, store, logger)
	notificationHandler := handler.NewNotificationHandler(workflow, logger)

	// Router
	router := httpserver.NewRouter(authHandler, dashboardHandler, notificationHandler, store)

	if err := router.Run(cfg.Server.Port); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
