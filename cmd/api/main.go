package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"claims-dashboard/internal/core/cache"
	"claims-dashboard/internal/core/config"
	"claims-dashboard/internal/core/httpclient"
	"claims-dashboard/internal/core/logger"
	"claims-dashboard/internal/core/metrics"
	"claims-dashboard/internal/core/proxy"
	"claims-dashboard/internal/core/server"
	"claims-dashboard/internal/features/claims/adapters"
	"claims-dashboard/internal/features/claims/handler"
	"claims-dashboard/internal/features/claims/ports"
	"claims-dashboard/internal/features/claims/service"

	"go.uber.org/zap"
)

const sheetsTimeout = 15 * time.Second

// @title Claims Dashboard API
// @version 1.0
// @description This API serves claim records sourced from a Google Sheets registry, with filtering, aggregation and chart endpoints.
// @contact.name API Support
// @contact.email support@claimsdashboard.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	m := metrics.New()

	client := httpclient.NewClient(sheetsTimeout)
	if cfg.Proxy.Enabled {
		client = httpclient.NewClientWithProxy(sheetsTimeout, proxy.Settings{
			Enabled:  cfg.Proxy.Enabled,
			Hostname: cfg.Proxy.Hostname,
			Port:     cfg.Proxy.Port,
			Username: cfg.Proxy.Username,
			Password: cfg.Proxy.Password,
		})
		l.Info("Egress proxy enabled", zap.String("host", cfg.Proxy.Hostname))
	}

	sheets, err := adapters.NewSheetsAdapter(cfg.Sheets, client, m)
	if err != nil {
		l.Fatal("Failed to initialize sheets adapter", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := sheets.HealthCheck(ctx); err != nil {
		l.Fatal("Google Sheets health check failed", zap.Error(err))
	}
	l.Info("Google Sheets connection verified")

	var snapshots ports.SnapshotRepository
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
		if err != nil {
			l.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		ttl := time.Duration(cfg.Redis.SnapshotTTLSeconds) * time.Second
		snapshots = adapters.NewRedisSnapshotRepository(redisCache, ttl)
		l.Info("Claims snapshot cache enabled")
	}

	store := service.NewClaimsStore(sheets, snapshots, m, time.Duration(cfg.Refresh.IntervalSeconds)*time.Second)
	store.Start(ctx)

	srv := server.New(cfg, m)
	handler.NewClaimsHandler(store).RegisterRoutes(srv.App)

	go func() {
		<-ctx.Done()
		l.Info("Shutting down")
		store.Stop()
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}

	l.Info("Shutdown complete")
}
