package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portalmitra/portalmitra/internal/app"
	"github.com/portalmitra/portalmitra/internal/auth"
	"github.com/portalmitra/portalmitra/internal/dashboard"
	"github.com/portalmitra/portalmitra/internal/mitra"
	"github.com/portalmitra/portalmitra/internal/observability"
	"github.com/portalmitra/portalmitra/internal/platform/cache"
	"github.com/portalmitra/portalmitra/internal/platform/db"
	"github.com/portalmitra/portalmitra/internal/rbac"
	"github.com/portalmitra/portalmitra/internal/surat"
	"github.com/portalmitra/portalmitra/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, dashboard cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobClient := jobs.NewClient(cfg.RedisAddr, logger)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	rbacRepo := rbac.NewRepository(pool)
	rbacService := rbac.NewService(rbacRepo, logger, cfg.DBTimeout)
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, rbacService, logger, auth.ServiceConfig{
		QueryTimeout: cfg.DBTimeout,
		Mailer:       jobClient,
	})
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.Middleware{Service: authService, Logger: logger}

	mitraRepo := mitra.NewRepository(pool)
	mitraService := mitra.NewService(mitraRepo, logger)
	mitraHandler := mitra.NewHandler(logger, mitraService, rbacMiddleware)

	suratRepo := surat.NewRepository(pool)
	suratService := surat.NewService(suratRepo, logger, jobClient)
	suratHandler := surat.NewHandler(logger, suratService, rbacMiddleware)

	statsCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(mitraRepo, suratRepo, statsCache, logger)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, rbacMiddleware)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthHandler:      authHandler,
		AuthMiddleware:   authMiddleware,
		MitraHandler:     mitraHandler,
		SuratHandler:     suratHandler,
		DashboardHandler: dashboardHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
