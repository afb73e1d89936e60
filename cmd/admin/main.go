package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/atendezap/atendezap-admin/internal/adminauth"
	"github.com/atendezap/atendezap-admin/internal/analytics"
	"github.com/atendezap/atendezap-admin/internal/app"
	"github.com/atendezap/atendezap-admin/internal/audit"
	"github.com/atendezap/atendezap-admin/internal/companies"
	"github.com/atendezap/atendezap-admin/internal/identity"
	"github.com/atendezap/atendezap-admin/internal/integrations"
	"github.com/atendezap/atendezap-admin/internal/observability"
	"github.com/atendezap/atendezap-admin/internal/plans"
	"github.com/atendezap/atendezap-admin/internal/platform/cache"
	"github.com/atendezap/atendezap-admin/internal/platform/db"
	"github.com/atendezap/atendezap-admin/internal/queues"
	"github.com/atendezap/atendezap-admin/internal/shared"
	"github.com/atendezap/atendezap-admin/internal/users"
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
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	auditLogger := shared.NewAuditLogger(pool)

	identityRepo := identity.NewRepository(pool)
	authenticator := identity.NewService(identityRepo)
	verifier := identity.NewVerifier(identityRepo, logger)

	sessionStore := adminauth.NewStore(redisClient, cfg.ElevatedTTL)
	gate := adminauth.NewGate(sessionStore, authenticator, verifier, logger)
	notifier := adminauth.NewRedisNotifier(redisClient, logger)
	executor := adminauth.NewExecutor(notifier, logger, metrics)
	actors := adminauth.NewActorRegistry(redisClient, cfg.ElevatedTTL)
	authHandler := adminauth.NewHandler(logger, gate, executor, actors)

	companiesRepo := companies.NewRepository(pool)
	companiesService := companies.NewService(companiesRepo, auditLogger)
	companiesHandler := companies.NewHandler(logger, companiesService, executor)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, auditLogger)
	usersHandler := users.NewHandler(logger, usersService, executor)

	plansRepo := plans.NewRepository(pool)
	plansService := plans.NewService(plansRepo, auditLogger)
	plansHandler := plans.NewHandler(logger, plansService, executor)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	integrationsRepo := integrations.NewRepository(pool)
	integrationsService := integrations.NewService(integrationsRepo, asynqClient, auditLogger)
	integrationsHandler := integrations.NewHandler(logger, integrationsService, executor)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	queuesService := queues.NewService(inspector, auditLogger)
	queuesHandler := queues.NewHandler(logger, queuesService, executor)

	analyticsRepo := analytics.NewRepository(pool)
	analyticsService := analytics.NewService(analyticsRepo, redisClient)
	analyticsHandler := analytics.NewHandler(logger, analyticsService)

	auditRepo := audit.NewRepository(pool)
	auditHandler := audit.NewHandler(logger, auditRepo)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		AuthHandler:         authHandler,
		CompaniesHandler:    companiesHandler,
		UsersHandler:        usersHandler,
		PlansHandler:        plansHandler,
		IntegrationsHandler: integrationsHandler,
		QueuesHandler:       queuesHandler,
		AnalyticsHandler:    analyticsHandler,
		AuditHandler:        auditHandler,
		Metrics:             metrics,
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
