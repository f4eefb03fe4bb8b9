package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/celebration-service/internal/api/http"
	"github.com/spec-kit/celebration-service/internal/api/http/handlers"
	"github.com/spec-kit/celebration-service/internal/auth"
	"github.com/spec-kit/celebration-service/internal/config"
	"github.com/spec-kit/celebration-service/internal/events"
	"github.com/spec-kit/celebration-service/internal/milestone"
	"github.com/spec-kit/celebration-service/internal/observability"
	"github.com/spec-kit/celebration-service/internal/persistence"
	"github.com/spec-kit/celebration-service/internal/repository"
	"github.com/spec-kit/celebration-service/internal/repository/memory"
	"github.com/spec-kit/celebration-service/internal/service"
	"github.com/spec-kit/celebration-service/internal/snapshot"
	"github.com/spec-kit/celebration-service/internal/wish"
	"github.com/spec-kit/celebration-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics("celebration")
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	loc, err := cfg.Engine.LoadLocation()
	if err != nil {
		logger.Fatal("invalid engine timezone", zap.Error(err))
	}
	policy, err := milestone.ParseYearPolicy(cfg.Engine.YearPolicy)
	if err != nil {
		logger.Fatal("invalid engine year policy", zap.Error(err))
	}
	evaluator := milestone.NewEvaluator(milestone.NewCalendar(loc, policy))

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var (
		staffRepo    repository.StaffRepository
		customerRepo repository.CustomerRepository
		sessionRepo  repository.SessionRepository
		checks       []handlers.Check
	)

	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		staffRepo = repository.NewStaffRepository(pool)
		customerRepo = repository.NewCustomerRepository(pool)
		checks = append(checks, handlers.Check{Name: "postgres", Ping: pg.Ping})
	} else {
		logger.Warn("using in-memory store; data is lost on restart")
		staffRepo = memory.NewStaffRepository()
		customerRepo = memory.NewCustomerRepository()
	}

	if cfg.Redis.Enabled {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()

		sessionRepo = repository.NewSessionRepository(redis.Handle())
		checks = append(checks, handlers.Check{Name: "redis", Ping: redis.Ping})

		bridge := events.NewRedisBridge(redis.Handle(), cfg.Redis.EventsChannel, dispatcher, logger)
		bridge.Attach()
		go func() {
			if err := bridge.Run(ctx); err != nil {
				logger.Error("event relay stopped", zap.Error(err))
			}
		}()
	} else {
		logger.Warn("redis disabled; sessions are kept in memory and events stay local")
		sessionRepo = memory.NewSessionRepository()
	}

	var generator wish.Generator
	if gemini, err := wish.NewGemini(ctx, cfg.Wish.APIKey, cfg.Wish.Model); err != nil {
		logger.Warn("wish generation unavailable; fallback texts will be used", zap.Error(err))
	} else {
		generator = gemini
	}
	drafter := wish.NewDrafter(generator, cfg.Wish.CompanyName, cfg.Wish.Timeout(), logger, metrics)

	if !cfg.Auth.AdminEnabled() {
		logger.Warn("ADMIN_PASSWORD not set; admin login is disabled")
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StaffRepo:   staffRepo,
		SessionRepo: sessionRepo,
	}, logger)
	staffService := service.NewStaffService(*cfg, staffRepo, sessionRepo, dispatcher, logger)
	customerService := service.NewCustomerService(customerRepo, staffRepo, dispatcher, logger)
	taskService := service.NewTaskService(service.TaskDependencies{
		CustomerRepo: customerRepo,
		StaffRepo:    staffRepo,
		Evaluator:    evaluator,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
	}, logger)
	wishService := service.NewWishService(customerRepo, drafter)
	hub := snapshot.NewHub(customerRepo, dispatcher, logger)

	app := httptransport.NewApp(cfg.App, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks...),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(staffService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Tasks:          handlers.NewTasksHandler(taskService, wishService),
		Stream:         handlers.NewStreamHandler(hub, taskService, logger),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), sessionRepo),
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("year_policy", string(policy)))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	hub.Close()
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown did not drain connections", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
