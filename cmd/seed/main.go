// Command seed populates a fresh install from a YAML file:
//
//	seed -file seed.yaml
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/celebration-service/internal/config"
	"github.com/spec-kit/celebration-service/internal/events"
	"github.com/spec-kit/celebration-service/internal/observability"
	"github.com/spec-kit/celebration-service/internal/persistence"
	"github.com/spec-kit/celebration-service/internal/repository"
	"github.com/spec-kit/celebration-service/internal/repository/memory"
	"github.com/spec-kit/celebration-service/internal/seed"
	"github.com/spec-kit/celebration-service/internal/service"
)

func main() {
	path := flag.String("file", "seed.yaml", "path to the seed YAML file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	file, err := seed.Load(*path)
	if err != nil {
		logger.Fatal("invalid seed file", zap.Error(err))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required for seeding")
	}
	if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	staffRepo := repository.NewStaffRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	dispatcher := events.NewInMemoryDispatcher()

	seeder := seed.NewSeeder(
		service.NewStaffService(*cfg, staffRepo, memory.NewSessionRepository(), dispatcher, logger),
		service.NewCustomerService(customerRepo, staffRepo, dispatcher, logger),
		cfg.Auth.AdminUsername,
	)
	res, err := seeder.Apply(ctx, file)
	if err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seed complete",
		zap.Int("staff_created", res.StaffCreated),
		zap.Int("staff_skipped", res.StaffSkipped),
		zap.Int("customers_created", res.CustomersCreated))
}
