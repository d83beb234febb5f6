package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oggyb/skillswap/internal/app"
	"github.com/oggyb/skillswap/internal/cache"
	"github.com/oggyb/skillswap/internal/config"
	"github.com/oggyb/skillswap/internal/db"
	"github.com/oggyb/skillswap/internal/logger"
	"github.com/oggyb/skillswap/internal/server"
	"github.com/oggyb/skillswap/internal/service/account"
	"github.com/oggyb/skillswap/internal/service/catalog"
	"github.com/oggyb/skillswap/internal/service/connection"
	"github.com/oggyb/skillswap/internal/service/match"
	"github.com/oggyb/skillswap/internal/service/profile"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)

	if err := run(cfg); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := logger.L() // slog.Logger pointer

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisCache.Close()

	// Inject logger into app context
	appCtx, err := app.New(cfg, database, redisCache, log)
	if err != nil {
		return fmt.Errorf("build app context: %w", err)
	}

	registrars := []server.Registrar{
		account.NewRegistrar(appCtx),
		catalog.NewRegistrar(appCtx),
		profile.NewRegistrar(appCtx),
		match.NewRegistrar(appCtx),
		connection.NewRegistrar(appCtx),
	}

	if cfg.IsDevelopment() {
		opts := db.DefaultSeedOptions()
		opts.Catalog = appCtx.Catalog
		res, err := db.SeedTestData(database, opts)
		if err != nil {
			log.Error("failed to seed", "err", err)
		} else {
			log.Info("seeded demo data", "accounts", res.Accounts, "connections", res.Connections)
		}
	}

	log.Info("starting gRPC server", "addr", cfg.GRPC.Host+":"+cfg.GRPC.Port, "env", cfg.App.ENV)

	return server.StartGRPCServer(ctx, appCtx, registrars...)
}
