package main

import (
	"context"
	"flag"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logging"
	"storefront/internal/migrate"
)

func main() {
	var (
		down    int
		version bool
	)
	flag.IntVar(&down, "down", 0, "Roll back this many migrations instead of applying")
	flag.BoolVar(&version, "version", false, "Print the current schema version and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.New("migrate", "info", "text").Fatalf("load config: %v", err)
	}
	logger := logging.New("migrate", cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.PoolOptions{})
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	switch {
	case version:
		v, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			logger.Fatalf("read version: %v", err)
		}
		logger.WithField("dirty", dirty).Infof("schema version %d", v)
	case down > 0:
		if err := migrate.Rollback(ctx, pool, down, logger); err != nil {
			logger.Fatalf("rollback migrations: %v", err)
		}
		logger.Infof("rolled back %d migration(s)", down)
	default:
		if err := migrate.ApplyWithLogger(ctx, pool, logger); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		logger.Info("migrations applied")
	}
}
