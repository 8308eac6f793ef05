package main

import (
	"context"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logging"
	categoryrepo "storefront/internal/repository/category"
	customerrepo "storefront/internal/repository/customer"
	productrepo "storefront/internal/repository/product"
	reviewrepo "storefront/internal/repository/review"
	"storefront/internal/seed"
	categorysvc "storefront/internal/service/category"
	customersvc "storefront/internal/service/customer"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("seed", "info", "text").Fatalf("load config: %v", err)
	}
	logger := logging.New("seed", cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, db.PoolOptions{})
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	categoryRepo := categoryrepo.NewPostgres(pool)
	productRepo := productrepo.NewPostgres(pool, logger)
	customerRepo := customerrepo.NewPostgres(pool, logger)
	svc := seed.Services{
		Categories: categorysvc.New(categoryRepo),
		Products:   productsvc.New(productRepo, categoryRepo, logger),
		Customers:  customersvc.New(customerRepo, logger),
		Reviews:    reviewsvc.New(reviewrepo.NewPostgres(pool, logger), productRepo, customerRepo, nil, logger),
	}

	if err := seed.Apply(ctx, svc, os.Stdout, logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Info("seed applied")
}
