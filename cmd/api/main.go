package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	"storefront/internal/metrics"
	categoryrepo "storefront/internal/repository/category"
	customerrepo "storefront/internal/repository/customer"
	productrepo "storefront/internal/repository/product"
	reviewrepo "storefront/internal/repository/review"
	categorysvc "storefront/internal/service/category"
	customersvc "storefront/internal/service/customer"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New("api", "info", "text").Fatalf("load config: %v", err)
	}
	logger := logging.New("api", cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, db.PoolOptions{
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	})
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	categoryRepo := categoryrepo.NewPostgres(dbpool)
	categoryService := categorysvc.New(categoryRepo)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo, categoryRepo, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	customerService := customersvc.New(customerRepo, logger)
	reviewRepo := reviewrepo.NewPostgres(dbpool, logger)
	reviewService := reviewsvc.New(reviewRepo, productRepo, customerRepo, metrics.NewReviews(registry), logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CustomerSvc: customerService,
		CategorySvc: categoryService,
		ProductSvc:  productService,
		ReviewSvc:   reviewService,
	}, httpserver.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Registry:           registry,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Infof("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Errorf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	} else {
		logger.Info("server stopped")
	}
}
