package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/importer"
	"storefront/internal/logging"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
	productsvc "storefront/internal/service/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to product CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.New("importer", "info", "text").Fatalf("load config: %v", err)
	}
	logger := logging.New("importer", cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString, db.PoolOptions{})
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	products := productsvc.New(productrepo.NewPostgres(pool, logger), categoryrepo.NewPostgres(pool), logger)
	imp := importer.NewCSVImporter(f, products, logger)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d created, %d updated: %v", res.Created, res.Updated, err)
	}

	fmt.Printf("Imported %d products (%d created, %d updated) in %s\n",
		res.Created+res.Updated, res.Created, res.Updated, time.Since(start).Truncate(time.Millisecond))
}
