package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retailhub/backend/internal/application/importer"
	"github.com/retailhub/backend/internal/infrastructure/config"
	"github.com/retailhub/backend/internal/infrastructure/logger"
	"github.com/retailhub/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Loads shop feed files straight into the catalog, bypassing the HTTP
// surface. Meant for seeding and for operators who ship feeds out of band.
func main() {
	var (
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout per feed file")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: importfeed [flags] <feed.yaml> [feed.yaml ...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	scope := persistence.NewGormImportTransactionScope(db.DB)
	svc := importer.NewImportService(scope, log)

	for _, path := range files {
		doc, err := os.ReadFile(path)
		if err != nil {
			log.Fatal("Failed to read feed file", zap.String("file", path), zap.Error(err))
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		result, err := svc.Import(ctx, doc)
		cancel()
		if err != nil {
			log.Fatal("Import failed", zap.String("file", path), zap.Error(err))
		}

		log.Info("Feed imported",
			zap.String("file", path),
			zap.String("shop", result.Shop),
			zap.Int("categories", result.Categories),
			zap.Int("goods", result.Goods),
			zap.Int("parameters", result.Parameters),
		)
	}
}
