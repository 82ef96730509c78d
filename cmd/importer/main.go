// Command importer loads a vocabulary CSV file from disk, replacing
// the words of every page the file touches. It is meant for bulk
// loading outside the HTTP API, for example when seeding a fresh
// database.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/kotobanote/kotoba-backend/internal/adapter/postgres"
	learningstatrepo "github.com/kotobanote/kotoba-backend/internal/adapter/postgres/learningstat"
	sheetlockrepo "github.com/kotobanote/kotoba-backend/internal/adapter/postgres/sheetlock"
	wordrepo "github.com/kotobanote/kotoba-backend/internal/adapter/postgres/word"
	"github.com/kotobanote/kotoba-backend/internal/app"
	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/config"
	"github.com/kotobanote/kotoba-backend/internal/importer"
	"github.com/kotobanote/kotoba-backend/internal/reading"
	"github.com/kotobanote/kotoba-backend/internal/scope"
	"github.com/kotobanote/kotoba-backend/internal/service/imports"
)

func main() {
	fileFlag := flag.String("file", "", "path to the CSV file to import")
	dryRunFlag := flag.Bool("dry-run", false, "parse and report without touching storage")
	flag.Parse()

	if *fileFlag == "" {
		log.Fatal("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	resolver, err := scope.NewResolver()
	if err != nil {
		logger.Error("build scopes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := importer.NewRegistry()
	if err := category.Validate(registry.RegisteredKinds()); err != nil {
		logger.Error("category settings", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	var suggester imports.ReadingSuggester
	if cfg.Import.SuggestReadings {
		s, err := reading.NewSuggester()
		if err != nil {
			logger.Error("init reading suggester", slog.String("error", err.Error()))
			os.Exit(1)
		}
		suggester = s
	}

	svc := imports.NewService(
		logger,
		importer.NewPipeline(resolver, registry),
		resolver,
		wordrepo.New(pool),
		learningstatrepo.New(pool),
		sheetlockrepo.New(pool),
		postgres.NewTxManager(pool),
		suggester,
	)

	f, err := os.Open(*fileFlag)
	if err != nil {
		logger.Error("open file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	result, err := svc.ImportCSV(ctx, imports.ImportInput{Reader: f, DryRun: *dryRunFlag})
	if err != nil {
		logger.Error("import failed",
			slog.String("file", *fileFlag),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.String("file", *fileFlag),
		slog.String("category", result.Report.Category),
		slog.Int("words", len(result.Words)),
		slog.Int("pages", len(result.AffectedPages)),
		slog.Int64("replaced", result.ReplacedCount),
		slog.Bool("dry_run", result.DryRun),
	)
}
