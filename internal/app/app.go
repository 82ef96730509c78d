package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/kotobanote/kotoba-backend/internal/adapter/postgres"
	learningstatrepo "github.com/kotobanote/kotoba-backend/internal/adapter/postgres/learningstat"
	schedulerepo "github.com/kotobanote/kotoba-backend/internal/adapter/postgres/schedule"
	sheetlockrepo "github.com/kotobanote/kotoba-backend/internal/adapter/postgres/sheetlock"
	wordrepo "github.com/kotobanote/kotoba-backend/internal/adapter/postgres/word"
	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/config"
	"github.com/kotobanote/kotoba-backend/internal/importer"
	"github.com/kotobanote/kotoba-backend/internal/masking"
	"github.com/kotobanote/kotoba-backend/internal/reading"
	"github.com/kotobanote/kotoba-backend/internal/scope"
	"github.com/kotobanote/kotoba-backend/internal/service/dashboard"
	"github.com/kotobanote/kotoba-backend/internal/service/imports"
	"github.com/kotobanote/kotoba-backend/internal/service/learninglog"
	schedulesvc "github.com/kotobanote/kotoba-backend/internal/service/schedule"
	sheetlocksvc "github.com/kotobanote/kotoba-backend/internal/service/sheetlock"
	"github.com/kotobanote/kotoba-backend/internal/service/words"
	"github.com/kotobanote/kotoba-backend/internal/transport/middleware"
	"github.com/kotobanote/kotoba-backend/internal/transport/rest"
)

// Run is the application entry point: it loads configuration, wires
// storage, services and transport, and serves HTTP until ctx is
// canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	resolver, err := scope.NewResolver()
	if err != nil {
		return fmt.Errorf("build scopes: %w", err)
	}

	registry := importer.NewRegistry()
	if err := category.Validate(registry.RegisteredKinds()); err != nil {
		return fmt.Errorf("category settings: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	wordRepo := wordrepo.New(pool)
	scheduleRepo := schedulerepo.New(pool)
	lockRepo := sheetlockrepo.New(pool)
	statRepo := learningstatrepo.New(pool)

	var suggester imports.ReadingSuggester
	if cfg.Import.SuggestReadings {
		s, err := reading.NewSuggester()
		if err != nil {
			return fmt.Errorf("init reading suggester: %w", err)
		}
		suggester = s
	}

	pipeline := importer.NewPipeline(resolver, registry)

	importSvc := imports.NewService(logger, pipeline, resolver, wordRepo, statRepo, lockRepo, txManager, suggester)
	wordsSvc := words.NewService(logger, wordRepo, lockRepo, resolver)
	statsSvc := learninglog.NewService(logger, statRepo, resolver)
	lockSvc := sheetlocksvc.NewService(logger, lockRepo, txManager)
	scheduleSvc := schedulesvc.NewService(logger, scheduleRepo, resolver)
	dashboardSvc := dashboard.NewService(logger, wordRepo, statRepo, resolver)

	sessionStore := masking.NewStore(cfg.Masking.SessionTTL)

	mux := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, BuildVersion()),
		Import:    rest.NewImportHandler(importSvc, cfg.Import.MaxFileBytes, logger),
		Words:     rest.NewWordsHandler(wordsSvc, logger),
		Stats:     rest.NewStatsHandler(statsSvc, dashboardSvc, logger),
		Locks:     rest.NewLocksHandler(lockSvc, logger),
		Schedules: rest.NewSchedulesHandler(scheduleSvc, logger),
		Masking:   rest.NewMaskingHandler(sessionStore, logger),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
