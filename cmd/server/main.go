package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api"
	"github.com/ndewijer/Position-Ledger-Backend/internal/config"
	"github.com/ndewijer/Position-Ledger-Backend/internal/database"
	"github.com/ndewijer/Position-Ledger-Backend/internal/logger"
	"github.com/ndewijer/Position-Ledger-Backend/internal/quote"
	"github.com/ndewijer/Position-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Position-Ledger-Backend/internal/service"
	"github.com/ndewijer/Position-Ledger-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(appLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		appLog.Error().Err(err).Msg("server stopped with error")
		stop()
		os.Exit(1)
	}

	appLog.Info().Msg("server exited")
}

func run(ctx context.Context, cfg *config.Config) error {
	appLog := log.Logger

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	schema, err := database.Migrate(ctx, db)
	if err != nil {
		return err
	}
	appLog.Info().
		Str("path", cfg.Database.Path).
		Int64("schema_version", schema).
		Msg("connected to database")

	quotes, err := quote.New(cfg.Quote)
	if err != nil {
		return err
	}

	// Create repositories
	positionRepo := repository.NewPositionRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	positionService := service.NewPositionService(db, positionRepo, quotes, appLog)
	ledgerService := service.NewLedgerService(ledgerRepo, budgetRepo, appLog)

	// Create router
	router := api.NewRouter(systemService, positionService, ledgerService, cfg, appLog)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Quote.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLog.Info().
			Str("addr", cfg.Server.Addr).
			Str("version", version.Version).
			Str("quote_provider", quotes.Name()).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		appLog.Info().Msg("shutting down server")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
