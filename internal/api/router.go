package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Position-Ledger-Backend/internal/api/middleware"
	"github.com/ndewijer/Position-Ledger-Backend/internal/config"
	"github.com/ndewijer/Position-Ledger-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	positionService *service.PositionService,
	ledgerService *service.LedgerService,
	cfg *config.Config,
	log zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/position", func(r chi.Router) {
			positionHandler := handlers.NewPositionHandler(positionService)
			r.Get("/", positionHandler.Positions)
			r.Post("/", positionHandler.OpenPosition)
			r.Get("/total", positionHandler.Total)
			r.Post("/symbol/{symbol}/close", positionHandler.ClosePosition)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", positionHandler.GetPosition)
				r.Post("/refresh", positionHandler.RefreshPosition)
			})
		})

		r.Route("/ledger", func(r chi.Router) {
			ledgerHandler := handlers.NewLedgerHandler(ledgerService)
			r.Post("/expense", ledgerHandler.CreateExpense)
			r.Post("/income", ledgerHandler.CreateIncome)
			r.Get("/transaction", ledgerHandler.Transactions)
			r.Delete("/transaction", ledgerHandler.DeleteTransaction)
			r.Get("/budget", ledgerHandler.Budgets)
			r.Put("/budget", ledgerHandler.SetBudget)
			r.Get("/aggregate/category", ledgerHandler.AggregateByCategory)
			r.Get("/aggregate/source", ledgerHandler.AggregateBySource)
			r.Get("/report", ledgerHandler.Report)
		})
	})

	return r
}
