// Package quote defines the price lookup contract used by position bookkeeping
// and selects the configured provider.
package quote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/alphavantage"
	"github.com/ndewijer/Position-Ledger-Backend/internal/config"
	"github.com/ndewijer/Position-Ledger-Backend/internal/yahoo"
)

// Provider returns the latest price for a ticker symbol.
// Every failure is reported as an error wrapping apperrors.ErrQuoteUnavailable.
// LatestPrice blocks until the provider answers or the context/client timeout fires.
type Provider interface {
	Name() string
	LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// New builds the provider selected in cfg.
func New(cfg config.QuoteConfig) (Provider, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.QuoteProviderAlphaVantage:
		return alphavantage.NewClient(cfg.APIKey,
			alphavantage.WithHTTPClient(httpClient),
			alphavantage.WithBaseURL(cfg.BaseURL),
		), nil
	case config.QuoteProviderYahoo:
		return yahoo.NewFinanceClient(
			yahoo.WithHTTPClient(httpClient),
			yahoo.WithBaseURL(cfg.BaseURL),
		), nil
	default:
		return nil, fmt.Errorf("unknown quote provider: %q", cfg.Provider)
	}
}
