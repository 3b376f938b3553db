package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
)

// MockQuoteProvider is a mock implementation of quote.Provider for testing.
// It returns predefined prices instead of making actual API calls.
type MockQuoteProvider struct {
	// Prices maps symbol to the price LatestPrice returns
	Prices map[string]decimal.Decimal
	// MockError is returned for every symbol when set
	MockError error
	// QueryCount tracks how many times LatestPrice was called
	QueryCount int
}

// NewMockQuoteProvider creates a mock provider with no known symbols.
func NewMockQuoteProvider() *MockQuoteProvider {
	return &MockQuoteProvider{
		Prices: make(map[string]decimal.Decimal),
	}
}

// Name identifies the mock in logs.
func (m *MockQuoteProvider) Name() string {
	return "mock"
}

// LatestPrice returns the configured price for symbol.
// Unknown symbols fail with apperrors.ErrQuoteUnavailable.
func (m *MockQuoteProvider) LatestPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	m.QueryCount++
	if m.MockError != nil {
		return decimal.Zero, m.MockError
	}
	price, ok := m.Prices[strings.ToUpper(symbol)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s: symbol not found", apperrors.ErrQuoteUnavailable, symbol)
	}
	return price, nil
}

// WithPrice configures the price returned for symbol.
func (m *MockQuoteProvider) WithPrice(symbol, price string) *MockQuoteProvider {
	m.Prices[strings.ToUpper(symbol)] = decimal.RequireFromString(price)
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockQuoteProvider) WithError(err error) *MockQuoteProvider {
	m.MockError = err
	return m
}
