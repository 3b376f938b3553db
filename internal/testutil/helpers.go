package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Position-Ledger-Backend/internal/quote"
	"github.com/ndewijer/Position-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Position-Ledger-Backend/internal/service"
)

// NewTestPositionService creates a PositionService backed by db and the given quote provider.
// Logging is discarded.
func NewTestPositionService(t *testing.T, db *sql.DB, quotes quote.Provider) *service.PositionService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)

	return service.NewPositionService(
		db,
		positionRepo,
		quotes,
		zerolog.Nop(),
	)
}

// NewTestLedgerService creates a LedgerService backed by db.
func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	ledgerRepo := repository.NewLedgerRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)

	return service.NewLedgerService(
		ledgerRepo,
		budgetRepo,
		zerolog.Nop(),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakeCategory generates a unique ledger label for testing.
//
// Example usage:
//
//	category := testutil.MakeCategory("Food")
//	// Returns: "Food XYZ789"
func MakeCategory(base string) string {
	if base == "" {
		base = "Category"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
