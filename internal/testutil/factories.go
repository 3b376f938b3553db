package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
	"github.com/ndewijer/Position-Ledger-Backend/internal/service"
)

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	// Simple creation with defaults
//	position := testutil.NewPosition().Build(t, db)
//
//	// Customized position
//	position := testutil.NewPosition().
//	    WithSymbol("AAPL").
//	    WithPurchasePrice("150").
//	    WithCurrentPrice("165").
//	    Build(t, db)
type PositionBuilder struct {
	ID            string
	Symbol        string
	PurchasePrice decimal.Decimal
	Quantity      int64
	PurchaseDate  time.Time
	CurrentPrice  decimal.Decimal
	ClosedAt      *time.Time
	CreatedAt     time.Time
}

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition() *PositionBuilder {
	return &PositionBuilder{
		ID:            MakeID(),
		Symbol:        MakeSymbol("TST"),
		PurchasePrice: decimal.NewFromInt(100),
		Quantity:      10,
		PurchaseDate:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		CurrentPrice:  decimal.NewFromInt(100),
		CreatedAt:     time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *PositionBuilder) WithID(id string) *PositionBuilder {
	b.ID = id
	return b
}

// WithSymbol sets the ticker symbol.
func (b *PositionBuilder) WithSymbol(symbol string) *PositionBuilder {
	b.Symbol = symbol
	return b
}

// WithPurchasePrice sets the purchase price from a decimal string.
func (b *PositionBuilder) WithPurchasePrice(price string) *PositionBuilder {
	b.PurchasePrice = decimal.RequireFromString(price)
	return b
}

// WithCurrentPrice sets the current price from a decimal string.
func (b *PositionBuilder) WithCurrentPrice(price string) *PositionBuilder {
	b.CurrentPrice = decimal.RequireFromString(price)
	return b
}

// WithQuantity sets the share count.
func (b *PositionBuilder) WithQuantity(quantity int64) *PositionBuilder {
	b.Quantity = quantity
	return b
}

// WithPurchaseDate sets the purchase date.
func (b *PositionBuilder) WithPurchaseDate(date time.Time) *PositionBuilder {
	b.PurchaseDate = date
	return b
}

// Closed marks the position as closed.
func (b *PositionBuilder) Closed() *PositionBuilder {
	closedAt := time.Now().UTC()
	b.ClosedAt = &closedAt
	return b
}

// Build creates the position in the database and returns it.
// The profit/loss percentage is derived from the purchase and current prices.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	pct := service.ProfitLossPct(b.PurchasePrice, b.CurrentPrice)

	var closedAt any
	if b.ClosedAt != nil {
		closedAt = b.ClosedAt.Format(time.RFC3339Nano)
	}

	query := `
		INSERT INTO positions (id, symbol, purchase_price, quantity, purchase_date,
			current_price, profit_loss_pct, closed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.Symbol,
		b.PurchasePrice.String(),
		b.Quantity,
		b.PurchaseDate.Format("2006-01-02"),
		b.CurrentPrice.String(),
		pct.String(),
		closedAt,
		b.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return model.Position{
		ID:            b.ID,
		Symbol:        b.Symbol,
		PurchasePrice: b.PurchasePrice,
		Quantity:      b.Quantity,
		PurchaseDate:  b.PurchaseDate,
		CurrentPrice:  b.CurrentPrice,
		ProfitLossPct: pct,
		ClosedAt:      b.ClosedAt,
		CreatedAt:     b.CreatedAt,
	}
}

// Convenience functions

// CreatePosition creates an active position for symbol bought at purchase and now priced at current.
//
// Example usage:
//
//	position := testutil.CreatePosition(t, db, "AAPL", "100", "110")
func CreatePosition(t *testing.T, db *sql.DB, symbol, purchase, current string) model.Position {
	t.Helper()
	return NewPosition().
		WithSymbol(symbol).
		WithPurchasePrice(purchase).
		WithCurrentPrice(current).
		Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating expense or income rows.
//
// Example usage:
//
//	expense := testutil.NewExpense().WithCategory("Food").WithAmount("12.50").Build(t, db)
//	income := testutil.NewIncome().WithSource("Salary").WithAmount("3000").Build(t, db)
type TransactionBuilder struct {
	ID          string
	Kind        string
	Date        time.Time
	Label       string
	Description string
	Amount      decimal.Decimal
}

// NewExpense creates a TransactionBuilder for an expense with defaults.
func NewExpense() *TransactionBuilder {
	return &TransactionBuilder{
		ID:          MakeID(),
		Kind:        model.KindExpense,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Label:       MakeCategory("Category"),
		Description: "Test expense",
		Amount:      decimal.NewFromInt(10),
	}
}

// NewIncome creates a TransactionBuilder for an income record with defaults.
func NewIncome() *TransactionBuilder {
	return &TransactionBuilder{
		ID:     MakeID(),
		Kind:   model.KindIncome,
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Label:  MakeCategory("Source"),
		Amount: decimal.NewFromInt(100),
	}
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithCategory sets the expense category.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	b.Label = category
	return b
}

// WithSource sets the income source.
func (b *TransactionBuilder) WithSource(source string) *TransactionBuilder {
	b.Label = source
	return b
}

// WithDescription sets the expense description. Ignored for income.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	b.Description = description
	return b
}

// WithAmount sets the amount from a decimal string.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// Build creates the row in the expenses or income table and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	var err error
	if b.Kind == model.KindIncome {
		_, err = db.Exec(
			`INSERT INTO income (id, date, source, amount) VALUES (?, ?, ?, ?)`,
			b.ID, b.Date.Format("2006-01-02"), b.Label, b.Amount.String(),
		)
		b.Description = ""
	} else {
		_, err = db.Exec(
			`INSERT INTO expenses (id, date, category, description, amount) VALUES (?, ?, ?, ?, ?)`,
			b.ID, b.Date.Format("2006-01-02"), b.Label, b.Description, b.Amount.String(),
		)
	}
	if err != nil {
		t.Fatalf("Failed to create test %s: %v", b.Kind, err)
	}

	return model.Transaction{
		ID:          b.ID,
		Date:        b.Date,
		Kind:        b.Kind,
		Label:       b.Label,
		Description: b.Description,
		Amount:      b.Amount,
	}
}

// CreateBudget stores a budget for category.
//
// Example usage:
//
//	testutil.CreateBudget(t, db, "Food", "250")
func CreateBudget(t *testing.T, db *sql.DB, category, amount string) model.Budget {
	t.Helper()

	b := model.Budget{
		Category:  category,
		Amount:    decimal.RequireFromString(amount),
		UpdatedAt: time.Now().UTC(),
	}

	_, err := db.Exec(
		`INSERT INTO budget (category, amount, updated_at) VALUES (?, ?, ?)`,
		b.Category, b.Amount.String(), b.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		t.Fatalf("Failed to create test budget: %v", err)
	}

	return b
}
