package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Position represents one owned stock holding with its cost basis and live valuation.
// ProfitLossPct is derived from CurrentPrice and PurchasePrice and must be
// recomputed whenever CurrentPrice changes.
type Position struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Quantity      int64           `json:"quantity"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	ProfitLossPct decimal.Decimal `json:"profitLossPct"`
	ClosedAt      *time.Time      `json:"closedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DateLayout is the JSON format of calendar dates.
const DateLayout = "2006-01-02"

// MarshalJSON renders PurchaseDate as YYYY-MM-DD.
func (p Position) MarshalJSON() ([]byte, error) {
	type alias Position
	return json.Marshal(struct {
		alias
		PurchaseDate string `json:"purchaseDate"`
	}{alias(p), p.PurchaseDate.Format(DateLayout)})
}

// IsActive reports whether the position has not been closed.
func (p Position) IsActive() bool {
	return p.ClosedAt == nil
}

// ActiveSet is the ordered set of currently tracked positions.
// Methods never modify the receiver; they return a new set.
type ActiveSet []Position

// Find returns the position for symbol and whether it exists.
func (s ActiveSet) Find(symbol string) (Position, bool) {
	for _, p := range s {
		if p.Symbol == symbol {
			return p, true
		}
	}
	return Position{}, false
}

// Add returns a new set with p appended.
func (s ActiveSet) Add(p Position) ActiveSet {
	out := make(ActiveSet, 0, len(s)+1)
	out = append(out, s...)
	return append(out, p)
}

// Replace returns a new set with the entry sharing p's ID swapped for p.
func (s ActiveSet) Replace(p Position) ActiveSet {
	out := make(ActiveSet, len(s))
	for i, existing := range s {
		if existing.ID == p.ID {
			out[i] = p
			continue
		}
		out[i] = existing
	}
	return out
}

// Without returns a new set with every entry for symbol removed.
func (s ActiveSet) Without(symbol string) ActiveSet {
	out := make(ActiveSet, 0, len(s))
	for _, p := range s {
		if p.Symbol != symbol {
			out = append(out, p)
		}
	}
	return out
}

// ClosedPosition is the result of closing a position.
type ClosedPosition struct {
	Position           Position        `json:"position"`
	FinalProfitLossPct decimal.Decimal `json:"finalProfitLossPct"`
	Remaining          ActiveSet       `json:"remaining"`
}

// PositionOverview is the active set along with its total profit/loss.
type PositionOverview struct {
	Positions          ActiveSet       `json:"positions"`
	TotalProfitLossPct decimal.Decimal `json:"totalProfitLossPct"`
}
