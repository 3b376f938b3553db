package service

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ProfitLossPct returns (current - purchase) * 100 / purchase.
// Scaling happens before the division so the result keeps the full division precision.
// purchase must be greater than zero.
func ProfitLossPct(purchase, current decimal.Decimal) decimal.Decimal {
	return current.Sub(purchase).Mul(hundred).Div(purchase)
}

// TotalProfitLoss sums the profit/loss percentage of every active position.
// The sum is unweighted: a 10% gain on one share counts as much as a 10% gain on a thousand.
// Returns zero for an empty set.
func TotalProfitLoss(active model.ActiveSet) decimal.Decimal {
	total := decimal.Zero
	for _, p := range active {
		total = total.Add(p.ProfitLossPct)
	}
	return total
}

// withPrice returns p repriced at current with its profit/loss recomputed.
func withPrice(p model.Position, current decimal.Decimal) model.Position {
	p.CurrentPrice = current
	p.ProfitLossPct = ProfitLossPct(p.PurchasePrice, current)
	return p
}
