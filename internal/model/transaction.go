package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds.
const (
	KindExpense = "expense"
	KindIncome  = "income"
)

// Transaction represents one row of the ledger: an expense or an income event.
// Label holds the expense category or the income source.
// Description is always empty for income; that emptiness is what tells the
// two kinds apart in a displayed row.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        string          `json:"kind"`
	Label       string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// MarshalJSON renders Date as YYYY-MM-DD so a listed row can be sent back for deletion.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{alias(t), t.Date.Format(DateLayout)})
}

// IsIncome reports whether the row has the income shape (empty description).
func (t Transaction) IsIncome() bool {
	return t.Description == ""
}

// Budget is the spending cap stored for a category.
type Budget struct {
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ReportSlice is one labelled share of a ledger report.
// Percent is the share of the kind's grand total, rounded to one decimal.
type ReportSlice struct {
	Label   string          `json:"label"`
	Total   decimal.Decimal `json:"total"`
	Percent decimal.Decimal `json:"percent"`
}

// LedgerReport groups expenses by category and income by source.
type LedgerReport struct {
	ExpensesByCategory []ReportSlice   `json:"expensesByCategory"`
	IncomeBySource     []ReportSlice   `json:"incomeBySource"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	Budgets            []Budget        `json:"budgets"`
}
