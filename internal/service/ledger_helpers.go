package service

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
	"github.com/ndewijer/Position-Ledger-Backend/internal/validation"
)

// SortTransactions returns a stably sorted copy of transactions.
//
// Keys:
//   - validation.SortNone: storage order
//   - validation.SortCategory: label, compared as raw strings
//   - validation.SortAmount: amount, compared numerically
//
// Rows with equal keys keep their relative order.
func SortTransactions(transactions []model.Transaction, key string) []model.Transaction {
	sorted := slices.Clone(transactions)

	switch key {
	case validation.SortCategory:
		slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
			return strings.Compare(a.Label, b.Label)
		})
	case validation.SortAmount:
		slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
			return a.Amount.Cmp(b.Amount)
		})
	}

	return sorted
}

// aggregate sums amounts per label for transactions of the given kind.
// Labels are grouped by exact string.
func aggregate(transactions []model.Transaction, kind string) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		if t.Kind != kind {
			continue
		}
		totals[t.Label] = totals[t.Label].Add(t.Amount)
	}
	return totals
}

// reportSlices turns per-label totals into slices sorted by label.
// Each percent is the label's share of the grand total rounded to one decimal,
// or zero when the grand total is zero.
func reportSlices(totals map[string]decimal.Decimal) ([]model.ReportSlice, decimal.Decimal) {
	grand := decimal.Zero
	labels := make([]string, 0, len(totals))
	for label, total := range totals {
		grand = grand.Add(total)
		labels = append(labels, label)
	}
	slices.Sort(labels)

	out := make([]model.ReportSlice, 0, len(labels))
	for _, label := range labels {
		total := totals[label]
		percent := decimal.Zero
		if !grand.IsZero() {
			percent = total.Div(grand).Mul(hundred).Round(1)
		}
		out = append(out, model.ReportSlice{Label: label, Total: total, Percent: percent})
	}

	return out, grand
}
