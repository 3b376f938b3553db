package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
)

// Sort keys accepted when listing transactions.
const (
	SortNone     = ""
	SortCategory = "category"
	SortAmount   = "amount"
)

// ValidSortKey contains the allowed transaction sort keys.
var ValidSortKey = map[string]bool{
	SortNone: true, SortCategory: true, SortAmount: true,
}

// ValidateCreateExpense validates an expense and returns it as a Transaction.
// The description must be non-empty: an empty description is what marks a row as income.
func ValidateCreateExpense(req request.CreateExpenseRequest) (model.Transaction, error) {
	errors := fieldErrors{}

	date, err := ParseDate(req.Date)
	if err != nil {
		errors["date"] = err.Error()
	}
	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "category is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		errors["description"] = "description is required for expenses"
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		errors["amount"] = err.Error()
	}

	if err := errors.err(); err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		Date:        date,
		Kind:        model.KindExpense,
		Label:       req.Category,
		Description: req.Description,
		Amount:      amount,
	}, nil
}

// ValidateCreateIncome validates an income record and returns it as a Transaction.
func ValidateCreateIncome(req request.CreateIncomeRequest) (model.Transaction, error) {
	errors := fieldErrors{}

	date, err := ParseDate(req.Date)
	if err != nil {
		errors["date"] = err.Error()
	}
	if strings.TrimSpace(req.Source) == "" {
		errors["source"] = "source is required"
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		errors["amount"] = err.Error()
	}

	if err := errors.err(); err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		Date:   date,
		Kind:   model.KindIncome,
		Label:  req.Source,
		Amount: amount,
	}, nil
}

// ValidateDeleteTransaction parses a displayed ledger row.
// The kind is inferred with Transaction.IsIncome.
func ValidateDeleteTransaction(req request.DeleteTransactionRequest) (model.Transaction, error) {
	errors := fieldErrors{}

	date, err := ParseDate(req.Date)
	if err != nil {
		errors["date"] = err.Error()
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		errors["amount"] = err.Error()
	}

	if err := errors.err(); err != nil {
		return model.Transaction{}, err
	}

	t := model.Transaction{
		Date:        date,
		Kind:        model.KindExpense,
		Label:       req.Category,
		Description: req.Description,
		Amount:      amount,
	}
	if t.IsIncome() {
		t.Kind = model.KindIncome
	}

	return t, nil
}

// ValidateSetBudget validates a budget request and returns the Budget to store.
func ValidateSetBudget(req request.SetBudgetRequest) (model.Budget, error) {
	errors := fieldErrors{}

	if strings.TrimSpace(req.Category) == "" {
		errors["category"] = "category is required"
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		errors["amount"] = err.Error()
	}

	if err := errors.err(); err != nil {
		return model.Budget{}, err
	}

	return model.Budget{Category: req.Category, Amount: amount}, nil
}

// ValidateSortKey checks a transaction sort key.
func ValidateSortKey(key string) error {
	if !ValidSortKey[key] {
		return &Error{Fields: map[string]string{"sort": fmt.Sprintf("invalid sort key: %s", key)}}
	}
	return nil
}
