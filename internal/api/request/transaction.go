package request

// CreateExpenseRequest represents the request body for recording an expense.
// Date is YYYY-MM-DD; Amount is a decimal string.
type CreateExpenseRequest struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// CreateIncomeRequest represents the request body for recording income.
type CreateIncomeRequest struct {
	Date   string `json:"date"`
	Source string `json:"source"`
	Amount string `json:"amount"`
}

// DeleteTransactionRequest is a ledger row exactly as it was displayed.
// An empty Description marks the row as income, in which case Category holds the source.
type DeleteTransactionRequest struct {
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}

// SetBudgetRequest represents the request body for setting a category budget.
type SetBudgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}
