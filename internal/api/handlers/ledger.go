package handlers

import (
	"net/http"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Position-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Position-Ledger-Backend/internal/service"
)

// LedgerHandler handles HTTP requests for expense, income and budget endpoints.
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler with the provided service dependency.
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// CreateExpense handles POST requests to record an expense.
//
// Endpoint: POST /api/ledger/expense
// Request Body: CreateExpenseRequest (date, category, description, amount)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if the body is invalid or validation fails
func (h *LedgerHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateExpenseRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.ledgerService.RecordExpense(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordExpense)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// CreateIncome handles POST requests to record income.
//
// Endpoint: POST /api/ledger/income
// Request Body: CreateIncomeRequest (date, source, amount)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if the body is invalid or validation fails
func (h *LedgerHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateIncomeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.ledgerService.RecordIncome(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordIncome)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// Transactions handles GET requests to list every ledger row.
//
// Endpoint: GET /api/ledger/transaction[?sort=category|amount]
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request for an unknown sort key
func (h *LedgerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.ledgerService.ListTransactions(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// DeleteTransaction handles DELETE requests that remove one row matching a displayed transaction.
//
// Endpoint: DELETE /api/ledger/transaction
// Request Body: DeleteTransactionRequest (date, category, description, amount)
// Response: 204 No Content
// Error: 400 Bad Request if the body is invalid
// Error: 404 Not Found if no stored row matches
func (h *LedgerHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.DeleteTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.ledgerService.DeleteTransaction(r.Context(), req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDeleteTransaction)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Budgets handles GET requests to list the stored budgets.
//
// Endpoint: GET /api/ledger/budget
// Response: 200 OK with array of Budget
func (h *LedgerHandler) Budgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.ledgerService.Budgets(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveBudgets)
		return
	}

	response.RespondJSON(w, http.StatusOK, budgets)
}

// SetBudget handles PUT requests to set a category budget, replacing any existing one.
//
// Endpoint: PUT /api/ledger/budget
// Request Body: SetBudgetRequest (category, amount)
// Response: 200 OK with Budget
// Error: 400 Bad Request if the body is invalid or validation fails
func (h *LedgerHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetBudgetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.ledgerService.SetBudget(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSetBudget)
		return
	}

	response.RespondJSON(w, http.StatusOK, budget)
}

// AggregateByCategory handles GET requests for expense totals per category.
//
// Endpoint: GET /api/ledger/aggregate/category
// Response: 200 OK with an object mapping category to total
func (h *LedgerHandler) AggregateByCategory(w http.ResponseWriter, r *http.Request) {
	totals, err := h.ledgerService.AggregateByCategory(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, totals)
}

// AggregateBySource handles GET requests for income totals per source.
//
// Endpoint: GET /api/ledger/aggregate/source
// Response: 200 OK with an object mapping source to total
func (h *LedgerHandler) AggregateBySource(w http.ResponseWriter, r *http.Request) {
	totals, err := h.ledgerService.AggregateBySource(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, totals)
}

// Report handles GET requests for the expense and income breakdown.
//
// Endpoint: GET /api/ledger/report
// Response: 200 OK with LedgerReport
func (h *LedgerHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerService.Report(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToBuildReport)
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
