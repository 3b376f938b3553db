package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPositionNotFound indicates that no active position matches the given ID or symbol.
	ErrPositionNotFound = errors.New("position not found")

	// ErrTransactionNotFound indicates that no expense or income row matches the given fields.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrValidation indicates malformed or out-of-range user input.
	// validation.Error unwraps to this value.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicatePosition indicates that an active position for the symbol already exists.
	ErrDuplicatePosition = errors.New("position already open for symbol")
)

// External dependency errors.
var (
	// ErrQuoteUnavailable indicates that the quote provider could not return a usable price.
	// Malformed responses, unknown symbols and transport failures all map to this error.
	ErrQuoteUnavailable = errors.New("quote unavailable")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Position operation errors
	ErrFailedToRetrievePositions = errors.New("failed to retrieve positions")
	ErrFailedToRetrievePosition  = errors.New("failed to retrieve position")
	ErrFailedToOpenPosition      = errors.New("failed to open position")
	ErrFailedToRefreshPosition   = errors.New("failed to refresh position")
	ErrFailedToClosePosition     = errors.New("failed to close position")

	// Ledger operation errors
	ErrFailedToRecordExpense        = errors.New("failed to record expense")
	ErrFailedToRecordIncome         = errors.New("failed to record income")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToDeleteTransaction    = errors.New("failed to delete transaction")
	ErrFailedToSetBudget            = errors.New("failed to set budget")
	ErrFailedToRetrieveBudgets      = errors.New("failed to retrieve budgets")
	ErrFailedToBuildReport          = errors.New("failed to build report")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
