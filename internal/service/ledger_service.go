package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
	"github.com/ndewijer/Position-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Position-Ledger-Backend/internal/validation"
)

// LedgerService handles expense, income and budget bookkeeping.
type LedgerService struct {
	ledgerRepo *repository.LedgerRepository
	budgetRepo *repository.BudgetRepository
	log        zerolog.Logger
	now        func() time.Time
}

// NewLedgerService creates a new LedgerService with the provided repository dependencies.
func NewLedgerService(
	ledgerRepo *repository.LedgerRepository,
	budgetRepo *repository.BudgetRepository,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		budgetRepo: budgetRepo,
		log:        log.With().Str("service", "ledger").Logger(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// RecordExpense validates and stores an expense.
func (s *LedgerService) RecordExpense(ctx context.Context, req request.CreateExpenseRequest) (model.Transaction, error) {
	t, err := validation.ValidateCreateExpense(req)
	if err != nil {
		return model.Transaction{}, err
	}
	t.ID = uuid.New().String()

	if err := s.ledgerRepo.InsertExpense(ctx, t); err != nil {
		return model.Transaction{}, err
	}

	s.log.Debug().Str("transaction_id", t.ID).Str("category", t.Label).Msg("expense recorded")
	return t, nil
}

// RecordIncome validates and stores an income record.
func (s *LedgerService) RecordIncome(ctx context.Context, req request.CreateIncomeRequest) (model.Transaction, error) {
	t, err := validation.ValidateCreateIncome(req)
	if err != nil {
		return model.Transaction{}, err
	}
	t.ID = uuid.New().String()

	if err := s.ledgerRepo.InsertIncome(ctx, t); err != nil {
		return model.Transaction{}, err
	}

	s.log.Debug().Str("transaction_id", t.ID).Str("source", t.Label).Msg("income recorded")
	return t, nil
}

// ListTransactions returns every expense and income row, optionally sorted.
// See SortTransactions for the accepted keys; any other key is a validation error.
func (s *LedgerService) ListTransactions(ctx context.Context, sortKey string) ([]model.Transaction, error) {
	if err := validation.ValidateSortKey(sortKey); err != nil {
		return nil, err
	}

	transactions, err := s.ledgerRepo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	return SortTransactions(transactions, sortKey), nil
}

// DeleteTransaction removes one stored row matching a displayed transaction.
//
// A row with an empty description is matched against income by date, source and amount.
// Any other row is matched against expenses by date, category, description and amount.
// Exactly one row is removed even if several match.
//
// Returns apperrors.ErrTransactionNotFound if no row matches.
func (s *LedgerService) DeleteTransaction(ctx context.Context, req request.DeleteTransactionRequest) error {
	t, err := validation.ValidateDeleteTransaction(req)
	if err != nil {
		return err
	}

	if t.IsIncome() {
		err = s.ledgerRepo.DeleteIncome(ctx, t)
	} else {
		err = s.ledgerRepo.DeleteExpense(ctx, t)
	}
	if err != nil {
		return err
	}

	s.log.Debug().Str("kind", t.Kind).Str("label", t.Label).Msg("transaction deleted")
	return nil
}

// SetBudget stores the budget for a category, replacing any previous amount.
func (s *LedgerService) SetBudget(ctx context.Context, req request.SetBudgetRequest) (model.Budget, error) {
	b, err := validation.ValidateSetBudget(req)
	if err != nil {
		return model.Budget{}, err
	}
	b.UpdatedAt = s.now()

	if err := s.budgetRepo.Upsert(ctx, b); err != nil {
		return model.Budget{}, err
	}

	return b, nil
}

// Budgets returns all stored budgets ordered by category.
func (s *LedgerService) Budgets(ctx context.Context) ([]model.Budget, error) {
	return s.budgetRepo.List(ctx)
}

// AggregateByCategory sums expense amounts per category.
func (s *LedgerService) AggregateByCategory(ctx context.Context) (map[string]decimal.Decimal, error) {
	transactions, err := s.ledgerRepo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate(transactions, model.KindExpense), nil
}

// AggregateBySource sums income amounts per source.
func (s *LedgerService) AggregateBySource(ctx context.Context) (map[string]decimal.Decimal, error) {
	transactions, err := s.ledgerRepo.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate(transactions, model.KindIncome), nil
}

// Report builds the expense-by-category and income-by-source breakdown along with stored budgets.
func (s *LedgerService) Report(ctx context.Context) (model.LedgerReport, error) {
	transactions, err := s.ledgerRepo.ListTransactions(ctx)
	if err != nil {
		return model.LedgerReport{}, err
	}
	budgets, err := s.budgetRepo.List(ctx)
	if err != nil {
		return model.LedgerReport{}, err
	}

	expenses, totalExpenses := reportSlices(aggregate(transactions, model.KindExpense))
	income, totalIncome := reportSlices(aggregate(transactions, model.KindIncome))

	return model.LedgerReport{
		ExpensesByCategory: expenses,
		IncomeBySource:     income,
		TotalExpenses:      totalExpenses,
		TotalIncome:        totalIncome,
		Budgets:            budgets,
	}, nil
}
