package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
	"github.com/ndewijer/Position-Ledger-Backend/internal/repository"
	"github.com/ndewijer/Position-Ledger-Backend/internal/testutil"
)

func TestLedgerRepository_ListTransactions(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewLedgerRepository(db)

	income := testutil.NewIncome().WithSource("Salary").WithAmount("3000").Build(t, db)
	first := testutil.NewExpense().WithCategory("Rent").WithAmount("900").Build(t, db)
	second := testutil.NewExpense().WithCategory("Food").WithAmount("12.5").Build(t, db)

	transactions, err := repo.ListTransactions(ctx)

	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, first.ID, transactions[0].ID)
	assert.Equal(t, second.ID, transactions[1].ID)
	assert.Equal(t, income.ID, transactions[2].ID)
	assert.Equal(t, model.KindIncome, transactions[2].Kind)
	assert.Empty(t, transactions[2].Description)
	assert.True(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Equal(transactions[0].Date))
	assert.Equal(t, "12.5", transactions[1].Amount.String())
}

func TestLedgerRepository_DeleteExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("removes only the oldest of identical rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewLedgerRepository(db)
		older := testutil.NewExpense().WithCategory("Food").WithDescription("Lunch").WithAmount("9.5").Build(t, db)
		newer := testutil.NewExpense().WithCategory("Food").WithDescription("Lunch").WithAmount("9.5").Build(t, db)

		require.NoError(t, repo.DeleteExpense(ctx, older))

		remaining, err := repo.ListTransactions(ctx)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, newer.ID, remaining[0].ID)
	})

	t.Run("no match is not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewLedgerRepository(db)
		e := testutil.NewExpense().WithCategory("Food").WithDescription("Lunch").Build(t, db)
		e.Description = "Dinner"

		err := repo.DeleteExpense(ctx, e)

		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
		testutil.AssertRowCount(t, db, "expenses", 1)
	})
}

func TestLedgerRepository_DeleteIncome(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewLedgerRepository(db)
	i := testutil.NewIncome().WithSource("Salary").WithAmount("100").Build(t, db)
	testutil.NewExpense().WithCategory("Salary").WithAmount("100").Build(t, db)

	require.NoError(t, repo.DeleteIncome(ctx, i))

	testutil.AssertRowCount(t, db, "income", 0)
	testutil.AssertRowCount(t, db, "expenses", 1)
}

func TestBudgetRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewBudgetRepository(db)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, model.Budget{Category: "food", Amount: decimal.NewFromInt(100), UpdatedAt: now}))
	require.NoError(t, repo.Upsert(ctx, model.Budget{Category: "food", Amount: decimal.NewFromInt(150), UpdatedAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Upsert(ctx, model.Budget{Category: "books", Amount: decimal.NewFromInt(20), UpdatedAt: now}))

	budgets, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, "books", budgets[0].Category)
	assert.Equal(t, "food", budgets[1].Category)
	assert.Equal(t, "150", budgets[1].Amount.String())
	assert.True(t, now.Add(time.Hour).Equal(budgets[1].UpdatedAt), "got %s", budgets[1].UpdatedAt)
}
