package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
)

// LedgerRepository provides data access methods for the expenses and income tables.
type LedgerRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewLedgerRepository creates a new LedgerRepository with the provided database connection.
func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// WithTx returns a new LedgerRepository scoped to the provided transaction.
func (r *LedgerRepository) WithTx(tx *sql.Tx) *LedgerRepository {
	return &LedgerRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *LedgerRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertExpense stores an expense row.
func (r *LedgerRepository) InsertExpense(ctx context.Context, t model.Transaction) error {
	query := `
		INSERT INTO expenses (id, date, category, description, amount, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.Date.Format(dateLayout),
		t.Label,
		t.Description,
		t.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	return nil
}

// InsertIncome stores an income row. The description is not stored.
func (r *LedgerRepository) InsertIncome(ctx context.Context, t model.Transaction) error {
	query := `
		INSERT INTO income (id, date, source, amount, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.Date.Format(dateLayout),
		t.Label,
		t.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert income: %w", err)
	}

	return nil
}

// ListTransactions returns every expense followed by every income row,
// each group in insertion order. Income rows have an empty description.
func (r *LedgerRepository) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	query := `
		SELECT id, date, kind, label, description, amount FROM (
			SELECT id, date, 'expense' AS kind, category AS label, description, amount,
				0 AS part, rowid AS seq
			FROM expenses
			UNION ALL
			SELECT id, date, 'income' AS kind, source AS label, '' AS description, amount,
				1 AS part, rowid AS seq
			FROM income
		)
		ORDER BY part ASC, seq ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger tables: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		var dateStr string

		err := rows.Scan(
			&t.ID,
			&dateStr,
			&t.Kind,
			&t.Label,
			&t.Description,
			&t.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger results: %w", err)
		}
		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger tables: %w", err)
	}

	return transactions, nil
}

// DeleteExpense removes the oldest expense matching every field of t.
// Returns apperrors.ErrTransactionNotFound if nothing matched.
func (r *LedgerRepository) DeleteExpense(ctx context.Context, t model.Transaction) error {
	query := `
		DELETE FROM expenses WHERE rowid = (
			SELECT rowid FROM expenses
			WHERE date = ? AND category = ? AND description = ? AND amount = ?
			ORDER BY rowid ASC
			LIMIT 1
		)
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.Date.Format(dateLayout),
		t.Label,
		t.Description,
		t.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return requireAffected(result, apperrors.ErrTransactionNotFound)
}

// DeleteIncome removes the oldest income row matching date, source and amount.
// Returns apperrors.ErrTransactionNotFound if nothing matched.
func (r *LedgerRepository) DeleteIncome(ctx context.Context, t model.Transaction) error {
	query := `
		DELETE FROM income WHERE rowid = (
			SELECT rowid FROM income
			WHERE date = ? AND source = ? AND amount = ?
			ORDER BY rowid ASC
			LIMIT 1
		)
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.Date.Format(dateLayout),
		t.Label,
		t.Amount.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}

	return requireAffected(result, apperrors.ErrTransactionNotFound)
}
