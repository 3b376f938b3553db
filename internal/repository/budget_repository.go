package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
)

// BudgetRepository provides data access methods for the budget table.
type BudgetRepository struct {
	db *sql.DB
}

// NewBudgetRepository creates a new BudgetRepository with the provided database connection.
func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert stores the budget for its category, replacing any existing value.
func (r *BudgetRepository) Upsert(ctx context.Context, b model.Budget) error {
	query := `
		INSERT INTO budget (category, amount, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET
			amount = excluded.amount,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, b.Category, b.Amount.String(), formatTimestamp(b.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	return nil
}

// List returns all budgets ordered by category.
// Returns an empty slice if no budgets are set.
func (r *BudgetRepository) List(ctx context.Context) ([]model.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, amount, updated_at FROM budget ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget table: %w", err)
	}
	defer rows.Close()

	budgets := []model.Budget{}
	for rows.Next() {
		var b model.Budget
		var updatedAtStr sql.NullString

		if err := rows.Scan(&b.Category, &b.Amount, &updatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan budget table results: %w", err)
		}
		if updatedAtStr.Valid {
			b.UpdatedAt, err = ParseTime(updatedAtStr.String)
			if err != nil {
				return nil, err
			}
		}

		budgets = append(budgets, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget table: %w", err)
	}

	return budgets, nil
}
