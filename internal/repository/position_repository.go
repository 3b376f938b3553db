package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
)

// PositionRepository provides data access methods for the positions table.
// Closed positions stay in the table with closed_at set.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// WithTx returns a new PositionRepository scoped to the provided transaction.
func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *PositionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const positionColumns = `id, symbol, purchase_price, quantity, purchase_date,
	current_price, profit_loss_pct, closed_at, created_at`

// Insert stores a new active position.
// Returns apperrors.ErrDuplicatePosition when the symbol already has an active position.
func (r *PositionRepository) Insert(ctx context.Context, p model.Position) error {
	query := `
		INSERT INTO positions (id, symbol, purchase_price, quantity, purchase_date,
			current_price, profit_loss_pct, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.Symbol,
		p.PurchasePrice.String(),
		p.Quantity,
		p.PurchaseDate.Format(dateLayout),
		p.CurrentPrice.String(),
		p.ProfitLossPct.String(),
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicatePosition
		}
		return fmt.Errorf("failed to insert position: %w", err)
	}

	return nil
}

// ActiveExistsBySymbol reports whether symbol has an active position.
func (r *PositionRepository) ActiveExistsBySymbol(ctx context.Context, symbol string) (bool, error) {
	var exists bool
	err := r.getQuerier().QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM positions WHERE symbol = ? AND closed_at IS NULL)`,
		symbol,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check active position: %w", err)
	}
	return exists, nil
}

// GetByID retrieves a position by ID whether it is active or closed.
// Returns apperrors.ErrPositionNotFound if no row matches.
func (r *PositionRepository) GetByID(ctx context.Context, id string) (model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetActiveByID retrieves a position by ID, but only while it is active.
// Returns apperrors.ErrPositionNotFound for unknown or closed positions.
func (r *PositionRepository) GetActiveByID(ctx context.Context, id string) (model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = ? AND closed_at IS NULL`
	return r.getOne(ctx, query, id)
}

// GetActive returns every active position ordered by purchase date, then by creation.
// Returns an empty set if none are active.
func (r *PositionRepository) GetActive(ctx context.Context) (model.ActiveSet, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM positions
		WHERE closed_at IS NULL
		ORDER BY purchase_date ASC, created_at ASC, rowid ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions table: %w", err)
	}
	defer rows.Close()

	active := model.ActiveSet{}
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		active = append(active, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions table: %w", err)
	}

	return active, nil
}

// UpdatePrice writes a new current price and profit/loss to an active position.
// Returns apperrors.ErrPositionNotFound if the position is unknown or closed.
func (r *PositionRepository) UpdatePrice(ctx context.Context, id string, currentPrice, profitLossPct decimal.Decimal) error {
	query := `
		UPDATE positions
		SET current_price = ?, profit_loss_pct = ?
		WHERE id = ? AND closed_at IS NULL
	`

	result, err := r.getQuerier().ExecContext(ctx, query, currentPrice.String(), profitLossPct.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update position price: %w", err)
	}

	return requireAffected(result, apperrors.ErrPositionNotFound)
}

// Close writes the final price and profit/loss and marks the position closed.
// Returns apperrors.ErrPositionNotFound if the position is unknown or already closed.
func (r *PositionRepository) Close(ctx context.Context, id string, currentPrice, profitLossPct decimal.Decimal, closedAt time.Time) error {
	query := `
		UPDATE positions
		SET current_price = ?, profit_loss_pct = ?, closed_at = ?
		WHERE id = ? AND closed_at IS NULL
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		currentPrice.String(),
		profitLossPct.String(),
		formatTimestamp(closedAt),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to close position: %w", err)
	}

	return requireAffected(result, apperrors.ErrPositionNotFound)
}

func (r *PositionRepository) getOne(ctx context.Context, query string, args ...any) (model.Position, error) {
	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to query positions table: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Position{}, fmt.Errorf("error iterating positions table: %w", err)
		}
		return model.Position{}, apperrors.ErrPositionNotFound
	}

	return scanPosition(rows)
}

func scanPosition(rows *sql.Rows) (model.Position, error) {
	var p model.Position
	var purchaseDateStr, createdAtStr string
	var closedAtStr sql.NullString

	err := rows.Scan(
		&p.ID,
		&p.Symbol,
		&p.PurchasePrice,
		&p.Quantity,
		&purchaseDateStr,
		&p.CurrentPrice,
		&p.ProfitLossPct,
		&closedAtStr,
		&createdAtStr,
	)
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to scan positions table results: %w", err)
	}

	p.PurchaseDate, err = ParseTime(purchaseDateStr)
	if err != nil {
		return model.Position{}, err
	}
	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Position{}, err
	}
	if closedAtStr.Valid {
		closedAt, err := ParseTime(closedAtStr.String)
		if err != nil {
			return model.Position{}, err
		}
		p.ClosedAt = &closedAt
	}

	return p, nil
}

// requireAffected returns notFound when result touched no rows.
func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
