package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// dateLayout is the storage format of calendar dates.
const dateLayout = "2006-01-02"

// sqliteTimestamp is the format CURRENT_TIMESTAMP produces.
const sqliteTimestamp = "2006-01-02 15:04:05"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a stored date or timestamp.
// Accepted formats: "2006-01-02", "2006-01-02 15:04:05" and RFC3339.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{dateLayout, sqliteTimestamp, time.RFC3339Nano} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// formatTimestamp renders t for DATETIME columns.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
