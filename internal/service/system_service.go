package service

import (
	"context"
	"database/sql"

	"github.com/ndewijer/Position-Ledger-Backend/internal/database"
	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
	"github.com/ndewijer/Position-Ledger-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application and schema versions along with feature flags.
// MigrationNeeded is set when embedded migrations have not been applied.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	schema, err := database.SchemaVersion(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}
	pending, err := database.HasPendingMigrations(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	info := model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  schema,
		Features: map[string]bool{
			"positions": schema >= 1,
			"ledger":    schema >= 2,
		},
		MigrationNeeded: pending,
	}
	if pending {
		msg := "database schema is behind the application; restart to apply migrations"
		info.MigrationMessage = &msg
	}

	return info, nil
}
