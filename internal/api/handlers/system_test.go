package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
	"github.com/ndewijer/Position-Ledger-Backend/internal/testutil"
)

func setupSystemHandler(t *testing.T) (*SystemHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ss := testutil.NewTestSystemService(t, db)
	return NewSystemHandler(ss), db
}

func TestSystemHandler_Health(t *testing.T) {
	t.Run("returns healthy status when database is connected", func(t *testing.T) {
		handler, _ := setupSystemHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody[HealthResponse](t, w)
		assert.Equal(t, "healthy", body.Status)
		assert.Equal(t, "connected", body.Database)
		assert.Empty(t, body.Error)
	})

	t.Run("returns 503 when database is disconnected", func(t *testing.T) {
		handler, db := setupSystemHandler(t)

		// Close the database connection to simulate failure
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeBody[HealthResponse](t, w)
		assert.Equal(t, "unhealthy", body.Status)
	})
}

func TestSystemHandler_Version(t *testing.T) {
	t.Run("reports the migrated schema and its features", func(t *testing.T) {
		handler, _ := setupSystemHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody[model.VersionInfo](t, w)
		assert.NotEmpty(t, body.AppVersion)
		assert.Equal(t, int64(2), body.DbVersion)
		assert.True(t, body.Features["positions"])
		assert.True(t, body.Features["ledger"])
		assert.False(t, body.MigrationNeeded)
		assert.Nil(t, body.MigrationMessage)
	})

	t.Run("returns 500 when the database is closed", func(t *testing.T) {
		handler, db := setupSystemHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
