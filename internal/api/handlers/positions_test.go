package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Position-Ledger-Backend/internal/service"
	"github.com/ndewijer/Position-Ledger-Backend/internal/testutil"
)

// positionBody mirrors the JSON shape of a position. Dates stay strings.
type positionBody struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Quantity      int64           `json:"quantity"`
	PurchaseDate  string          `json:"purchaseDate"`
	CurrentPrice  decimal.Decimal `json:"currentPrice"`
	ProfitLossPct decimal.Decimal `json:"profitLossPct"`
	ClosedAt      *string         `json:"closedAt"`
}

func setupPositionHandler(t *testing.T) (*PositionHandler, *sql.DB, *testutil.MockQuoteProvider) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	quotes := testutil.NewMockQuoteProvider()
	ps := testutil.NewTestPositionService(t, db, quotes)
	return NewPositionHandler(ps), db, quotes
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), "body: %s", w.Body.String())
	return v
}

func TestPositionHandler_Positions(t *testing.T) {
	t.Run("returns empty overview when no positions exist", func(t *testing.T) {
		handler, _, _ := setupPositionHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/position", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[struct {
			Positions          []positionBody  `json:"positions"`
			TotalProfitLossPct decimal.Decimal `json:"totalProfitLossPct"`
		}](t, w)
		assert.Empty(t, body.Positions)
		assert.True(t, body.TotalProfitLossPct.IsZero())
	})

	t.Run("lists only active positions with their total", func(t *testing.T) {
		handler, db, _ := setupPositionHandler(t)
		testutil.CreatePosition(t, db, "AAPL", "100", "110")
		testutil.CreatePosition(t, db, "MSFT", "200", "180")
		testutil.NewPosition().WithSymbol("TSLA").Closed().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/position", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[struct {
			Positions          []positionBody  `json:"positions"`
			TotalProfitLossPct decimal.Decimal `json:"totalProfitLossPct"`
		}](t, w)
		require.Len(t, body.Positions, 2)
		assert.Equal(t, "2024-01-02", body.Positions[0].PurchaseDate)
		assert.True(t, decimal.Zero.Equal(body.TotalProfitLossPct), "got %s", body.TotalProfitLossPct)
	})
}

func TestPositionHandler_Total(t *testing.T) {
	handler, db, _ := setupPositionHandler(t)
	testutil.CreatePosition(t, db, "AAPL", "100", "125")

	req := httptest.NewRequest(http.MethodGet, "/api/position/total", nil)
	w := httptest.NewRecorder()

	handler.Total(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[TotalResponse](t, w)
	assert.True(t, decimal.NewFromInt(25).Equal(body.TotalProfitLossPct), "got %s", body.TotalProfitLossPct)
}

func TestPositionHandler_OpenPosition(t *testing.T) {
	t.Run("opens a position at the quoted price", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)
		quotes.WithPrice("AAPL", "184.25")

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position",
			request.OpenPositionRequest{Symbol: "aapl", PurchasePrice: "150", Quantity: 10}, nil)
		w := httptest.NewRecorder()

		handler.OpenPosition(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decodeBody[positionBody](t, w)
		assert.NotEmpty(t, body.ID)
		assert.Equal(t, "AAPL", body.Symbol)
		assert.Equal(t, "184.25", body.CurrentPrice.String())
		expected := service.ProfitLossPct(decimal.NewFromInt(150), decimal.RequireFromString("184.25"))
		assert.True(t, expected.Equal(body.ProfitLossPct), "got %s", body.ProfitLossPct)
		assert.Nil(t, body.ClosedAt)
		testutil.AssertRowCount(t, db, "positions", 1)
	})

	t.Run("returns 400 with field details for invalid input", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position",
			request.OpenPositionRequest{Symbol: "", PurchasePrice: "-1", Quantity: 0}, nil)
		w := httptest.NewRecorder()

		handler.OpenPosition(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody[struct {
			Details map[string]string `json:"details"`
		}](t, w)
		assert.Contains(t, body.Details, "symbol")
		assert.Contains(t, body.Details, "purchasePrice")
		assert.Contains(t, body.Details, "quantity")
		assert.Zero(t, quotes.QueryCount)
		testutil.AssertRowCount(t, db, "positions", 0)
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		handler, _, _ := setupPositionHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position", `{"symbol":`, nil)
		w := httptest.NewRecorder()

		handler.OpenPosition(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 502 when the quote is unavailable", func(t *testing.T) {
		handler, db, _ := setupPositionHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position",
			request.OpenPositionRequest{Symbol: "ZZZZ", PurchasePrice: "10", Quantity: 1}, nil)
		w := httptest.NewRecorder()

		handler.OpenPosition(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		testutil.AssertRowCount(t, db, "positions", 0)
	})

	t.Run("returns 409 for a symbol that is already active", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)
		quotes.WithPrice("AAPL", "120")
		testutil.CreatePosition(t, db, "AAPL", "100", "110")

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/position",
			request.OpenPositionRequest{Symbol: "AAPL", PurchasePrice: "100", Quantity: 1}, nil)
		w := httptest.NewRecorder()

		handler.OpenPosition(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		testutil.AssertRowCount(t, db, "positions", 1)
	})
}

func TestPositionHandler_GetPosition(t *testing.T) {
	t.Run("returns a closed position", func(t *testing.T) {
		handler, db, _ := setupPositionHandler(t)
		p := testutil.NewPosition().WithSymbol("IBM").Closed().Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/position/"+p.ID, map[string]string{"uuid": p.ID})
		w := httptest.NewRecorder()

		handler.GetPosition(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody[positionBody](t, w)
		assert.Equal(t, "IBM", body.Symbol)
		assert.NotNil(t, body.ClosedAt)
	})

	t.Run("returns 404 for an unknown id", func(t *testing.T) {
		handler, _, _ := setupPositionHandler(t)
		id := testutil.MakeID()

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/position/"+id, map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetPosition(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPositionHandler_RefreshPosition(t *testing.T) {
	t.Run("stores the new price", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)
		p := testutil.CreatePosition(t, db, "AAPL", "100", "110")
		quotes.WithPrice("AAPL", "150")

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/position/"+p.ID+"/refresh", map[string]string{"uuid": p.ID})
		w := httptest.NewRecorder()

		handler.RefreshPosition(w, req)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody[positionBody](t, w)
		assert.Equal(t, "150", body.CurrentPrice.String())
		assert.True(t, decimal.NewFromInt(50).Equal(body.ProfitLossPct), "got %s", body.ProfitLossPct)
	})

	t.Run("returns 502 and leaves the row untouched when the quote fails", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)
		p := testutil.CreatePosition(t, db, "AAPL", "100", "110")
		quotes.WithError(fmt.Errorf("%w: timeout", apperrors.ErrQuoteUnavailable))

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/position/"+p.ID+"/refresh", map[string]string{"uuid": p.ID})
		w := httptest.NewRecorder()

		handler.RefreshPosition(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var price string
		require.NoError(t, db.QueryRow("SELECT current_price FROM positions WHERE id = ?", p.ID).Scan(&price))
		assert.Equal(t, "110", price)
	})

	t.Run("returns 404 for a closed position", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)
		p := testutil.NewPosition().WithSymbol("AAPL").Closed().Build(t, db)
		quotes.WithPrice("AAPL", "150")

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/position/"+p.ID+"/refresh", map[string]string{"uuid": p.ID})
		w := httptest.NewRecorder()

		handler.RefreshPosition(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Zero(t, quotes.QueryCount)
	})
}

func TestPositionHandler_ClosePosition(t *testing.T) {
	type closedBody struct {
		Position           positionBody    `json:"position"`
		FinalProfitLossPct decimal.Decimal `json:"finalProfitLossPct"`
		Remaining          []positionBody  `json:"remaining"`
	}

	closeRequest := func(symbol, refresh string) *http.Request {
		params := map[string]string{}
		if refresh != "" {
			params["refresh"] = refresh
		}
		req := testutil.NewRequestWithQueryParams(http.MethodPost, "/api/position/symbol/"+symbol+"/close", params)
		return testutil.NewRequestWithURLParams(req.Method, req.URL.String(), map[string]string{"symbol": symbol})
	}

	t.Run("closes at the stored price and returns the remaining set", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)
		testutil.CreatePosition(t, db, "AAPL", "100", "120")
		msft := testutil.CreatePosition(t, db, "MSFT", "200", "210")

		w := httptest.NewRecorder()
		handler.ClosePosition(w, closeRequest("aapl", ""))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody[closedBody](t, w)
		assert.Equal(t, "AAPL", body.Position.Symbol)
		assert.NotNil(t, body.Position.ClosedAt)
		assert.True(t, decimal.NewFromInt(20).Equal(body.FinalProfitLossPct), "got %s", body.FinalProfitLossPct)
		require.Len(t, body.Remaining, 1)
		assert.Equal(t, msft.ID, body.Remaining[0].ID)
		assert.Zero(t, quotes.QueryCount)

		var active int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM positions WHERE closed_at IS NULL").Scan(&active))
		assert.Equal(t, 1, active)
	})

	t.Run("refreshes the price first when asked", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)
		testutil.CreatePosition(t, db, "AAPL", "100", "120")
		quotes.WithPrice("AAPL", "90")

		w := httptest.NewRecorder()
		handler.ClosePosition(w, closeRequest("AAPL", "true"))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody[closedBody](t, w)
		assert.Equal(t, "90", body.Position.CurrentPrice.String())
		assert.True(t, decimal.NewFromInt(-10).Equal(body.FinalProfitLossPct), "got %s", body.FinalProfitLossPct)
		assert.Equal(t, 1, quotes.QueryCount)
	})

	t.Run("returns 502 when the refresh quote fails", func(t *testing.T) {
		handler, db, quotes := setupPositionHandler(t)
		testutil.CreatePosition(t, db, "AAPL", "100", "120")
		quotes.WithError(apperrors.ErrQuoteUnavailable)

		w := httptest.NewRecorder()
		handler.ClosePosition(w, closeRequest("AAPL", "true"))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		var active int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM positions WHERE closed_at IS NULL").Scan(&active))
		assert.Equal(t, 1, active)
	})

	t.Run("returns 400 for a non-boolean refresh", func(t *testing.T) {
		handler, _, _ := setupPositionHandler(t)

		w := httptest.NewRecorder()
		handler.ClosePosition(w, closeRequest("AAPL", "maybe"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for a symbol without an active position", func(t *testing.T) {
		handler, db, _ := setupPositionHandler(t)
		testutil.CreatePosition(t, db, "AAPL", "100", "120")

		w := httptest.NewRecorder()
		handler.ClosePosition(w, closeRequest("GOOG", ""))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
