package alphavantage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
)

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *url.Values) {
	t.Helper()
	var captured url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestClient_LatestPrice(t *testing.T) {
	t.Run("returns the quoted price", func(t *testing.T) {
		srv, query := newTestServer(t, http.StatusOK, `{"Global Quote": {"01. symbol": "IBM", "05. price": "187.4200"}}`)
		client := NewClient("key123", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

		price, err := client.LatestPrice(context.Background(), "IBM")
		require.NoError(t, err)
		assert.Equal(t, "187.42", price.String())

		q := *query
		assert.Equal(t, "GLOBAL_QUOTE", q.Get("function"))
		assert.Equal(t, "IBM", q.Get("symbol"))
		assert.Equal(t, "key123", q.Get("apikey"))
	})

	unavailable := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unknown symbol", status: http.StatusOK, body: `{"Global Quote": {}}`},
		{name: "error message", status: http.StatusOK, body: `{"Error Message": "Invalid API call."}`},
		{name: "rate limit note", status: http.StatusOK, body: `{"Note": "Thank you for using Alpha Vantage!"}`},
		{name: "information notice", status: http.StatusOK, body: `{"Information": "Premium endpoint"}`},
		{name: "malformed json", status: http.StatusOK, body: `not json`},
		{name: "non-numeric price", status: http.StatusOK, body: `{"Global Quote": {"05. price": "N/A"}}`},
		{name: "negative price", status: http.StatusOK, body: `{"Global Quote": {"05. price": "-1.00"}}`},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`},
	}

	for _, tt := range unavailable {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			client := NewClient("key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

			price, err := client.LatestPrice(context.Background(), "NOPE")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrQuoteUnavailable)
			assert.True(t, price.IsZero())
		})
	}

	t.Run("transport timeout is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		t.Cleanup(srv.Close)

		client := NewClient("key", WithBaseURL(srv.URL), WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))

		_, err := client.LatestPrice(context.Background(), "IBM")
		assert.ErrorIs(t, err, apperrors.ErrQuoteUnavailable)
	})

	t.Run("transport errors never carry the api key", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		baseURL := srv.URL
		srv.Close()

		client := NewClient("SUPERSECRETKEY", WithBaseURL(baseURL))

		_, err := client.LatestPrice(context.Background(), "IBM")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrQuoteUnavailable)
		assert.NotContains(t, err.Error(), "SUPERSECRETKEY")
		assert.Contains(t, err.Error(), baseURL)
	})

	t.Run("malformed base url errors never carry the api key", func(t *testing.T) {
		client := NewClient("SUPERSECRETKEY", WithBaseURL("http://[::1"))

		_, err := client.LatestPrice(context.Background(), "IBM")
		require.Error(t, err)
		assert.NotContains(t, err.Error(), "SUPERSECRETKEY")
	})
}

func TestParsePrice(t *testing.T) {
	price, err := ParsePrice(GlobalQuoteResponse{GlobalQuote: GlobalQuote{Price: " 0.0000 "}})
	require.NoError(t, err)
	assert.True(t, price.IsZero())
}

func TestClient_Name(t *testing.T) {
	assert.Equal(t, "alphavantage", NewClient("k").Name())
}
