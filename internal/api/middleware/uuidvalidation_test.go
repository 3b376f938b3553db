package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/middleware"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	serve := func(id string) (bool, int) {
		handlerCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/position/"+id, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("uuid", id)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		w := httptest.NewRecorder()
		middleware.ValidateUUIDMiddleware(next).ServeHTTP(w, req)
		return handlerCalled, w.Code
	}

	t.Run("passes through valid UUID", func(t *testing.T) {
		called, code := serve("550e8400-e29b-41d4-a716-446655440000")

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("returns 400 for invalid UUID", func(t *testing.T) {
		called, code := serve("invalid-id")

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("returns 400 for empty UUID", func(t *testing.T) {
		called, code := serve("")

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}
