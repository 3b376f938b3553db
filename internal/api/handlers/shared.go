package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Position-Ledger-Backend/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Trailing data is rejected.
// Unknown fields are ignored so a listed row can be sent back as-is.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if r.Body == nil {
		return v, errors.New("request body is required")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is required")
		}
		return v, fmt.Errorf("malformed JSON: %w", err)
	}
	if dec.More() {
		return v, errors.New("request body must contain a single JSON object")
	}
	return v, nil
}

// respondServiceError maps a service error to its HTTP status.
//
//   - validation errors: 400 with the field messages as details
//   - not found: 404
//   - duplicate position: 409
//   - quote unavailable: 502
//   - anything else: 500 with fallback as the message
func respondServiceError(w http.ResponseWriter, err error, fallback error) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrValidation.Error(), vErr.Fields)
	case errors.Is(err, apperrors.ErrValidation):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrValidation.Error(), err.Error())
	case errors.Is(err, apperrors.ErrPositionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDuplicatePosition):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicatePosition.Error(), err.Error())
	case errors.Is(err, apperrors.ErrQuoteUnavailable):
		response.RespondError(w, http.StatusBadGateway, apperrors.ErrQuoteUnavailable.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}
