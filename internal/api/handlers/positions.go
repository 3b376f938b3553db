package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Position-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
	"github.com/ndewijer/Position-Ledger-Backend/internal/service"
	"github.com/ndewijer/Position-Ledger-Backend/internal/validation"
)

// PositionHandler handles HTTP requests for position endpoints.
// It serves as the HTTP layer adapter, rebuilding the active set from the store per request
// and delegating business logic to the positionService.
type PositionHandler struct {
	positionService *service.PositionService
}

// NewPositionHandler creates a new PositionHandler with the provided service dependency.
func NewPositionHandler(positionService *service.PositionService) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
	}
}

// TotalResponse carries the total profit/loss of the active set.
type TotalResponse struct {
	TotalProfitLossPct decimal.Decimal `json:"totalProfitLossPct"`
}

// Positions handles GET requests to list the active positions with their total profit/loss.
//
// Endpoint: GET /api/position
// Response: 200 OK with PositionOverview
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) Positions(w http.ResponseWriter, r *http.Request) {
	overview, err := h.positionService.Overview(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePositions)
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}

// Total handles GET requests for the total profit/loss of the active set.
//
// Endpoint: GET /api/position/total
// Response: 200 OK with TotalResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) Total(w http.ResponseWriter, r *http.Request) {
	active, err := h.positionService.ActivePositions(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePositions)
		return
	}

	response.RespondJSON(w, http.StatusOK, TotalResponse{TotalProfitLossPct: service.TotalProfitLoss(active)})
}

// OpenPosition handles POST requests to open a position at the current quoted price.
//
// Endpoint: POST /api/position
// Request Body: OpenPositionRequest (symbol, purchasePrice, quantity)
// Response: 201 Created with Position
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 409 Conflict if the symbol already has an active position
// Error: 502 Bad Gateway if the quote lookup fails
// Error: 500 Internal Server Error if storing fails
func (h *PositionHandler) OpenPosition(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.OpenPositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	position, err := h.positionService.OpenPosition(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToOpenPosition)
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// GetPosition handles GET requests to retrieve a position, active or closed.
//
// Endpoint: GET /api/position/{uuid}
// Response: 200 OK with Position
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the position does not exist
func (h *PositionHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	position, err := h.positionService.GetPosition(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePosition)
		return
	}

	response.RespondJSON(w, http.StatusOK, position)
}

// RefreshPosition handles POST requests to re-quote an active position.
//
// Endpoint: POST /api/position/{uuid}/refresh
// Response: 200 OK with the updated Position
// Error: 404 Not Found if the position is unknown or closed
// Error: 502 Bad Gateway if the quote lookup fails; the position is unchanged
func (h *PositionHandler) RefreshPosition(w http.ResponseWriter, r *http.Request) {
	position, err := h.positionService.GetActivePosition(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRefreshPosition)
		return
	}

	updated, err := h.positionService.RefreshPrice(r.Context(), position)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRefreshPosition)
		return
	}

	response.RespondJSON(w, http.StatusOK, updated)
}

// ClosePosition handles POST requests to close the active position for a symbol.
// With refresh=true the price is re-quoted first; otherwise the last stored price is used.
//
// Endpoint: POST /api/position/symbol/{symbol}/close[?refresh=true]
// Response: 200 OK with ClosedPosition (final position, final percentage, remaining set)
// Error: 400 Bad Request if refresh is not a boolean
// Error: 404 Not Found if the symbol has no active position
// Error: 502 Bad Gateway if refresh was requested and the quote lookup fails
func (h *PositionHandler) ClosePosition(w http.ResponseWriter, r *http.Request) {
	symbol := validation.NormalizeSymbol(chi.URLParam(r, "symbol"))

	refresh := false
	if raw := r.URL.Query().Get("refresh"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid refresh parameter", err.Error())
			return
		}
		refresh = parsed
	}

	active, err := h.positionService.ActivePositions(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToClosePosition)
		return
	}

	if refresh {
		if entry, ok := active.Find(symbol); ok {
			updated, err := h.positionService.RefreshPrice(r.Context(), entry)
			if err != nil {
				respondServiceError(w, err, apperrors.ErrFailedToClosePosition)
				return
			}
			active = active.Replace(updated)
		}
	}

	closed, err := h.positionService.ClosePosition(r.Context(), active, symbol)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToClosePosition)
		return
	}

	response.RespondJSON(w, http.StatusOK, closed)
}
