package validation

import (
	"strings"

	"github.com/ndewijer/Position-Ledger-Backend/internal/api/request"
	"github.com/ndewijer/Position-Ledger-Backend/internal/model"
)

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateOpenPosition validates a position open request.
//
// Required fields:
//   - symbol: non-empty, at most 16 characters
//   - purchasePrice: decimal greater than zero
//   - quantity: integer greater than zero
//
// Returns a partially filled Position (symbol, purchase price, quantity) or a validation Error.
func ValidateOpenPosition(req request.OpenPositionRequest) (model.Position, error) {
	errors := fieldErrors{}

	symbol := NormalizeSymbol(req.Symbol)
	if symbol == "" {
		errors["symbol"] = "symbol is required"
	} else if len(symbol) > 16 {
		errors["symbol"] = "symbol must be 16 characters or less"
	}

	price, err := ParsePrice(req.PurchasePrice)
	if err != nil {
		errors["purchasePrice"] = err.Error()
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if err := errors.err(); err != nil {
		return model.Position{}, err
	}

	return model.Position{
		Symbol:        symbol,
		PurchasePrice: price,
		Quantity:      req.Quantity,
	}, nil
}
