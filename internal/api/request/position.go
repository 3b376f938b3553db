package request

// OpenPositionRequest represents the request body for opening a position.
// PurchasePrice is a decimal string to keep the entered value exact.
type OpenPositionRequest struct {
	Symbol        string `json:"symbol"`
	PurchasePrice string `json:"purchasePrice"`
	Quantity      int64  `json:"quantity"`
}
