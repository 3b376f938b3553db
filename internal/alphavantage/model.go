package alphavantage

// GlobalQuoteResponse represents the raw JSON body of a GLOBAL_QUOTE request.
//
// Alpha Vantage reports problems in-band with HTTP 200:
//   - ErrorMessage: invalid call (bad function or symbol format)
//   - Note / Information: rate limit or API key notices
//   - an empty GlobalQuote object: unknown symbol
type GlobalQuoteResponse struct {
	GlobalQuote  GlobalQuote `json:"Global Quote"`
	ErrorMessage string      `json:"Error Message,omitempty"`
	Note         string      `json:"Note,omitempty"`
	Information  string      `json:"Information,omitempty"`
}

// GlobalQuote holds the quote fields. All values arrive as strings.
type GlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}
