package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
)

// DefaultBaseURL is the Yahoo Finance chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// It wraps an HTTP client and provides convenient methods for querying stock prices.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithHTTPClient sets the HTTP client, typically to apply a timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(client *FinanceClient) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL overrides the chart endpoint. An empty value keeps the default.
func WithBaseURL(u string) Option {
	return func(client *FinanceClient) {
		if u != "" {
			client.baseURL = u
		}
	}
}

// NewFinanceClient creates a new Yahoo Finance client.
//
// Returns:
//   - *FinanceClient: A new client instance ready for use
func NewFinanceClient(opts ...Option) *FinanceClient {
	c := &FinanceClient{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the provider in logs.
func (c *FinanceClient) Name() string {
	return "yahoo"
}

// LatestPrice returns the most recent closing price in the last five trading days.
// Any failure wraps apperrors.ErrQuoteUnavailable.
func (c *FinanceClient) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	resp, err := c.QueryYahooFiveDaySymbol(ctx, symbol)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
	}
	chart, err := c.ParseChart(resp)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", apperrors.ErrQuoteUnavailable, symbol, err)
	}
	last, ok := chart.Latest()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s: no close prices returned", apperrors.ErrQuoteUnavailable, symbol)
	}
	if last.PriceClose < 0 {
		return decimal.Zero, fmt.Errorf("%w: %s: negative price", apperrors.ErrQuoteUnavailable, symbol)
	}
	return decimal.NewFromFloat(last.PriceClose), nil
}

// ParseChart converts a raw Yahoo Finance API response into a structured price chart.
//
// The method performs validation to ensure:
//   - A result is present
//   - Timestamp data is present
//   - Close price data is present and aligned with the timestamps
//
// Null close entries (days without trading) are skipped.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no results returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, v := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		indicators = append(indicators, Indicators{
			Date:       time.Unix(v, 0).UTC(),
			PriceClose: *closes[i],
		})
	}

	return PriceChart{
		Symbol:     result.Meta.Symbol,
		Currency:   result.Meta.Currency,
		Indicators: indicators,
	}, nil
}

// Latest returns the last indicator of the chart.
func (c PriceChart) Latest() (Indicators, bool) {
	if len(c.Indicators) == 0 {
		return Indicators{}, false
	}
	return c.Indicators[len(c.Indicators)-1], true
}

// QueryYahooFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
//
// Parameters:
//   - ctx: request context; cancellation aborts the HTTP call
//   - symbol: Stock ticker symbol (e.g., "AAPL", "MSFT")
//
// Returns:
//   - Response: Raw API response containing price data
//   - error: If the HTTP request fails, API returns an error, or no results found
func (c *FinanceClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	u := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.baseURL, url.PathEscape(symbol))
	result, err := c.queryYahoo(ctx, u)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// queryYahoo executes an HTTP request to the Yahoo Finance API, decodes the JSON body
// and checks for in-band API errors.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(ctx context.Context, u string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		if resp.StatusCode != http.StatusOK {
			return Response{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return response, nil
}
