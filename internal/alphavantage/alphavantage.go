// Package alphavantage fetches latest prices from the Alpha Vantage GLOBAL_QUOTE endpoint.
package alphavantage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Position-Ledger-Backend/internal/apperrors"
)

// DefaultBaseURL is the Alpha Vantage query endpoint.
const DefaultBaseURL = "https://www.alphavantage.co/query"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 1 << 20

// Client queries Alpha Vantage for stock quotes.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client, typically to apply a timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL overrides the endpoint. An empty value keeps the default.
func WithBaseURL(u string) Option {
	return func(client *Client) {
		if u != "" {
			client.baseURL = u
		}
	}
}

// NewClient creates a new Alpha Vantage client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name identifies the provider in logs.
func (c *Client) Name() string {
	return "alphavantage"
}

// LatestPrice returns the "05. price" field of the symbol's global quote.
// Any failure wraps apperrors.ErrQuoteUnavailable.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	resp, err := c.QueryGlobalQuote(ctx, symbol)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrQuoteUnavailable, err)
	}
	price, err := ParsePrice(resp)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", apperrors.ErrQuoteUnavailable, symbol, err)
	}
	return price, nil
}

// ParsePrice extracts the price from a decoded response.
// In-band API errors, an empty quote and non-numeric or negative prices are errors.
func ParsePrice(resp GlobalQuoteResponse) (decimal.Decimal, error) {
	switch {
	case resp.ErrorMessage != "":
		return decimal.Zero, fmt.Errorf("alphavantage error: %s", resp.ErrorMessage)
	case resp.Note != "":
		return decimal.Zero, fmt.Errorf("alphavantage note: %s", resp.Note)
	case resp.Information != "":
		return decimal.Zero, fmt.Errorf("alphavantage information: %s", resp.Information)
	}

	raw := strings.TrimSpace(resp.GlobalQuote.Price)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("symbol not found")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed price %q", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s", price)
	}
	return price, nil
}

// QueryGlobalQuote performs one GLOBAL_QUOTE request and decodes the body.
func (c *Client) QueryGlobalQuote(ctx context.Context, symbol string) (GlobalQuoteResponse, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return GlobalQuoteResponse{}, c.redact(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return GlobalQuoteResponse{}, c.redact(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GlobalQuoteResponse{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return GlobalQuoteResponse{}, err
	}

	var response GlobalQuoteResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return GlobalQuoteResponse{}, fmt.Errorf("malformed response: %w", err)
	}
	return response, nil
}

// redact replaces the request URL in err with the base URL.
// The full URL holds the API key in its query string.
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = fmt.Errorf("%s %s: %w", urlErr.Op, c.baseURL, urlErr.Err)
	}
	if c.apiKey != "" && strings.Contains(err.Error(), c.apiKey) {
		return errors.New(strings.ReplaceAll(err.Error(), c.apiKey, "REDACTED"))
	}
	return err
}
