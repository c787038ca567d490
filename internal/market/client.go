package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var _ Source = (*Client)(nil)

// Client talks to CoinMarketCap for listings and metadata and to
// CoinPaprika for price history.
type Client struct {
	httpClient    *http.Client
	apiKey        string
	coinMarketCap string
	coinPaprika   string
}

func NewClient(apiKey, coinMarketCapURL, coinPaprikaURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient:    &http.Client{Timeout: timeout},
		apiKey:        apiKey,
		coinMarketCap: strings.TrimRight(coinMarketCapURL, "/"),
		coinPaprika:   strings.TrimRight(coinPaprikaURL, "/"),
	}
}

type status struct {
	ErrorCode    int     `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

// err reports a CoinMarketCap error carried in a 200 response body.
func (s status) err() error {
	if s.ErrorCode == 0 {
		return nil
	}

	msg := "unknown error"
	if s.ErrorMessage != nil {
		msg = *s.ErrorMessage
	}

	return fmt.Errorf("%w: code %d: %s", ErrUpstream, s.ErrorCode, msg)
}

func (c *Client) Listings(ctx context.Context, limit int) ([]Listing, error) {
	if limit <= 0 {
		limit = DefaultListingLimit
	}

	q := url.Values{}
	q.Set("start", "1")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("convert", "EUR")

	var resp struct {
		Data   []Listing `json:"data"`
		Status status    `json:"status"`
	}

	if err := c.getCoinMarketCap(ctx, "/v1/cryptocurrency/listings/latest", q, &resp); err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}

	if err := resp.Status.err(); err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}

	return resp.Data, nil
}

func (c *Client) Info(ctx context.Context, ids []string) (map[string]Info, error) {
	if len(ids) == 0 {
		return nil, ErrMissingIDs
	}

	q := url.Values{}
	q.Set("id", strings.Join(ids, ","))

	var resp struct {
		Data   map[string]Info `json:"data"`
		Status status          `json:"status"`
	}

	if err := c.getCoinMarketCap(ctx, "/v2/cryptocurrency/info", q, &resp); err != nil {
		return nil, fmt.Errorf("fetching info: %w", err)
	}

	if err := resp.Status.err(); err != nil {
		return nil, fmt.Errorf("fetching info: %w", err)
	}

	return resp.Data, nil
}

func (c *Client) Tickers(ctx context.Context, query TickerQuery) ([]Ticker, error) {
	query = query.WithDefaults()

	q := url.Values{}
	q.Set("start", query.Start)
	q.Set("interval", query.Interval)

	endpoint := fmt.Sprintf("%s/v1/tickers/%s/historical?%s", c.coinPaprika, url.PathEscape(query.CoinID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var tickers []Ticker
	if err := c.do(req, &tickers); err != nil {
		return nil, fmt.Errorf("fetching tickers: %w", err)
	}

	return tickers, nil
}

func (c *Client) getCoinMarketCap(ctx context.Context, path string, q url.Values, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.coinMarketCap+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-CMC_PRO_API_KEY", c.apiKey)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
