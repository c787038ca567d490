package market

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingAPIKey = errors.New("market data API key is missing")
	ErrMissingIDs    = errors.New("missing coin ids")
	ErrUpstream      = errors.New("market data provider error")
)

// DefaultListingLimit is how many coins Listings returns when no limit is given.
const DefaultListingLimit = 5

// Source serves coin listings, metadata and price history.
type Source interface {
	Listings(ctx context.Context, limit int) ([]Listing, error)
	Info(ctx context.Context, ids []string) (map[string]Info, error)
	Tickers(ctx context.Context, query TickerQuery) ([]Ticker, error)
}

// Quote is the market data for a coin in one fiat currency.
type Quote struct {
	Price            decimal.Decimal `json:"price"`
	Volume24h        decimal.Decimal `json:"volume_24h"`
	MarketCap        decimal.Decimal `json:"market_cap"`
	PercentChange1h  float64         `json:"percent_change_1h"`
	PercentChange24h float64         `json:"percent_change_24h"`
	PercentChange7d  float64         `json:"percent_change_7d"`
	LastUpdated      time.Time       `json:"last_updated"`
}

type Listing struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	Symbol            string           `json:"symbol"`
	Slug              string           `json:"slug"`
	CMCRank           int              `json:"cmc_rank"`
	CirculatingSupply float64          `json:"circulating_supply"`
	TotalSupply       float64          `json:"total_supply"`
	MaxSupply         *float64         `json:"max_supply"`
	Tags              []string         `json:"tags"`
	Quote             map[string]Quote `json:"quote"`
}

// EUR returns the euro quote, which every listing is requested in.
func (l Listing) EUR() Quote {
	return l.Quote["EUR"]
}

type Info struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Symbol      string              `json:"symbol"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Slug        string              `json:"slug"`
	Logo        string              `json:"logo"`
	Tags        []string            `json:"tags"`
	URLs        map[string][]string `json:"urls"`
	DateAdded   time.Time           `json:"date_added"`
}

type Ticker struct {
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
	Volume24h decimal.Decimal `json:"volume_24h"`
	MarketCap decimal.Decimal `json:"market_cap"`
}

// TickerQuery selects a window of historical tickers. Zero fields take the
// defaults of WithDefaults.
type TickerQuery struct {
	CoinID   string
	Start    string
	Interval string
}

func (q TickerQuery) WithDefaults() TickerQuery {
	if q.CoinID == "" {
		q.CoinID = "btc-bitcoin"
	}

	if q.Start == "" {
		q.Start = "2025-07-01"
	}

	if q.Interval == "" {
		q.Interval = "1d"
	}

	return q
}
