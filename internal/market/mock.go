package market

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

var _ Source = (*Mock)(nil)

// Mock serves a fixed snapshot of market data for demos and offline use.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

var snapshotTime = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(f float64) *float64 {
	return &f
}

var mockListings = []Listing{
	{
		ID: 1, Name: "Bitcoin", Symbol: "BTC", Slug: "bitcoin", CMCRank: 1,
		CirculatingSupply: 19730250, TotalSupply: 19730250, MaxSupply: ptr(21000000),
		Tags: []string{"mineable", "pow", "sha-256", "store-of-value"},
		Quote: map[string]Quote{"EUR": {
			Price: d("78412.54"), Volume24h: d("31245876543.21"), MarketCap: d("1547123456789.12"),
			PercentChange1h: 0.21, PercentChange24h: 3.12, PercentChange7d: 6.45, LastUpdated: snapshotTime,
		}},
	},
	{
		ID: 1027, Name: "Ethereum", Symbol: "ETH", Slug: "ethereum", CMCRank: 2,
		CirculatingSupply: 120350789, TotalSupply: 120350789,
		Tags: []string{"smart-contracts", "layer-1", "pos"},
		Quote: map[string]Quote{"EUR": {
			Price: d("4151.66"), Volume24h: d("18765432109.87"), MarketCap: d("499678123456.78"),
			PercentChange1h: -0.12, PercentChange24h: 5.23, PercentChange7d: 9.87, LastUpdated: snapshotTime,
		}},
	},
	{
		ID: 825, Name: "Tether USDt", Symbol: "USDT", Slug: "tether", CMCRank: 3,
		CirculatingSupply: 104750987654, TotalSupply: 108500123456,
		Tags: []string{"stablecoin", "usd-stablecoin"},
		Quote: map[string]Quote{"EUR": {
			Price: d("0.9202"), Volume24h: d("65432109876.54"), MarketCap: d("96391847321.03"),
			PercentChange1h: 0.01, PercentChange24h: -0.02, PercentChange7d: 0.03, LastUpdated: snapshotTime,
		}},
	},
}

var mockInfo = map[string]Info{
	"1": {
		ID: 1, Name: "Bitcoin", Symbol: "BTC", Category: "coin", Slug: "bitcoin",
		Description: "Bitcoin (BTC) is the first decentralized cryptocurrency, enabling peer-to-peer payments without intermediaries.",
		Logo:        "https://s2.coinmarketcap.com/static/img/coins/64x64/1.png",
		Tags:        []string{"mineable", "pow", "sha-256", "store-of-value"},
		URLs:        map[string][]string{"website": {"https://bitcoin.org/"}, "explorer": {"https://blockchain.info/"}},
		DateAdded:   time.Date(2009, 1, 3, 0, 0, 0, 0, time.UTC),
	},
	"1027": {
		ID: 1027, Name: "Ethereum", Symbol: "ETH", Category: "coin", Slug: "ethereum",
		Description: "Ethereum (ETH) runs smart contracts and decentralized applications on its own blockchain.",
		Logo:        "https://s2.coinmarketcap.com/static/img/coins/64x64/1027.png",
		Tags:        []string{"smart-contracts", "layer-1", "pos"},
		URLs:        map[string][]string{"website": {"https://ethereum.org/"}, "explorer": {"https://etherscan.io/"}},
		DateAdded:   time.Date(2015, 7, 30, 0, 0, 0, 0, time.UTC),
	},
	"825": {
		ID: 825, Name: "Tether USDt", Symbol: "USDT", Category: "token", Slug: "tether",
		Description: "Tether USDt (USDT) is a stablecoin pegged to the US dollar.",
		Logo:        "https://s2.coinmarketcap.com/static/img/coins/64x64/825.png",
		Tags:        []string{"stablecoin", "usd-stablecoin"},
		URLs:        map[string][]string{"website": {"https://tether.to/"}},
		DateAdded:   time.Date(2014, 10, 6, 0, 0, 0, 0, time.UTC),
	},
}

func (m *Mock) Listings(_ context.Context, limit int) ([]Listing, error) {
	if limit <= 0 {
		limit = DefaultListingLimit
	}

	return mockListings[:min(limit, len(mockListings))], nil
}

// Info returns the known coins among ids; unknown ids are skipped.
func (m *Mock) Info(_ context.Context, ids []string) (map[string]Info, error) {
	if len(ids) == 0 {
		return nil, ErrMissingIDs
	}

	out := make(map[string]Info, len(ids))
	for _, id := range ids {
		if info, ok := mockInfo[id]; ok {
			out[id] = info
		}
	}

	return out, nil
}

// Tickers returns a synthetic daily BTC series starting at query.Start.
func (m *Mock) Tickers(_ context.Context, query TickerQuery) ([]Ticker, error) {
	query = query.WithDefaults()

	start, err := time.Parse(time.DateOnly, query.Start)
	if err != nil {
		start = snapshotTime.AddDate(0, 0, -14)
	}

	base := d("74000")
	step := d("310.25")

	tickers := make([]Ticker, 14)
	for i := range tickers {
		price := base.Add(step.Mul(decimal.NewFromInt(int64(i))))
		tickers[i] = Ticker{
			Timestamp: start.AddDate(0, 0, i),
			Price:     price,
			Volume24h: d("30000000000"),
			MarketCap: price.Mul(d("19730250")),
		}
	}

	return tickers, nil
}
