package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/grid"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Pocket"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Storage struct {
		Driver string `envconfig:"STORAGE_DRIVER" default:"memory"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pocket"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Currency struct {
		Primary string `envconfig:"PRIMARY_CURRENCY" default:"EUR"`
		// Naira per euro.
		Rate string `envconfig:"EUR_NGN_RATE" default:"1600"`
	}

	Grid struct {
		Columns        int     `envconfig:"GRID_COLUMNS" default:"2"`
		Tile           float64 `envconfig:"GRID_TILE" default:"163.5"`
		Margin         float64 `envconfig:"GRID_MARGIN" default:"16"`
		ViewportHeight float64 `envconfig:"GRID_VIEWPORT_HEIGHT" default:"700"`
	}

	Market struct {
		Mock             bool          `envconfig:"MARKET_MOCK" default:"false"`
		APIKey           string        `envconfig:"CRYPTO_API_KEY"`
		CoinMarketCapURL string        `envconfig:"COINMARKETCAP_URL" default:"https://pro-api.coinmarketcap.com"`
		CoinPaprikaURL   string        `envconfig:"COINPAPRIKA_URL" default:"https://api.coinpaprika.com"`
		Timeout          time.Duration `envconfig:"MARKET_TIMEOUT" default:"10s"`
	}

	Auth struct {
		// Empty disables the bearer check on ledger mutations.
		Secret string `envconfig:"AUTH_SECRET"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) ExchangeRate() decimal.Decimal {
	return decimal.RequireFromString(c.Currency.Rate)
}

func (c *Config) PrimaryCurrency() currency.Code {
	return currency.Code(c.Currency.Primary)
}

func (c *Config) GridLayout() grid.Layout {
	return grid.Layout{
		Cols:   c.Grid.Columns,
		Tile:   c.Grid.Tile,
		Margin: c.Grid.Margin,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	code, err := currency.ParseCode(c.Currency.Primary)
	if err != nil {
		return err
	}

	c.Currency.Primary = string(code)

	rate, err := decimal.NewFromString(c.Currency.Rate)
	if err != nil {
		return fmt.Errorf("parsing EUR_NGN_RATE: %w", err)
	}

	if !rate.IsPositive() {
		return fmt.Errorf("EUR_NGN_RATE must be positive, got %s", rate)
	}

	if c.Grid.Columns < 1 {
		return fmt.Errorf("GRID_COLUMNS must be at least 1, got %d", c.Grid.Columns)
	}

	if c.Grid.Tile <= 0 || c.Grid.Margin < 0 {
		return fmt.Errorf("grid tile must be positive and margin non-negative")
	}

	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	return nil
}
