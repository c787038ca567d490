package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/config"
	"github.com/MrJamesThe3rd/pocket/internal/currency"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Pocket", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, currency.EUR, cfg.PrimaryCurrency())
	assert.Equal(t, "1600", cfg.ExchangeRate().String())
	assert.Equal(t, 2, cfg.GridLayout().Cols)
	assert.Equal(t, 10*time.Second, cfg.Market.Timeout)
	assert.Equal(t, "postgres://postgres:@localhost:5432/pocket?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PRIMARY_CURRENCY", "ngn")
	t.Setenv("EUR_NGN_RATE", "1650.5")
	t.Setenv("GRID_COLUMNS", "3")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, currency.NGN, cfg.PrimaryCurrency())
	assert.Equal(t, "1650.5", cfg.ExchangeRate().String())
	assert.Equal(t, 3, cfg.GridLayout().Cols)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "UnsupportedCurrency", key: "PRIMARY_CURRENCY", val: "USD"},
		{name: "NonNumericRate", key: "EUR_NGN_RATE", val: "lots"},
		{name: "NegativeRate", key: "EUR_NGN_RATE", val: "-1"},
		{name: "ZeroColumns", key: "GRID_COLUMNS", val: "0"},
		{name: "UnknownStorage", key: "STORAGE_DRIVER", val: "sqlite"},
		{name: "BadPort", key: "PORT", val: "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
