package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    currency.Code
		wantErr error
	}{
		{name: "EUR", input: "EUR", want: currency.EUR},
		{name: "LowercaseWithSpaces", input: " ngn ", want: currency.NGN},
		{name: "ValidISOButUnsupported", input: "USD", wantErr: currency.ErrUnsupported},
		{name: "Garbage", input: "euro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := currency.ParseCode(tt.input)
			if tt.want == "" {
				require.Error(t, err)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCode_Other(t *testing.T) {
	assert.Equal(t, currency.NGN, currency.EUR.Other())
	assert.Equal(t, currency.EUR, currency.NGN.Other())
}

func TestConverter_Format(t *testing.T) {
	conv := currency.NewConverter(decimal.NewFromInt(1600))

	tests := []struct {
		name      string
		amount    string
		to        currency.Code
		wantValue string
		wantSym   string
	}{
		{name: "EURWhole", amount: "300", to: currency.EUR, wantValue: "€300.00", wantSym: "€"},
		{name: "EURGrouping", amount: "1234.5", to: currency.EUR, wantValue: "€1,234.50", wantSym: "€"},
		{name: "EURNegative", amount: "-200", to: currency.EUR, wantValue: "-€200.00", wantSym: "€"},
		{name: "EURRoundsHalfUp", amount: "0.005", to: currency.EUR, wantValue: "€0.01", wantSym: "€"},
		{name: "EURZero", amount: "0", to: currency.EUR, wantValue: "€0.00", wantSym: "€"},
		{name: "NGNConverted", amount: "100", to: currency.NGN, wantValue: "₦160,000.00", wantSym: "₦"},
		{name: "NGNNegative", amount: "-1.25", to: currency.NGN, wantValue: "-₦2,000.00", wantSym: "₦"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conv.Format(decimal.RequireFromString(tt.amount), tt.to, true)
			assert.Equal(t, tt.wantValue, got.Value)
			assert.Equal(t, tt.wantSym, got.Symbol)
		})
	}
}

func TestConverter_PrimaryFlagDoesNotChangeArithmetic(t *testing.T) {
	conv := currency.NewConverter(decimal.NewFromInt(1600))
	amount := decimal.NewFromInt(42)

	for _, code := range currency.Codes() {
		assert.Equal(t, conv.Format(amount, code, true), conv.Format(amount, code, false))
	}
}

func TestConverter_ConvertDiffersByRate(t *testing.T) {
	conv := currency.NewConverter(decimal.NewFromInt(1600))
	amount := decimal.NewFromInt(100)

	eur := conv.Convert(amount, currency.EUR)
	ngn := conv.Convert(amount, currency.NGN)

	assert.True(t, ngn.Equal(eur.Mul(conv.Rate())))
	assert.Equal(t, "₦160,000.00", currency.FormatCurrency(amount, currency.NGN, true).Value)
	assert.Equal(t, "€100.00", currency.FormatCurrency(amount, currency.EUR, true).Value)
}

func TestConverter_ToBase(t *testing.T) {
	conv := currency.NewConverter(currency.DefaultRate)

	assert.True(t, decimal.NewFromInt(25).Equal(conv.ToBase(decimal.NewFromInt(25), currency.EUR)))
	assert.True(t, decimal.RequireFromString("2.5").Equal(conv.ToBase(decimal.NewFromInt(4000), currency.NGN)))

	round := conv.Convert(conv.ToBase(decimal.NewFromInt(800), currency.NGN), currency.NGN)
	assert.True(t, decimal.NewFromInt(800).Equal(round))
}
