package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultRate is the number of naira per euro.
var DefaultRate = decimal.NewFromInt(1600)

// Amount is a display-ready monetary value.
type Amount struct {
	Value  string `json:"value"`
	Symbol string `json:"symbol"`
}

type locale struct {
	decimal  string
	thousand string
	template string
}

// en-DE and en-NG both render as symbol, comma grouping, dot decimals.
var locales = map[Code]locale{
	EUR: {decimal: ".", thousand: ",", template: "$1"},
	NGN: {decimal: ".", thousand: ",", template: "$1"},
}

// Converter projects base-currency amounts into either display currency.
type Converter struct {
	rate decimal.Decimal
}

// NewConverter returns a Converter using rate units of NGN per EUR.
func NewConverter(rate decimal.Decimal) *Converter {
	return &Converter{rate: rate}
}

func (c *Converter) Rate() decimal.Decimal {
	return c.rate
}

// Convert multiplies amount by the fixed rate when to differs from the base currency.
func (c *Converter) Convert(amount decimal.Decimal, to Code) decimal.Decimal {
	if to == Base {
		return amount
	}

	return amount.Mul(c.rate)
}

// ToBase is the inverse of Convert: it turns an amount entered in from back
// into the base currency.
func (c *Converter) ToBase(amount decimal.Decimal, from Code) decimal.Decimal {
	if from == Base || c.rate.IsZero() {
		return amount
	}

	return amount.Div(c.rate)
}

// Format converts amount into to and renders it with two decimals and the
// currency's grouping rules. isPrimary does not change the arithmetic.
func (c *Converter) Format(amount decimal.Decimal, to Code, isPrimary bool) Amount {
	cur := money.GetCurrency(string(to))
	if cur == nil {
		cur = money.GetCurrency(string(Base))
		to = Base
	}

	loc := locales[to]
	f := money.NewFormatter(2, loc.decimal, loc.thousand, cur.Grapheme, loc.template)

	minor := c.Convert(amount, to).Round(2).Shift(2).IntPart()

	return Amount{
		Value:  f.Format(minor),
		Symbol: cur.Grapheme,
	}
}

// FormatCurrency formats amount with the default exchange rate.
func FormatCurrency(amount decimal.Decimal, to Code, isPrimary bool) Amount {
	return NewConverter(DefaultRate).Format(amount, to, isPrimary)
}
