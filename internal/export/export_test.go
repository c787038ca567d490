package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/export"
	"github.com/MrJamesThe3rd/pocket/internal/importer"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

func fixture() []ledger.Transaction {
	return []ledger.Transaction{
		{
			ID:     "a",
			Amount: decimal.NewFromInt(300),
			Title:  "Add Money",
			Date:   time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:     "b",
			Amount: decimal.RequireFromString("-12.5"),
			Title:  "Groceries; weekly",
			Date:   time.Date(2025, 7, 3, 18, 30, 0, 0, time.UTC),
		},
	}
}

func TestExporter_WriteCSV(t *testing.T) {
	e := export.NewExporter(currency.NewConverter(currency.DefaultRate))

	var buf bytes.Buffer
	require.NoError(t, e.WriteCSV(&buf, fixture()))

	want := "Date;Title;Amount EUR;Amount NGN\n" +
		"2025-07-01;Add Money;300.00;480000.00\n" +
		"2025-07-03;\"Groceries; weekly\";-12.50;-20000.00\n"
	assert.Equal(t, want, buf.String())
}

func TestExporter_WriteCSV_RoundTrip(t *testing.T) {
	e := export.NewExporter(currency.NewConverter(currency.DefaultRate))
	txs := fixture()

	var buf bytes.Buffer
	require.NoError(t, e.WriteCSV(&buf, txs))

	got, err := importer.NewParser().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, got, len(txs))

	for i, p := range got {
		assert.Equal(t, txs[i].Title, p.Title)
		assert.True(t, txs[i].Amount.Equal(p.Amount))
		assert.Equal(t, txs[i].Date.Format("2006-01-02"), p.Date.Format("2006-01-02"))
	}
}

func TestExporter_Summary(t *testing.T) {
	e := export.NewExporter(currency.NewConverter(currency.DefaultRate))

	tests := []struct {
		name    string
		primary currency.Code
		want    string
	}{
		{
			name:    "euro primary",
			primary: currency.EUR,
			want: "* 2025-07-03 | Groceries; weekly | -€12.50 | -₦20,000.00\n" +
				"* 2025-07-01 | Add Money | €300.00 | ₦480,000.00\n" +
				"Balance: €287.50 (₦460,000.00)\n",
		},
		{
			name:    "naira primary",
			primary: currency.NGN,
			want: "* 2025-07-03 | Groceries; weekly | -₦20,000.00 | -€12.50\n" +
				"* 2025-07-01 | Add Money | ₦480,000.00 | €300.00\n" +
				"Balance: ₦460,000.00 (€287.50)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Summary(fixture(), tt.primary))
		})
	}

	assert.Equal(t, "Balance: €0.00 (₦0.00)\n", e.Summary(nil, currency.EUR))
}
