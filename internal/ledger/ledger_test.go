package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLedger_BalanceIsSumOfAmounts(t *testing.T) {
	tests := []struct {
		name    string
		amounts []string
		want    string
	}{
		{name: "Empty", amounts: nil, want: "0"},
		{name: "SingleCredit", amounts: []string{"500"}, want: "500"},
		{name: "CreditAndDebit", amounts: []string{"500", "-200"}, want: "300"},
		{name: "GoesNegative", amounts: []string{"-10.50", "3.25", "-0.75"}, want: "-8"},
		{name: "ZeroAmounts", amounts: []string{"0", "0", "12.34"}, want: "12.34"},
		{name: "Fractions", amounts: []string{"0.1", "0.2"}, want: "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ledger.New()
			for _, a := range tt.amounts {
				l.RunTransaction(ledger.Transaction{Amount: amount(a), Title: "test"})
			}

			assert.True(t, amount(tt.want).Equal(l.Balance()), "got %s", l.Balance())
			assert.True(t, ledger.Sum(l.Transactions()).Equal(l.Balance()))
			assert.Equal(t, len(tt.amounts), l.Len())
		})
	}
}

func TestLedger_ClearResetsBalance(t *testing.T) {
	l := ledger.New()
	l.RunTransaction(ledger.Transaction{Amount: amount("42")})
	l.RunTransaction(ledger.Transaction{Amount: amount("-7")})

	l.ClearTransactions()

	assert.True(t, l.Balance().IsZero())
	assert.Empty(t, l.Transactions())

	l.ClearTransactions()
	assert.True(t, l.Balance().IsZero())
}

func TestLedger_RunTransactionPreservesOrderAndFillsDefaults(t *testing.T) {
	l := ledger.New()
	date := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

	first := l.RunTransaction(ledger.Transaction{ID: "a", Amount: amount("1"), Title: "first", Date: date})
	second := l.RunTransaction(ledger.Transaction{Amount: amount("2"), Title: "second"})

	assert.Equal(t, "a", first.ID)
	assert.Equal(t, date, first.Date)
	assert.NotEmpty(t, second.ID)
	assert.False(t, second.Date.IsZero())

	txs := l.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, "first", txs[0].Title)
	assert.Equal(t, "second", txs[1].Title)
}

func TestLedger_TransactionsIsSnapshot(t *testing.T) {
	l := ledger.New()
	l.RunTransaction(ledger.Transaction{Amount: amount("5")})

	txs := l.Transactions()
	txs[0].Amount = amount("1000")

	assert.True(t, amount("5").Equal(l.Balance()))
}

func TestLedger_Subscribe(t *testing.T) {
	l := ledger.New()

	var sizes []int

	unsubscribe := l.Subscribe(func(txs []ledger.Transaction) {
		sizes = append(sizes, len(txs))
	})

	l.RunTransaction(ledger.Transaction{Amount: amount("1")})
	l.RunTransaction(ledger.Transaction{Amount: amount("2")})
	l.ClearTransactions()
	unsubscribe()
	l.RunTransaction(ledger.Transaction{Amount: amount("3")})

	assert.Equal(t, []int{1, 2, 0}, sizes)
}

func TestLedger_EndToEnd(t *testing.T) {
	l := ledger.New()
	assert.True(t, l.Balance().IsZero())

	l.RunTransaction(ledger.Transaction{Amount: amount("500"), Title: "Added money"})
	l.RunTransaction(ledger.Transaction{Amount: amount("-200"), Title: "Added money"})

	balance := l.Balance()
	assert.True(t, amount("300").Equal(balance))

	got := currency.FormatCurrency(balance, currency.EUR, true)
	assert.Equal(t, "€300.00", got.Value)
	assert.Equal(t, "€", got.Symbol)
}

func TestSpent(t *testing.T) {
	july := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	txs := []ledger.Transaction{
		{Amount: amount("-50"), Date: july.AddDate(0, 0, -3)},
		{Amount: amount("-20.5"), Date: july.AddDate(0, 0, 2)},
		{Amount: amount("100"), Date: july.AddDate(0, 0, 3)},
		{Amount: amount("-4.5"), Date: july},
	}

	assert.True(t, amount("25").Equal(ledger.Spent(txs, july)))
	assert.True(t, amount("75").Equal(ledger.Spent(txs, time.Time{})))
	assert.True(t, ledger.Spent(nil, july).IsZero())
}

func TestLatestAndRecent(t *testing.T) {
	_, ok := ledger.Latest(nil)
	assert.False(t, ok)

	txs := []ledger.Transaction{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	latest, ok := ledger.Latest(txs)
	require.True(t, ok)
	assert.Equal(t, "3", latest.ID)

	recent := ledger.Recent(txs, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "3", recent[0].ID)
	assert.Equal(t, "2", recent[1].ID)

	assert.Len(t, ledger.Recent(txs, 10), 3)
	assert.Equal(t, "1", txs[0].ID, "input must not be reordered")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Jul 4, 2025", ledger.FormatDate(time.Date(2025, 7, 4, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Invalid Date", ledger.FormatDate(time.Time{}))
}

func TestMonthStart(t *testing.T) {
	got := ledger.MonthStart(time.Date(2025, 7, 19, 13, 5, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), got)
}
