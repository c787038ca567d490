package ledger

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the sum of every amount currently in the ledger.
func (l *Ledger) Balance() decimal.Decimal {
	return Sum(l.Transactions())
}

// Sum adds up the amounts of txs. An empty slice sums to zero.
func Sum(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}

	return total
}

// Spent returns the absolute total of debits dated at or after since.
// A zero since counts every debit.
func Spent(txs []Transaction, since time.Time) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		if !tx.Amount.IsNegative() || tx.Date.Before(since) {
			continue
		}

		total = total.Add(tx.Amount.Abs())
	}

	return total
}

// Latest returns the most recently appended transaction.
func Latest(txs []Transaction) (Transaction, bool) {
	if len(txs) == 0 {
		return Transaction{}, false
	}

	return txs[len(txs)-1], true
}

// Recent returns up to n transactions, newest first.
func Recent(txs []Transaction, n int) []Transaction {
	out := slices.Clone(txs)
	slices.Reverse(out)

	if n >= 0 && len(out) > n {
		out = out[:n]
	}

	return out
}

// MonthStart is the first instant of t's calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
