package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a signed movement of money in the base currency.
// Positive amounts are credits, negative amounts are debits.
type Transaction struct {
	ID     string
	Amount decimal.Decimal
	Title  string
	Date   time.Time
}

// IsCredit reports whether the transaction adds money to the balance.
func (t Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// CreateParams are the caller-supplied fields of a new transaction.
type CreateParams struct {
	Amount decimal.Decimal
	Title  string
	Date   time.Time
}
