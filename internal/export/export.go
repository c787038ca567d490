// Package export renders ledger snapshots as statements.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

const dateLayout = "2006-01-02"

// Header is the first row of a CSV statement. The importer recognizes it,
// so an exported statement can be imported back.
var Header = []string{"Date", "Title", "Amount EUR", "Amount NGN"}

// Exporter writes statements with every amount shown in both currencies.
type Exporter struct {
	conv *currency.Converter
}

func NewExporter(conv *currency.Converter) *Exporter {
	return &Exporter{conv: conv}
}

// WriteCSV writes txs in ledger order as a ';'-separated statement.
func (e *Exporter) WriteCSV(w io.Writer, txs []ledger.Transaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		row := []string{
			tx.Date.Format(dateLayout),
			tx.Title,
			e.plain(tx.Amount, currency.EUR),
			e.plain(tx.Amount, currency.NGN),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

func (e *Exporter) plain(amount decimal.Decimal, to currency.Code) string {
	return e.conv.Convert(amount, to).StringFixed(2)
}

// Summary renders a human readable statement: one line per transaction,
// newest first, followed by the balance in both currencies.
func (e *Exporter) Summary(txs []ledger.Transaction, primary currency.Code) string {
	var sb strings.Builder

	secondary := primary.Other()

	for _, tx := range ledger.Recent(txs, -1) {
		fmt.Fprintf(&sb, "* %s | %s | %s | %s\n",
			tx.Date.Format(dateLayout),
			tx.Title,
			e.conv.Format(tx.Amount, primary, true).Value,
			e.conv.Format(tx.Amount, secondary, false).Value,
		)
	}

	balance := ledger.Sum(txs)
	fmt.Fprintf(&sb, "Balance: %s (%s)\n",
		e.conv.Format(balance, primary, true).Value,
		e.conv.Format(balance, secondary, false).Value,
	)

	return sb.String()
}
