package widget

import (
	"time"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

// CashbackRate is the flat cashback shown on the cashback tile.
const CashbackRate = "5%"

// Content is what a tile displays.
type Content struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// Contents renders every tile from a ledger snapshot in the primary currency.
func Contents(txs []ledger.Transaction, conv *currency.Converter, primary currency.Code, now time.Time) map[string]Content {
	out := make(map[string]Content, 4)

	spent := ledger.Spent(txs, ledger.MonthStart(now))
	out[TileSpent] = Content{
		ID:    TileSpent,
		Title: "Spent This Month",
		Lines: []string{conv.Format(spent, primary, true).Value},
	}

	out[TileCashback] = Content{
		ID:    TileCashback,
		Title: "Cashback",
		Lines: []string{CashbackRate},
	}

	recent := Content{ID: TileRecent, Title: "Recent Transaction"}
	if tx, ok := ledger.Latest(txs); ok {
		recent.Lines = []string{
			conv.Format(tx.Amount, primary, true).Value,
			tx.Title,
			ledger.FormatDate(tx.Date),
		}
	} else {
		recent.Lines = []string{"No transactions"}
	}

	out[TileRecent] = recent

	out[TileCards] = Content{
		ID:    TileCards,
		Title: "Cards",
		Lines: []string{"[ ▭ ]"},
	}

	return out
}
