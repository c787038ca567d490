package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
	"github.com/MrJamesThe3rd/pocket/internal/market"
	"github.com/MrJamesThe3rd/pocket/internal/transfer"
	"github.com/MrJamesThe3rd/pocket/internal/widget"
)

const dbTimeout = 5 * time.Second

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// Services is everything the screens read from and write to.
type Services struct {
	Ledger    *ledger.Service
	Transfers *transfer.Service
	Widgets   *widget.Service
	Market    market.Source
	Prefs     *currency.Preference
	Conv      *currency.Converter
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var (
	accent    = lipgloss.Color("205")
	muted     = lipgloss.Color("240")
	positive  = lipgloss.Color("46")
	negative  = lipgloss.Color("196")
	highlight = lipgloss.Color("63")

	errorStyle  = lipgloss.NewStyle().Foreground(negative)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(accent).Render(s)
}

// amountStyle colors credits green and debits red.
func amountStyle(tx ledger.Transaction) lipgloss.Style {
	if tx.IsCredit() {
		return lipgloss.NewStyle().Foreground(positive)
	}

	return lipgloss.NewStyle().Foreground(negative)
}
