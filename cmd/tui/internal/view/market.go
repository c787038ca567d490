package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/market"
)

const (
	marketTimeout = 15 * time.Second
	listingLimit  = 10
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

type MarketModel struct {
	CommonModel
	source market.Source

	table    table.Model
	spinner  spinner.Model
	loading  bool
	listings []market.Listing
	info     map[string]market.Info
	history  []market.Ticker
	err      error
}

func NewMarketModel(source market.Source) MarketModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 16},
		{Title: "Symbol", Width: 8},
		{Title: "Price", Width: 16},
		{Title: "1h", Width: 8},
		{Title: "24h", Width: 8},
		{Title: "7d", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(listingLimit+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accent)

	return MarketModel{
		source:  source,
		table:   t,
		spinner: sp,
		loading: true,
	}
}

func (m MarketModel) Title() string { return "Crypto" }

func (m MarketModel) ShortHelp() string {
	return "Esc: back | r: refresh | ↑/↓: select"
}

func (m MarketModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m MarketModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case marketLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.listings = msg.listings
			m.info = msg.info
			m.history = msg.history
			m.refreshTable()
		}

		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.err = nil

			return m, tea.Batch(m.spinner.Tick, m.loadCmd())
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *MarketModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.listings))
	for _, l := range m.listings {
		q := l.EUR()
		rows = append(rows, table.Row{
			strconv.Itoa(l.CMCRank),
			l.Name,
			l.Symbol,
			currency.FormatCurrency(q.Price, currency.EUR, true).Value,
			percent(q.PercentChange1h),
			percent(q.PercentChange24h),
			percent(q.PercentChange7d),
		})
	}

	m.table.SetRows(rows)
}

func percent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// sparkline scales prices onto eight block heights.
func sparkline(tickers []market.Ticker) string {
	if len(tickers) == 0 {
		return ""
	}

	lo, hi := tickers[0].Price, tickers[0].Price
	for _, t := range tickers[1:] {
		lo = decimal.Min(lo, t.Price)
		hi = decimal.Max(hi, t.Price)
	}

	span := hi.Sub(lo)
	top := decimal.NewFromInt(int64(len(sparkBlocks) - 1))

	var sb strings.Builder

	for _, t := range tickers {
		idx := 0
		if span.IsPositive() {
			idx = int(t.Price.Sub(lo).Div(span).Mul(top).Round(0).IntPart())
		}

		sb.WriteRune(sparkBlocks[idx])
	}

	return sb.String()
}

func (m MarketModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Loading market data...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(r to retry, Esc to go back)",
		)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(muted).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Top cryptocurrencies"),
		"",
		tableView,
	)

	if detail := m.viewDetail(); detail != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", detail)
	}

	if len(m.history) > 0 {
		first, last := m.history[0], m.history[len(m.history)-1]
		content = lipgloss.JoinVertical(lipgloss.Left,
			content,
			"",
			fmt.Sprintf("BTC since %s  %s  %s",
				first.Timestamp.Format(time.DateOnly),
				activeStyle(sparkline(m.history)),
				currency.FormatCurrency(last.Price, currency.EUR, true).Value,
			),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m MarketModel) viewDetail() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.listings) {
		return ""
	}

	info, ok := m.info[strconv.Itoa(m.listings[idx].ID)]
	if !ok {
		return ""
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(highlight).
		Width(44).
		Render(fmt.Sprintf("%s (%s)\n%s\n\n%s",
			info.Name, info.Symbol,
			faintStyle.Render(strings.Join(info.Tags, ", ")),
			info.Description,
		))
}

// Messages

type marketLoadedMsg struct {
	listings []market.Listing
	info     map[string]market.Info
	history  []market.Ticker
	err      error
}

func (m MarketModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), marketTimeout)
		defer cancel()

		listings, err := m.source.Listings(ctx, listingLimit)
		if err != nil {
			return marketLoadedMsg{err: err}
		}

		ids := make([]string, len(listings))
		for i, l := range listings {
			ids[i] = strconv.Itoa(l.ID)
		}

		var info map[string]market.Info
		if len(ids) > 0 {
			info, err = m.source.Info(ctx, ids)
			if err != nil {
				return marketLoadedMsg{err: err}
			}
		}

		history, err := m.source.Tickers(ctx, market.TickerQuery{})
		if err != nil {
			return marketLoadedMsg{err: err}
		}

		return marketLoadedMsg{listings: listings, info: info, history: history}
	}
}
