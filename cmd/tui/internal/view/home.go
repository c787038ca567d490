package view

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
	"github.com/MrJamesThe3rd/pocket/internal/transfer"
)

const recentLimit = 8

type homeState int

const (
	homeStateBrowse homeState = iota
	homeStateAdd
	homeStateTransfer
	homeStateClear
)

// LedgerChangedMsg is sent whenever the ledger is appended to or cleared.
type LedgerChangedMsg struct{}

// CurrencyChangedMsg is sent whenever the primary currency is set.
type CurrencyChangedMsg struct{}

type HomeModel struct {
	CommonModel
	svc Services

	state   homeState
	form    *huh.Form
	txs     []ledger.Transaction
	primary currency.Code
	status  string
	err     error

	// Form bindings live behind a pointer so they survive model copies.
	fields *homeFields
}

type homeFields struct {
	amount    string
	title     string
	kind      transfer.Kind
	recipient string
	confirm   bool
}

func NewHomeModel(svc Services) HomeModel {
	return HomeModel{
		svc:     svc,
		txs:     svc.Ledger.Transactions(),
		primary: svc.Prefs.Primary(),
		fields:  &homeFields{},
	}
}

func (m HomeModel) Title() string { return "Home" }

func (m HomeModel) ShortHelp() string {
	if m.state != homeStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | t: toggle currency | a: add money | r: random | s: send | c: clear"
}

func (m HomeModel) Init() tea.Cmd {
	return nil
}

func (m HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LedgerChangedMsg:
		m.txs = m.svc.Ledger.Transactions()
		return m, nil
	case CurrencyChangedMsg:
		m.primary = m.svc.Prefs.Primary()
		return m, nil
	case homeResultMsg:
		m.err = msg.err
		m.status = msg.status
		m.txs = m.svc.Ledger.Transactions()

		return m, nil
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	}

	if m.state == homeStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m HomeModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "t":
		m.primary = m.svc.Prefs.Toggle()
		return m, nil
	case "r":
		return m, m.runCmd(randomAmount(), "Added money")
	case "a":
		m.fields.amount = ""
		m.fields.title = "Added money"
		m.form = m.buildAddForm()
		m.state = homeStateAdd

		return m, m.form.Init()
	case "s":
		m.fields.amount = ""
		m.fields.recipient = ""
		m.fields.kind = transfer.KindPhone
		m.form = m.buildTransferForm()
		m.state = homeStateTransfer

		return m, m.form.Init()
	case "c":
		m.fields.confirm = false
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Clear every transaction?").
				Affirmative("Clear").
				Negative("Keep").
				Value(&m.fields.confirm),
		)).WithWidth(45).WithShowHelp(false)
		m.state = homeStateClear

		return m, m.form.Init()
	}

	return m, nil
}

func (m HomeModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = homeStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	state := m.state
	m.state = homeStateBrowse
	m.form = nil

	switch state {
	case homeStateAdd:
		amount, _ := decimal.NewFromString(strings.TrimSpace(m.fields.amount))
		return m, m.runCmd(m.svc.Conv.ToBase(amount, m.primary), m.fields.title)
	case homeStateTransfer:
		amount, _ := decimal.NewFromString(strings.TrimSpace(m.fields.amount))
		return m, m.transferCmd(transfer.Request{
			Kind:      m.fields.kind,
			Recipient: strings.TrimSpace(m.fields.recipient),
			Amount:    amount,
			Currency:  m.primary,
		})
	case homeStateClear:
		if m.fields.confirm {
			return m, m.clearCmd()
		}
	}

	return m, nil
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a number, e.g. 250 or -12.50")
	}

	if d.IsZero() {
		return errors.New("amount cannot be zero")
	}

	return nil
}

func (m HomeModel) buildAddForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Amount (%s)", m.primary)).
				Description("Negative amounts are debits").
				Value(&m.fields.amount).
				Validate(validateAmount),

			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.fields.title),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m HomeModel) buildTransferForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transfer.Kind]().
				Key("kind").
				Title("Send to").
				Options(
					huh.NewOption("Phone", transfer.KindPhone),
					huh.NewOption("Email", transfer.KindEmail),
				).
				Value(&m.fields.kind),

			huh.NewInput().
				Key("recipient").
				Title("Recipient").
				Value(&m.fields.recipient),

			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Amount (%s)", m.primary)).
				Value(&m.fields.amount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)
}

// randomAmount mirrors the demo "add money" button: a whole amount below
// 1000 with a random sign.
func randomAmount() decimal.Decimal {
	n := decimal.NewFromInt(rand.Int64N(1000))
	if rand.IntN(2) == 0 {
		return n.Neg()
	}

	return n
}

func (m HomeModel) View() string {
	balance := ledger.Sum(m.txs)
	primary := m.svc.Conv.Format(balance, m.primary, true)
	secondary := m.svc.Conv.Format(balance, m.primary.Other(), false)

	card := lipgloss.NewStyle().
		Padding(1, 3).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(highlight).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			faintStyle.Render("Your Balance"),
			lipgloss.NewStyle().Bold(true).Render(primary.Value)+" "+activeStyle(primary.Symbol),
			faintStyle.Render(secondary.Value),
		))

	content := lipgloss.JoinVertical(lipgloss.Left, card, "", m.viewRecent())

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", panel)
	}

	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + content
	} else if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m HomeModel) viewRecent() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("Transactions"))
	sb.WriteString("\n\n")

	recent := ledger.Recent(m.txs, recentLimit)
	if len(recent) == 0 {
		sb.WriteString(faintStyle.Render("No transactions yet"))
		return sb.String()
	}

	for _, tx := range recent {
		amount := m.svc.Conv.Format(tx.Amount, m.primary, true)
		fmt.Fprintf(&sb, "%-28s %s  %s\n",
			tx.Title,
			amountStyle(tx).Render(fmt.Sprintf("%16s", amount.Value)),
			faintStyle.Render(ledger.FormatDate(tx.Date)),
		)
	}

	return sb.String()
}

// Messages

type homeResultMsg struct {
	status string
	err    error
}

func (m HomeModel) runCmd(amount decimal.Decimal, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.svc.Ledger.Run(ctx, ledger.CreateParams{Amount: amount, Title: title})
		if err != nil {
			return homeResultMsg{err: err}
		}

		return homeResultMsg{status: fmt.Sprintf("Added %s", m.svc.Conv.Format(tx.Amount, m.primary, true).Value)}
	}
}

func (m HomeModel) transferCmd(req transfer.Request) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.svc.Transfers.Send(ctx, req)
		if err != nil {
			return homeResultMsg{err: err}
		}

		return homeResultMsg{status: tx.Title + " successful"}
	}
}

func (m HomeModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Ledger.Clear(ctx); err != nil {
			return homeResultMsg{err: err}
		}

		return homeResultMsg{status: "Cleared all transactions"}
	}
}
