package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocket/internal/export"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type exportFields struct {
	period ledger.Period
	path   string
}

type ExportModel struct {
	CommonModel
	svc      Services
	exporter *export.Exporter

	state   exportState
	err     error
	form    *huh.Form
	fields  *exportFields
	spinner spinner.Model
	summary string
	written string
}

func NewExportModel(svc Services) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	m := ExportModel{
		svc:      svc,
		exporter: export.NewExporter(svc.Conv),
		state:    exportStateForm,
		fields:   &exportFields{period: ledger.PeriodThisMonth, path: "./exports/statement.csv"},
		spinner:  s,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Export Statement" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.fields.period, m.fields.path))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.summary = result.summary
		m.written = result.path

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildForm() *huh.Form {
	options := make([]huh.Option[ledger.Period], 0, len(ledger.Periods()))
	for _, p := range ledger.Periods() {
		options = append(options, huh.NewOption(p.String(), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ledger.Period]().
				Key("period").
				Title("Period").
				Options(options...).
				Value(&m.fields.period),

			huh.NewInput().
				Key("path").
				Title("Output File").
				Description("Parent directory will be created if it doesn't exist").
				Placeholder("./exports/statement.csv").
				Value(&m.fields.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing statement...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(positive).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			faintStyle.Render(m.written),
			"",
			"Summary:",
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	path    string
	summary string
	err     error
}

func (m ExportModel) runExportCmd(period ledger.Period, path string) tea.Cmd {
	return func() tea.Msg {
		txs := period.Filter(m.svc.Ledger.Transactions(), time.Now())

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("creating output directory: %w", err)}
		}

		f, err := os.Create(path)
		if err != nil {
			return exportResultMsg{err: fmt.Errorf("creating file: %w", err)}
		}
		defer f.Close()

		if err := m.exporter.WriteCSV(f, txs); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{
			path:    path,
			summary: m.exporter.Summary(txs, m.svc.Prefs.Primary()),
		}
	}
}
