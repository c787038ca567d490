package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocket/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pocket/internal/config"
	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/database"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
	ledgerMemory "github.com/MrJamesThe3rd/pocket/internal/ledger/memory"
	ledgerStore "github.com/MrJamesThe3rd/pocket/internal/ledger/store"
	"github.com/MrJamesThe3rd/pocket/internal/market"
	"github.com/MrJamesThe3rd/pocket/internal/transfer"
	"github.com/MrJamesThe3rd/pocket/internal/widget"
	widgetMemory "github.com/MrJamesThe3rd/pocket/internal/widget/memory"
	widgetStore "github.com/MrJamesThe3rd/pocket/internal/widget/store"
)

const logFile = "pocket-tui.log"

type model struct {
	svc  view.Services
	size *tea.WindowSizeMsg

	currentView View

	homeView    view.HomeModel
	widgetsView view.WidgetsModel
	marketView  view.MarketModel
	importView  view.ImportModel
	exportView  view.ExportModel
}

type View int

const (
	ViewMenu    View = 0
	ViewHome    View = 1
	ViewWidgets View = 2
	ViewMarket  View = 3
	ViewImport  View = 4
	ViewExport  View = 5
)

func services(cfg *config.Config) view.Services {
	ctx, cancel := view.DbCtx()
	defer cancel()

	var (
		ledgerRepo ledger.Repository = ledgerMemory.New()
		widgetRepo widget.Repository = widgetMemory.New()
	)

	if cfg.Storage.Driver == config.StoragePostgres {
		db, err := database.Open(ctx, cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		ledgerRepo = ledgerStore.New(db)
		widgetRepo = widgetStore.New(db)
	}

	conv := currency.NewConverter(cfg.ExchangeRate())
	ledgerSvc := ledger.NewService(ledgerRepo, ledger.New())
	widgetSvc := widget.NewService(widgetRepo, cfg.GridLayout(), cfg.Grid.ViewportHeight, slog.Default())

	if err := ledgerSvc.Load(ctx); err != nil {
		slog.Error("failed to load ledger", "error", err)
		os.Exit(1)
	}

	if err := widgetSvc.Restore(ctx); err != nil {
		slog.Error("failed to restore widget layout", "error", err)
		os.Exit(1)
	}

	var source market.Source = market.NewMock()
	if !cfg.Market.Mock {
		source = market.NewClient(cfg.Market.APIKey, cfg.Market.CoinMarketCapURL, cfg.Market.CoinPaprikaURL, cfg.Market.Timeout)
	}

	return view.Services{
		Ledger:    ledgerSvc,
		Transfers: transfer.NewService(ledgerSvc, conv),
		Widgets:   widgetSvc,
		Market:    source,
		Prefs:     currency.NewPreference(cfg.PrimaryCurrency()),
		Conv:      conv,
	}
}

func initialModel(svc view.Services) model {
	return model{
		svc:         svc,
		currentView: ViewMenu,
		homeView:    view.NewHomeModel(svc),
		widgetsView: view.NewWidgetsModel(svc),
		marketView:  view.NewMarketModel(svc.Market),
		importView:  view.NewImportModel(svc.Ledger),
		exportView:  view.NewExportModel(svc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// enter switches to v and replays the last window size so the screen can
// lay itself out.
func (m model) enter(v View, init tea.Cmd) (tea.Model, tea.Cmd) {
	m.currentView = v

	if m.size == nil {
		return m, init
	}

	next, cmd := m.forward(*m.size)

	return next, tea.Batch(init, cmd)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = &msg
	case view.LedgerChangedMsg, view.CurrencyChangedMsg:
		// The home screen caches its snapshot; everything else reads live.
		newModel, cmd := m.homeView.Update(msg)
		m.homeView = newModel.(view.HomeModel)

		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.enter(ViewHome, m.homeView.Init())
			case "2":
				return m.enter(ViewWidgets, m.widgetsView.Init())
			case "3":
				m.marketView = view.NewMarketModel(m.svc.Market)
				return m.enter(ViewMarket, m.marketView.Init())
			case "4":
				m.importView = view.NewImportModel(m.svc.Ledger)
				return m.enter(ViewImport, m.importView.Init())
			case "5":
				m.exportView = view.NewExportModel(m.svc)
				return m.enter(ViewExport, m.exportView.Init())
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	return m.forward(msg)
}

func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		newModel tea.Model
		cmd      tea.Cmd
	)

	switch m.currentView {
	case ViewHome:
		newModel, cmd = m.homeView.Update(msg)
		m.homeView = newModel.(view.HomeModel)
	case ViewWidgets:
		newModel, cmd = m.widgetsView.Update(msg)
		m.widgetsView = newModel.(view.WidgetsModel)
	case ViewMarket:
		newModel, cmd = m.marketView.Update(msg)
		m.marketView = newModel.(view.MarketModel)
	case ViewImport:
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) current() view.View {
	switch m.currentView {
	case ViewHome:
		return m.homeView
	case ViewWidgets:
		return m.widgetsView
	case ViewMarket:
		return m.marketView
	case ViewImport:
		return m.importView
	case ViewExport:
		return m.exportView
	}

	return nil
}

func (m model) View() string {
	v := m.current()
	if v == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Pocket\n\n" +
				"1. Home\n" +
				"2. Widgets\n" +
				"3. Crypto\n" +
				"4. Import Statement\n" +
				"5. Export Statement\n\n" +
				"q. Quit",
		)
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(v.ShortHelp())

	return v.View() + "\n" + help
}

func main() {
	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	svc := services(cfg)
	p := tea.NewProgram(initialModel(svc), tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Subscribers may fire from inside Update, where a blocking Send would
	// deadlock the event loop.
	unsubscribeLedger := svc.Ledger.Ledger().Subscribe(func([]ledger.Transaction) {
		go p.Send(view.LedgerChangedMsg{})
	})
	defer unsubscribeLedger()

	unsubscribePrefs := svc.Prefs.Subscribe(func(currency.Code) {
		go p.Send(view.CurrencyChangedMsg{})
	})
	defer unsubscribePrefs()

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}

}
