package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocket/internal/config"
	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/database"
	pocketHttp "github.com/MrJamesThe3rd/pocket/internal/http"
	"github.com/MrJamesThe3rd/pocket/internal/http/auth"
	currencyHandler "github.com/MrJamesThe3rd/pocket/internal/http/currency"
	ledgerHandler "github.com/MrJamesThe3rd/pocket/internal/http/ledger"
	marketHandler "github.com/MrJamesThe3rd/pocket/internal/http/market"
	widgetsHandler "github.com/MrJamesThe3rd/pocket/internal/http/widgets"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
	ledgerMemory "github.com/MrJamesThe3rd/pocket/internal/ledger/memory"
	ledgerStore "github.com/MrJamesThe3rd/pocket/internal/ledger/store"
	"github.com/MrJamesThe3rd/pocket/internal/market"
	"github.com/MrJamesThe3rd/pocket/internal/transfer"
	"github.com/MrJamesThe3rd/pocket/internal/widget"
	widgetMemory "github.com/MrJamesThe3rd/pocket/internal/widget/memory"
	widgetStore "github.com/MrJamesThe3rd/pocket/internal/widget/store"
)

const startupTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	var (
		ledgerRepo ledger.Repository = ledgerMemory.New()
		widgetRepo widget.Repository = widgetMemory.New()
	)

	if cfg.Storage.Driver == config.StoragePostgres {
		var db *sql.DB

		db, err = database.Open(startCtx, cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		ledgerRepo = ledgerStore.New(db)
		widgetRepo = widgetStore.New(db)
	}

	var (
		conv          = currency.NewConverter(cfg.ExchangeRate())
		prefs         = currency.NewPreference(cfg.PrimaryCurrency())
		ledgerService = ledger.NewService(ledgerRepo, ledger.New())
		widgetService = widget.NewService(widgetRepo, cfg.GridLayout(), cfg.Grid.ViewportHeight, slog.Default())
		transferSvc   = transfer.NewService(ledgerService, conv)
	)

	if err := ledgerService.Load(startCtx); err != nil {
		slog.Error("failed to load ledger", "error", err)
		os.Exit(1)
	}

	if err := widgetService.Restore(startCtx); err != nil {
		slog.Error("failed to restore widget layout", "error", err)
		os.Exit(1)
	}

	var source market.Source = market.NewMock()
	if !cfg.Market.Mock {
		source = market.NewClient(cfg.Market.APIKey, cfg.Market.CoinMarketCapURL, cfg.Market.CoinPaprikaURL, cfg.Market.Timeout)
	}

	verifier := auth.NewVerifier(cfg.Auth.Secret)
	if !verifier.Enabled() {
		slog.Warn("AUTH_SECRET is empty, ledger mutations are not authenticated")
	}

	router := pocketHttp.New(
		verifier,
		ledgerHandler.NewHandler(ledgerService, transferSvc, prefs, conv),
		currencyHandler.NewHandler(prefs, conv),
		widgetsHandler.NewHandler(widgetService, ledgerService, prefs, conv),
		marketHandler.NewHandler(source),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr, "storage", cfg.Storage.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
