package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/grid"
	pocketHttp "github.com/MrJamesThe3rd/pocket/internal/http"
	"github.com/MrJamesThe3rd/pocket/internal/http/auth"
	currencyHandler "github.com/MrJamesThe3rd/pocket/internal/http/currency"
	ledgerHandler "github.com/MrJamesThe3rd/pocket/internal/http/ledger"
	marketHandler "github.com/MrJamesThe3rd/pocket/internal/http/market"
	widgetsHandler "github.com/MrJamesThe3rd/pocket/internal/http/widgets"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
	ledgerMemory "github.com/MrJamesThe3rd/pocket/internal/ledger/memory"
	"github.com/MrJamesThe3rd/pocket/internal/market"
	"github.com/MrJamesThe3rd/pocket/internal/transfer"
	"github.com/MrJamesThe3rd/pocket/internal/widget"
	widgetMemory "github.com/MrJamesThe3rd/pocket/internal/widget/memory"
)

const secret = "router-secret"

func newRouter(secret string) http.Handler {
	conv := currency.NewConverter(currency.DefaultRate)
	prefs := currency.NewPreference(currency.EUR)
	ls := ledger.NewService(ledgerMemory.New(), ledger.New())
	ws := widget.NewService(widgetMemory.New(), grid.Layout{Cols: 2, Tile: 100, Margin: 10}, 300, nil)

	return pocketHttp.New(
		auth.NewVerifier(secret),
		ledgerHandler.NewHandler(ls, transfer.NewService(ls, conv), prefs, conv),
		currencyHandler.NewHandler(prefs, conv),
		widgetsHandler.NewHandler(ws, ls, prefs, conv),
		marketHandler.NewHandler(market.NewMock()),
	)
}

func TestRouter_LedgerMutationsRequireToken(t *testing.T) {
	router := newRouter(secret)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "demo"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
	}{
		{name: "read is open", method: http.MethodGet, path: "/api/v1/ledger/balance", wantStatus: http.StatusOK},
		{name: "create without token", method: http.MethodPost, path: "/api/v1/ledger/transactions", body: `{"amount":"1"}`, wantStatus: http.StatusUnauthorized},
		{name: "create with token", method: http.MethodPost, path: "/api/v1/ledger/transactions", body: `{"amount":"1"}`, token: token, wantStatus: http.StatusCreated},
		{name: "clear without token", method: http.MethodDelete, path: "/api/v1/ledger/transactions", wantStatus: http.StatusUnauthorized},
		{name: "clear with token", method: http.MethodDelete, path: "/api/v1/ledger/transactions", token: token, wantStatus: http.StatusNoContent},
		{name: "market is open", method: http.MethodGet, path: "/api/v1/market/listings", wantStatus: http.StatusOK},
		{name: "widgets", method: http.MethodGet, path: "/api/v1/widgets/", wantStatus: http.StatusOK},
		{name: "currency", method: http.MethodGet, path: "/api/v1/currency/", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}

			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_NoSecretLeavesMutationsOpen(t *testing.T) {
	router := newRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/transactions", strings.NewReader(`{"amount":"5","title":"Added money"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newRouter(secret)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ledger/transactions", nil)
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:8081", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
