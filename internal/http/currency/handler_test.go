package currency_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	currencyHandler "github.com/MrJamesThe3rd/pocket/internal/http/currency"
)

func newRouter(prefs *currency.Preference) http.Handler {
	r := chi.NewRouter()
	r.Route("/currency", currencyHandler.NewHandler(prefs, currency.NewConverter(currency.DefaultRate)).Routes)

	return r
}

func TestHandler_Preference(t *testing.T) {
	prefs := currency.NewPreference(currency.EUR)
	router := newRouter(prefs)

	var notified []currency.Code
	unsubscribe := prefs.Subscribe(func(c currency.Code) { notified = append(notified, c) })
	defer unsubscribe()

	tests := []struct {
		name          string
		method        string
		path          string
		body          string
		wantStatus    int
		wantPrimary   currency.Code
		wantSecondary currency.Code
	}{
		{name: "get", method: http.MethodGet, path: "/currency/", wantStatus: http.StatusOK, wantPrimary: currency.EUR, wantSecondary: currency.NGN},
		{name: "set", method: http.MethodPut, path: "/currency/", body: `{"primary":"ngn"}`, wantStatus: http.StatusOK, wantPrimary: currency.NGN, wantSecondary: currency.EUR},
		{name: "set same again", method: http.MethodPut, path: "/currency/", body: `{"primary":"NGN"}`, wantStatus: http.StatusOK, wantPrimary: currency.NGN, wantSecondary: currency.EUR},
		{name: "toggle", method: http.MethodPost, path: "/currency/toggle", wantStatus: http.StatusOK, wantPrimary: currency.EUR, wantSecondary: currency.NGN},
		{name: "unsupported", method: http.MethodPut, path: "/currency/", body: `{"primary":"USD"}`, wantStatus: http.StatusBadRequest},
		{name: "not iso", method: http.MethodPut, path: "/currency/", body: `{"primary":"XX"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Primary   currency.Code `json:"primary"`
				Secondary currency.Code `json:"secondary"`
				Rate      string        `json:"rate"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantPrimary, body.Primary)
			assert.Equal(t, tt.wantSecondary, body.Secondary)
			assert.Equal(t, "1600", body.Rate)
		})
	}

	// Setting the current value still notifies.
	assert.Equal(t, []currency.Code{currency.NGN, currency.NGN, currency.EUR}, notified)
}

func TestHandler_Format(t *testing.T) {
	router := newRouter(currency.NewPreference(currency.EUR))

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantValue  string
	}{
		{name: "default currency", query: "amount=1234.5", wantStatus: http.StatusOK, wantValue: "€1,234.50"},
		{name: "naira", query: "amount=1234.5&currency=NGN&primary=false", wantStatus: http.StatusOK, wantValue: "₦1,975,200.00"},
		{name: "negative", query: "amount=-2&currency=EUR", wantStatus: http.StatusOK, wantValue: "-€2.00"},
		{name: "bad amount", query: "amount=abc", wantStatus: http.StatusBadRequest},
		{name: "bad currency", query: "amount=1&currency=USD", wantStatus: http.StatusBadRequest},
		{name: "bad flag", query: "amount=1&primary=maybe", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/currency/format?"+tt.query, nil))
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				return
			}

			var got currency.Amount
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}
