package currency

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
)

type Handler struct {
	prefs *currency.Preference
	conv  *currency.Converter
}

func NewHandler(prefs *currency.Preference, conv *currency.Converter) *Handler {
	return &Handler{prefs: prefs, conv: conv}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.set)
	r.Post("/toggle", h.toggle)
	r.Get("/format", h.format)
}

type preferenceResponse struct {
	Primary   currency.Code   `json:"primary"`
	Secondary currency.Code   `json:"secondary"`
	Rate      decimal.Decimal `json:"rate"`
}

func (h *Handler) response() preferenceResponse {
	return preferenceResponse{
		Primary:   h.prefs.Primary(),
		Secondary: h.prefs.Secondary(),
		Rate:      h.conv.Rate(),
	}
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.response())
}

type setPreferenceRequest struct {
	Primary string `json:"primary"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	code, err := currency.ParseCode(req.Primary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.prefs.SetPrimary(code)
	writeJSON(w, h.response())
}

func (h *Handler) toggle(w http.ResponseWriter, _ *http.Request) {
	h.prefs.Toggle()
	writeJSON(w, h.response())
}

// format renders an arbitrary base-currency amount, e.g.
// /format?amount=12.5&currency=NGN&primary=false.
func (h *Handler) format(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	code := h.prefs.Primary()

	if s := q.Get("currency"); s != "" {
		code, err = currency.ParseCode(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	isPrimary := code == h.prefs.Primary()

	if s := q.Get("primary"); s != "" {
		isPrimary, err = strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid primary flag", http.StatusBadRequest)
			return
		}
	}

	writeJSON(w, h.conv.Format(amount, code, isPrimary))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
