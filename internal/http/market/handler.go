package market

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocket/internal/market"
)

type Handler struct {
	source market.Source
}

func NewHandler(source market.Source) *Handler {
	return &Handler{source: source}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/listings", h.listings)
	r.Get("/info", h.info)
	r.Get("/tickers", h.tickers)
}

func (h *Handler) listings(w http.ResponseWriter, r *http.Request) {
	limit := 0

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = n
	}

	listings, err := h.source.Listings(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, listings)
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	var ids []string

	for id := range strings.SplitSeq(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	info, err := h.source.Info(r.Context(), ids)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, info)
}

func (h *Handler) tickers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tickers, err := h.source.Tickers(r.Context(), market.TickerQuery{
		CoinID:   q.Get("coin"),
		Start:    q.Get("start"),
		Interval: q.Get("interval"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, tickers)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, market.ErrMissingIDs):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, market.ErrMissingAPIKey):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		slog.Error("market request failed", "error", err)
		http.Error(w, "failed to fetch market data", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
