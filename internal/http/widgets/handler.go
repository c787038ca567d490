package widgets

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/grid"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
	"github.com/MrJamesThe3rd/pocket/internal/widget"
)

type Handler struct {
	widgets *widget.Service
	ledger  *ledger.Service
	prefs   *currency.Preference
	conv    *currency.Converter
	now     func() time.Time
}

func NewHandler(widgets *widget.Service, l *ledger.Service, prefs *currency.Preference, conv *currency.Converter) *Handler {
	return &Handler{
		widgets: widgets,
		ledger:  l,
		prefs:   prefs,
		conv:    conv,
		now:     time.Now,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.reorder)
}

type tileResponse struct {
	ID      string         `json:"id"`
	Order   int            `json:"order"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Content widget.Content `json:"content"`
}

type layoutResponse struct {
	Columns       int            `json:"columns"`
	Tile          float64        `json:"tile"`
	Margin        float64        `json:"margin"`
	ContentHeight float64        `json:"content_height"`
	Positions     grid.Positions `json:"positions"`
	Tiles         []tileResponse `json:"tiles"`
}

func (h *Handler) response() layoutResponse {
	engine := h.widgets.Engine()
	layout := engine.Layout()
	items := engine.Items()
	contents := widget.Contents(h.ledger.Transactions(), h.conv, h.prefs.Primary(), h.now())

	tiles := make([]tileResponse, len(items))
	for i, it := range items {
		p := layout.PositionOf(it.Order)
		tiles[i] = tileResponse{
			ID:      it.ID,
			Order:   it.Order,
			X:       p.X,
			Y:       p.Y,
			Content: contents[it.ID],
		}
	}

	return layoutResponse{
		Columns:       layout.Cols,
		Tile:          layout.Tile,
		Margin:        layout.Margin,
		ContentHeight: layout.ContentHeight(len(items)),
		Positions:     engine.Positions(),
		Tiles:         tiles,
	}
}

func (h *Handler) get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.response())
}

type reorderRequest struct {
	Positions grid.Positions `json:"positions"`
}

func (h *Handler) reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.widgets.Reorder(r.Context(), req.Positions); err != nil {
		if errors.Is(err, grid.ErrInvalidPositions) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, h.response())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
