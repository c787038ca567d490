package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/currency"
	"github.com/MrJamesThe3rd/pocket/internal/export"
	"github.com/MrJamesThe3rd/pocket/internal/importer"
	"github.com/MrJamesThe3rd/pocket/internal/ledger"
	"github.com/MrJamesThe3rd/pocket/internal/transfer"
)

type Handler struct {
	svc      *ledger.Service
	transfer *transfer.Service
	prefs    *currency.Preference
	conv     *currency.Converter
	parser   *importer.Parser
	exporter *export.Exporter
}

func NewHandler(
	svc *ledger.Service,
	transferSvc *transfer.Service,
	prefs *currency.Preference,
	conv *currency.Converter,
) *Handler {
	return &Handler{
		svc:      svc,
		transfer: transferSvc,
		prefs:    prefs,
		conv:     conv,
		parser:   importer.NewParser(),
		exporter: export.NewExporter(conv),
	}
}

// Routes registers the read-only endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/balance", h.balance)
	r.Get("/recent", h.recent)
	r.Get("/statement", h.statement)
}

// MutationRoutes registers the endpoints that change the ledger. The
// caller decides which middleware guards them.
func (h *Handler) MutationRoutes(r chi.Router) {
	r.Post("/transactions", h.create)
	r.Delete("/transactions", h.clear)
	r.Post("/transfers", h.send)
	r.Post("/import", h.importCSV)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	primary := h.prefs.Primary()
	txs := h.svc.Transactions()

	writeJSON(w, http.StatusOK, ledgerResponse{
		Balance:      toBalance(ledger.Sum(txs), h.conv, primary),
		Transactions: toResponseList(txs, h.conv, primary),
	})
}

func (h *Handler) balance(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toBalance(h.svc.Balance(), h.conv, h.prefs.Primary()))
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	limit := -1

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = n
	}

	txs := ledger.Recent(h.svc.Transactions(), limit)
	writeJSON(w, http.StatusOK, toResponseList(txs, h.conv, h.prefs.Primary()))
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	period, err := ledger.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs := period.Filter(h.svc.Transactions(), time.Now())

	switch r.URL.Query().Get("format") {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="statement.csv"`)

		if err := h.exporter.WriteCSV(w, txs); err != nil {
			slog.Error("failed to write statement", "error", err)
		}
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if _, err := w.Write([]byte(h.exporter.Summary(txs, h.prefs.Primary()))); err != nil {
			slog.Error("failed to write statement", "error", err)
		}
	default:
		http.Error(w, "unsupported format", http.StatusBadRequest)
	}
}

type createTransactionRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Title  string          `json:"title"`
	Date   time.Time       `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Run(r.Context(), ledger.CreateParams{
		Amount: req.Amount,
		Title:  req.Title,
		Date:   req.Date,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx, h.conv, h.prefs.Primary()))
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req transfer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Currency == "" {
		req.Currency = h.prefs.Primary()
	}

	tx, err := h.transfer.Send(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrInsufficientBalance):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, transfer.ErrInvalidAmount),
			errors.Is(err, transfer.ErrInvalidPhone),
			errors.Is(err, transfer.ErrInvalidEmail),
			errors.Is(err, transfer.ErrUnknownKind),
			errors.Is(err, transfer.ErrInvalidCurrency):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, http.StatusCreated, toResponse(tx, h.conv, h.prefs.Primary()))
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, "failed to parse statement: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	txs, err := h.svc.RunBatch(r.Context(), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, importResponse{
		Imported:     len(txs),
		Transactions: toResponseList(txs, h.conv, h.prefs.Primary()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
