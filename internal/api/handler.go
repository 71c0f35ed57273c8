package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/finfolio/folio/internal/domain"
	"github.com/finfolio/folio/internal/period"
	"github.com/finfolio/folio/internal/report"
	"github.com/finfolio/folio/internal/snapshot"
	"github.com/finfolio/folio/internal/valuation"
)

// RecordSource loads the full record set the handlers replay.
type RecordSource interface {
	Records(ctx context.Context) (domain.Records, error)
}

// Handler provides HTTP endpoints for the portfolio API.
type Handler struct {
	records    RecordSource
	valuations *valuation.Service
	reports    *report.Service
	snapshots  *snapshot.Service
	currency   string
}

// NewHandler creates a new API handler. The currency is the default
// reporting currency used when a request does not name one.
func NewHandler(records RecordSource, valuations *valuation.Service, reports *report.Service, snapshots *snapshot.Service, currency string) *Handler {
	return &Handler{
		records:    records,
		valuations: valuations,
		reports:    reports,
		snapshots:  snapshots,
		currency:   currency,
	}
}

// ownerParam extracts the required owner query parameter. It writes a 400
// response and returns false when the parameter is missing.
func ownerParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		writeError(w, http.StatusBadRequest, "owner parameter required")
		return "", false
	}
	return owner, true
}

func (h *Handler) currencyParam(r *http.Request) string {
	if c := r.URL.Query().Get("currency"); c != "" {
		return c
	}
	return h.currency
}

// periodsParam builds the report periods from period_type, start_year,
// end_year, and year query parameters.
func periodsParam(w http.ResponseWriter, r *http.Request, today time.Time) ([]period.Period, bool) {
	t := period.TypeYearly
	if pt := r.URL.Query().Get("period_type"); pt != "" {
		var err error
		if t, err = period.ParseType(pt); err != nil {
			writeError(w, http.StatusBadRequest, "period_type must be yearly or quarterly")
			return nil, false
		}
	}

	year := intParam(r, "year", today.Year())
	startYear := intParam(r, "start_year", today.Year())
	endYear := intParam(r, "end_year", today.Year())
	if t == period.TypeQuarterly {
		return period.Quarterly(year, today), true
	}
	return period.Yearly(startYear, endYear, today), true
}

func intParam(r *http.Request, key string, defaultVal int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

// GetValuation handles GET /api/v1/valuation.
func (h *Handler) GetValuation(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}

	records, err := h.records.Records(r.Context())
	if err != nil {
		slog.Error("failed to load records", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	snap, err := h.valuations.Value(records, owner, h.currencyParam(r), time.Now().UTC())
	if err != nil {
		slog.Error("failed to value portfolio", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetSummary handles GET /api/v1/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}

	records, err := h.records.Records(r.Context())
	if err != nil {
		slog.Error("failed to load records", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	rows, err := h.reports.WealthEvolution(records, owner, h.currencyParam(r), time.Now().UTC())
	if err != nil {
		slog.Error("failed to build wealth evolution", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetOverview handles GET /api/v1/reports/overview.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, func(records domain.Records, owner, cur string, periods []period.Period) (any, error) {
		return h.reports.WealthOverview(records, owner, cur, periods)
	})
}

// GetBalanceSheet handles GET /api/v1/reports/balance-sheet.
func (h *Handler) GetBalanceSheet(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, func(records domain.Records, owner, cur string, periods []period.Period) (any, error) {
		return h.reports.BalanceSheet(records, owner, cur, periods)
	})
}

// GetIncomeStatement handles GET /api/v1/reports/income-statement.
func (h *Handler) GetIncomeStatement(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, func(records domain.Records, owner, cur string, periods []period.Period) (any, error) {
		return h.reports.IncomeStatement(records, owner, cur, periods), nil
	})
}

// GetCashFlow handles GET /api/v1/reports/cash-flow.
func (h *Handler) GetCashFlow(w http.ResponseWriter, r *http.Request) {
	h.report(w, r, func(records domain.Records, owner, _ string, periods []period.Period) (any, error) {
		return h.reports.CashFlow(records, owner, periods), nil
	})
}

type reportFunc func(records domain.Records, owner, currency string, periods []period.Period) (any, error)

func (h *Handler) report(w http.ResponseWriter, r *http.Request, build reportFunc) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}
	today := time.Now().UTC()
	periods, ok := periodsParam(w, r, today)
	if !ok {
		return
	}

	records, err := h.records.Records(r.Context())
	if err != nil {
		slog.Error("failed to load records", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	rows, err := build(records, owner, h.currencyParam(r), periods)
	if err != nil {
		slog.Error("failed to build report", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetLatestSnapshot handles GET /api/v1/snapshots/latest.
func (h *Handler) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}

	s, err := h.snapshots.GetLatest(r.Context(), owner)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots found")
			return
		}
		slog.Error("failed to get latest snapshot", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetSnapshotByDate handles GET /api/v1/snapshots/{date}.
func (h *Handler) GetSnapshotByDate(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}
	dateStr := r.PathValue("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	s, err := h.snapshots.GetByDate(r.Context(), owner, date)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found for date")
			return
		}
		slog.Error("failed to get snapshot by date", "owner", owner, "date", dateStr, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ListSnapshots handles GET /api/v1/snapshots.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}

	const maxLimit = 365
	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	snapshots, err := h.snapshots.List(r.Context(), owner, limit)
	if err != nil {
		slog.Error("failed to list snapshots", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// GenerateSnapshot handles POST /api/v1/snapshots/generate.
func (h *Handler) GenerateSnapshot(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerParam(w, r)
	if !ok {
		return
	}

	data, err := h.snapshots.Generate(r.Context(), owner, time.Now().UTC())
	if err != nil {
		slog.Error("failed to generate snapshot", "owner", owner, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate snapshot")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
