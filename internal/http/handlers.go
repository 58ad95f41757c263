package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fundtrackr/internal/core"
	"fundtrackr/internal/log"
)

const dateLayout = "2006-01-02"

type transactionRequest struct {
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

type transactionResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	Type     string `json:"type"`
}

type categoryResponse struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func toResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:       t.ID,
		Title:    t.Title,
		Amount:   t.Amount.String(),
		Date:     t.Date.UTC().Format(time.RFC3339),
		Category: t.Category,
		Icon:     core.IconFor(t.Category),
		Type:     string(t.Kind),
	}
}

// toDomain builds a transaction from the request payload. Malformed
// amounts are sanitized to zero rather than rejected; an absent date
// defaults to now.
func (req transactionRequest) toDomain(now time.Time) (core.Transaction, error) {
	kind, err := core.ParseKind(req.Type)
	if err != nil {
		return core.Transaction{}, err
	}

	date := now
	if v := strings.TrimSpace(req.Date); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			parsed, err = time.Parse(dateLayout, v)
		}
		if err != nil {
			return core.Transaction{}, errors.New("date must be RFC3339 or YYYY-MM-DD")
		}
		date = parsed
	}

	return core.Transaction{
		Title:    strings.TrimSpace(req.Title),
		Amount:   core.ParseAmount(req.Amount),
		Date:     date.UTC(),
		Category: strings.TrimSpace(req.Category),
		Kind:     kind,
	}, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := req.toDomain(time.Now())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.api.Add(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create transaction", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not save transaction")
		return
	}

	t.ID = id
	writeJSON(w, http.StatusCreated, toResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req transactionRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := req.toDomain(time.Now())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	t.ID = id
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.api.Update(r.Context(), t); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update transaction", log.FieldError, err, log.FieldTransactionID, id)
		writeError(w, http.StatusInternalServerError, "could not update transaction")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := s.api.Delete(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "transaction not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to delete transaction", log.FieldError, err, log.FieldTransactionID, id)
		writeError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := core.Criteria{
		Category: q.Get("category"),
		Kind:     q.Get("type"),
		Range:    core.DateRange(q.Get("range")),
	}

	if v := q.Get("date"); v != "" {
		day, err := time.Parse(dateLayout, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		criteria.Range = core.RangeCustom
		criteria.CustomDate = day
	}

	txs, err := s.api.List(r.Context(), criteria, time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list transactions", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not load transactions")
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	totals, err := s.api.Summary(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute summary", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not compute summary")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"income":  totals.Income.StringFixed(2),
		"expense": totals.Expense.StringFixed(2),
		"balance": totals.Balance.StringFixed(2),
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	kind, err := core.ParseKind(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "type must be Income or Expense")
		return
	}

	stats, err := s.api.Breakdown(r.Context(), kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute breakdown", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not compute breakdown")
		return
	}

	type statResponse struct {
		Category string `json:"category"`
		Amount   string `json:"amount"`
		Percent  string `json:"percent"`
	}
	out := make([]statResponse, 0, len(stats))
	for _, st := range stats {
		out = append(out, statResponse{
			Category: st.Category,
			Amount:   st.Amount.StringFixed(2),
			Percent:  st.Percent.StringFixed(1),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	names := core.AllCategories()
	out := make([]categoryResponse, 0, len(names))
	for _, name := range names {
		out = append(out, categoryResponse{Name: name, Icon: core.IconFor(name)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if !s.requireExportInput(w, r) {
		return
	}

	filename, blob, err := s.api.ExportCSV(r.Context(), time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(blob))
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireExportInput(w, r) {
		return
	}

	filename, doc, err := s.api.ExportReport(r.Context(), time.Now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Report export failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		slog.ErrorContext(r.Context(), "Report encode failed", log.FieldError, err)
	}
}

// requireExportInput enforces the empty-history pre-check shared by the
// export surfaces. Exporting nothing is a caller mistake, not a crash.
func (s *Server) requireExportInput(w http.ResponseWriter, r *http.Request) bool {
	n, err := s.api.Count(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export pre-check failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return false
	}
	if n == 0 {
		writeError(w, http.StatusConflict, "no transactions to export")
		return false
	}
	return true
}

func decodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", log.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
