package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fundtrackr/internal/core"
	"fundtrackr/internal/export"
	"fundtrackr/internal/services"
)

// memStore is a slice-backed services.Store for handler tests.
type memStore struct {
	txs    []core.Transaction
	nextID int64
}

func (m *memStore) ListAll(context.Context) ([]core.Transaction, error) {
	return append([]core.Transaction(nil), m.txs...), nil
}

func (m *memStore) Insert(_ context.Context, t core.Transaction) (int64, error) {
	m.nextID++
	t.ID = m.nextID
	m.txs = append(m.txs, t)
	return t.ID, nil
}

func (m *memStore) Update(_ context.Context, t core.Transaction) error {
	for i := range m.txs {
		if m.txs[i].ID == t.ID {
			m.txs[i] = t
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	for i := range m.txs {
		if m.txs[i].ID == id {
			m.txs = append(m.txs[:i], m.txs[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func newTestServer() (*Server, *memStore) {
	store := &memStore{}
	svc := services.NewTransactionService(store, nil, nil)
	return NewServer(":0", svc), store
}

func doJSON(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestCreateTransaction(t *testing.T) {
	srv, store := newTestServer()
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"title":"Shoes","amount":"899.99","date":"2025-06-01","category":"Clothing","type":"Expense"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != 1 || resp.Amount != "899.99" || resp.Icon != "checkroom" {
		t.Fatalf("response: %+v", resp)
	}
	if len(store.txs) != 1 {
		t.Fatalf("store rows: %d", len(store.txs))
	}
}

func TestCreateSanitizesMalformedAmount(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"title":"Typo","amount":"12.3.4","category":"Other","type":"Expense"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Amount != "0" {
		t.Fatalf("malformed amount must sanitize to zero, got %q", resp.Amount)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Shutdown(context.Background())

	cases := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{"title":`, http.StatusBadRequest},
		{"unknown kind", `{"title":"x","amount":"1","type":"Transfer"}`, http.StatusUnprocessableEntity},
		{"empty title", `{"title":"  ","amount":"1","type":"Expense"}`, http.StatusUnprocessableEntity},
		{"bad date", `{"title":"x","amount":"1","date":"June 1st","type":"Expense"}`, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/transactions", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"title":"Shoes","amount":"899.99","date":"2025-06-01","category":"Clothing","type":"Expense"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/transactions/1",
		`{"title":"Boots","amount":"1200","date":"2025-06-01","category":"Clothing","type":"Expense"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPut, "/api/transactions/99",
		`{"title":"Ghost","amount":"1","date":"2025-06-01","category":"Other","type":"Expense"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("update missing: %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/transactions/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodDelete, "/api/transactions/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete missing: %d", rec.Code)
	}
}

func TestListWithFilters(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Shutdown(context.Background())

	seed := []string{
		`{"title":"Shoes","amount":"900","date":"2025-06-01","category":"Clothing","type":"Expense"}`,
		`{"title":"Pay","amount":"5000","date":"2025-06-01","category":"Salary & Wages","type":"Income"}`,
	}
	for _, body := range seed {
		if rec := doJSON(t, srv, http.MethodPost, "/api/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed: %d", rec.Code)
		}
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/transactions?type=Income", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: %d", rec.Code)
	}
	var got []transactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Pay" {
		t.Fatalf("filtered list: %+v", got)
	}

	// Category filter is case-insensitive.
	rec = doJSON(t, srv, http.MethodGet, "/api/transactions?category=clothing", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Shoes" {
		t.Fatalf("category filter: %+v", got)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/transactions?date=2030-01-01", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("custom day with no matches: %+v", got)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/transactions?date=notaday", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date param: %d", rec.Code)
	}
}

func TestSummaryAndBreakdownEndpoints(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Shutdown(context.Background())

	seed := []string{
		`{"title":"Pay","amount":"300","date":"2025-06-01","category":"Salary & Wages","type":"Income"}`,
		`{"title":"Shoes","amount":"100","date":"2025-06-01","category":"Clothing","type":"Expense"}`,
	}
	for _, body := range seed {
		if rec := doJSON(t, srv, http.MethodPost, "/api/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed: %d", rec.Code)
		}
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/summary", "")
	var totals map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if totals["balance"] != "200.00" || totals["income"] != "300.00" {
		t.Fatalf("summary: %+v", totals)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/breakdown?type=Expense", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("breakdown: %d", rec.Code)
	}
	var stats []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(stats) != 1 || stats[0]["category"] != "Clothing" || stats[0]["percent"] != "100.0" {
		t.Fatalf("breakdown: %+v", stats)
	}

	if rec := doJSON(t, srv, http.MethodGet, "/api/breakdown", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("breakdown without type: %d", rec.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("categories: %d", rec.Code)
	}
	var cats []categoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, c := range cats {
		if c.Name == "Clothing" && c.Icon == "checkroom" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Clothing missing from catalog: %+v", cats)
	}
}

func TestExportEndpoints(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Shutdown(context.Background())

	// Nothing stored yet: both surfaces refuse.
	if rec := doJSON(t, srv, http.MethodGet, "/api/export/csv", ""); rec.Code != http.StatusConflict {
		t.Fatalf("empty csv export: %d", rec.Code)
	}
	if rec := doJSON(t, srv, http.MethodGet, "/api/export/report", ""); rec.Code != http.StatusConflict {
		t.Fatalf("empty report export: %d", rec.Code)
	}

	rec := doJSON(t, srv, http.MethodPost, "/api/transactions",
		`{"title":"Shoes","amount":"900","date":"2025-06-01","category":"Clothing","type":"Expense"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed: %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/export/csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("csv export: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type: %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="FundTrackr_Export_`) {
		t.Fatalf("disposition: %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "ID,Title,Amount,Date,Category,Type\n") {
		t.Fatalf("csv body: %q", rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/export/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("report export: %d", rec.Code)
	}
	var doc export.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if len(doc.Pages) != 1 || len(doc.Pages[0].Lines) != 1 {
		t.Fatalf("report pages: %+v", doc.Pages)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Shutdown(context.Background())

	rec := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rec.Code, rec.Body.String())
	}
}
