package http

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tally/internal/ingest"
	"tally/internal/ledger"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	led := ledger.New(nil, nil)
	s := NewServer(":0", led, ingest.Columns{Date: 0, Amount: 1, Description: 2}, nil)
	t.Cleanup(func() { s.rateLimiter.stop(); close(s.stopCacheCleanup) })
	return s
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: got status %d, want 200", path, rec.Code)
		}
	}
}

func TestIndexRenders(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Tally") {
		t.Fatalf("index body missing title")
	}
	if hd := rec.Header().Get("X-Frame-Options"); hd != "DENY" {
		t.Fatalf("missing security header, got %q", hd)
	}
}

func uploadCSV(t *testing.T, s *Server, csv string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "statement.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestUploadAndTransactions(t *testing.T) {
	s := newTestServer(t)

	uploadCSV(t, s, "15/03/2025,4.50,TESCO STORES\n16/03/2025,-1200.00,SALARY MARCH\n")

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("transactions: got status %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "TESCO STORES") || !strings.Contains(body, "SALARY MARCH") {
		t.Fatalf("transactions partial missing rows: %s", body)
	}
	if !strings.Contains(body, "UNCATEGORISED") {
		t.Fatalf("expected default category in partial")
	}
}

func TestRulesRecategorize(t *testing.T) {
	s := newTestServer(t)
	uploadCSV(t, s, "15/03/2025,4.50,TESCO STORES\n")

	form := url.Values{"rules": {"tesco => GROCERIES"}}
	req := httptest.NewRequest(http.MethodPost, "/rules", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("rules: got status %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "1 rules active") {
		t.Fatalf("unexpected rules response: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil))
	if !strings.Contains(rec.Body.String(), "GROCERIES") {
		t.Fatalf("expected recategorized row, got: %s", rec.Body.String())
	}
}

func TestReassignBadIndex(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{"index": {"7"}, "category": {"COFFEE"}}
	req := httptest.NewRequest(http.MethodPost, "/reassign", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got status %d, want 422", rec.Code)
	}
}

func TestExportText(t *testing.T) {
	s := newTestServer(t)
	uploadCSV(t, s, "15/03/2025,4.50,TESCO STORES\n")

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/export/report.txt", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "report.txt") {
		t.Fatalf("missing attachment header, got %q", cd)
	}
	if !strings.Contains(rec.Body.String(), "Category totals - All months") {
		t.Fatalf("unexpected report body: %s", rec.Body.String())
	}
}

func TestUploadRejectsGet(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/upload", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("got status %d, want 405", rec.Code)
	}
}
