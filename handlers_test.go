package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST(path, handler)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateInvoiceHandlerRejectsMalformedBody(t *testing.T) {
	w := postJSON(t, createInvoiceHandler(), "/api/invoice/create", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateInvoiceHandlerReportsAllValidationErrors(t *testing.T) {
	// Missing number, date and client, plus a bad item.
	body := `{"items":[{"description":"","qty":0,"rate":-1,"tax_percent":101}]}`
	w := postJSON(t, createInvoiceHandler(), "/api/invoice/create", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Errors) < 6 {
		t.Fatalf("errors = %v, want every violation reported together", resp.Errors)
	}
}

func TestInvoicePDFHandlerRejectsInvalidPayload(t *testing.T) {
	w := postJSON(t, invoicePDFHandler(nil), "/api/invoice/pdf", `{"items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "at least one item is required") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestInvoiceIdParamRejectsGarbage(t *testing.T) {
	r := gin.New()
	r.GET("/invoice/:id", func(c *gin.Context) {
		if _, ok := invoiceIdParam(c); ok {
			c.Status(http.StatusOK)
		}
	})
	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		req := httptest.NewRequest(http.MethodGet, "/invoice/"+id, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", id, w.Code)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"INV-2026-0042", "INV-2026-0042"},
		{"INV/2026 #42", "INV_2026__42"},
		{"", "invoice"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExportInvoicesExcelHandlerFailsCleanly(t *testing.T) {
	failing := func(ctx context.Context, db *gorm.DB, q string, w io.Writer) error {
		return errors.New("query failed")
	}
	r := gin.New()
	r.GET("/api/invoice/export", exportInvoicesExcelHandler(failing))
	req := httptest.NewRequest(http.MethodGet, "/api/invoice/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	// A failed export must not look like a download.
	if cd := w.Header().Get("Content-Disposition"); cd != "" {
		t.Fatalf("Content-Disposition = %q, want unset on failure", cd)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("Content-Type = %q, want json error body", ct)
	}
}

func TestExportInvoicesExcelHandlerStreamsWorkbook(t *testing.T) {
	export := func(ctx context.Context, db *gorm.DB, q string, w io.Writer) error {
		_, err := w.Write([]byte("PK workbook bytes"))
		return err
	}
	r := gin.New()
	r.GET("/api/invoice/export", exportInvoicesExcelHandler(export))
	req := httptest.NewRequest(http.MethodGet, "/api/invoice/export?q=acme", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if w.Body.String() != "PK workbook bytes" {
		t.Fatalf("body = %q", w.Body.String())
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" https://a.example , ,https://b.example ")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("splitAndTrim = %v", got)
	}
}
