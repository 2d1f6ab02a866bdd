package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DevHusayn/InvoicePro/internal/config"
	dashboarddomain "github.com/DevHusayn/InvoicePro/internal/dashboard/domain"
	invoicedomain "github.com/DevHusayn/InvoicePro/internal/invoice/domain"
)

type stubInvoiceService struct {
	doc *invoicedomain.Document
	err error
}

func (s *stubInvoiceService) RenderDocument(ctx context.Context, req invoicedomain.RenderDocumentRequest) (*invoicedomain.Document, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

type stubDashboardService struct {
	summary dashboarddomain.Summary
	err     error
}

func (s *stubDashboardService) Summarize(ctx context.Context, req dashboarddomain.SummaryRequest) (dashboarddomain.Summary, error) {
	return s.summary, s.err
}

func newTestServer(invoiceSvc invoicedomain.Service, dashboardSvc dashboarddomain.Service) *Server {
	gin.SetMode(gin.TestMode)
	srv := &Server{
		cfg:          config.Config{ServiceName: "invoicepro", ServiceVersion: "test"},
		log:          zap.NewNop(),
		engine:       gin.New(),
		invoiceSvc:   invoiceSvc,
		dashboardSvc: dashboardSvc,
	}
	srv.RegisterAPIRoutes()
	return srv
}

func postJSON(t *testing.T, srv *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)
	return rec
}

func TestRenderInvoiceHandler(t *testing.T) {
	svc := &stubInvoiceService{doc: &invoicedomain.Document{
		ID:          "doc_1",
		Filename:    "INV-000123.pdf",
		ContentType: "application/pdf",
		Bytes:       []byte("%PDF-1.4 test"),
	}}
	srv := newTestServer(svc, &stubDashboardService{})

	body := `{
		"invoice": {"invoice_number": "INV-000123", "items": [{"description": "Design", "quantity": 2, "rate": 150}]},
		"client": {"name": "Ada Lovelace", "email": "ada@example.com"},
		"business_profile": {"name": "Studio X", "email": "hello@studiox.dev"}
	}`
	rec := postJSON(t, srv, "/api/invoices/render", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="INV-000123.pdf"` {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("response should carry the PDF bytes")
	}
}

func TestRenderInvoiceHandlerBadJSON(t *testing.T) {
	srv := newTestServer(&stubInvoiceService{}, &stubDashboardService{})

	rec := postJSON(t, srv, "/api/invoices/render", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error struct {
			Code  string `json:"code"`
			Field string `json:"field"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error.Code != "invalid_request" {
		t.Fatalf("error code = %q, want invalid_request", resp.Error.Code)
	}
	if resp.Error.Field != "body" {
		t.Fatalf("error field = %q, want body", resp.Error.Field)
	}
}

func TestRenderInvoiceHandlerDomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing invoice", invoicedomain.ErrMissingInvoice, http.StatusBadRequest},
		{"missing client", invoicedomain.ErrMissingClient, http.StatusBadRequest},
		{"missing profile", invoicedomain.ErrMissingProfile, http.StatusBadRequest},
		{"no line items", invoicedomain.ErrNoLineItems, http.StatusUnprocessableEntity},
		{"render failed", invoicedomain.ErrRenderFailed, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(&stubInvoiceService{err: tc.err}, &stubDashboardService{})

			rec := postJSON(t, srv, "/api/invoices/render", "{}")
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tc.wantStatus, rec.Body.String())
			}

			var resp struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Error.Code == "" {
				t.Fatal("error code should be set")
			}
		})
	}
}

func TestDashboardSummaryHandler(t *testing.T) {
	svc := &stubDashboardService{summary: dashboarddomain.Summary{
		TotalInvoices: 2,
		TotalClients:  1,
		PaidRevenue:   110,
	}}
	srv := newTestServer(&stubInvoiceService{}, svc)

	rec := postJSON(t, srv, "/api/dashboard/summary", `{"invoices": [], "clients": []}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got dashboarddomain.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if got.TotalInvoices != 2 || got.PaidRevenue != 110 {
		t.Fatalf("summary = %+v", got)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubInvoiceService{}, &stubDashboardService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestServiceUnavailable(t *testing.T) {
	srv := newTestServer(nil, nil)

	rec := postJSON(t, srv, "/api/invoices/render", "{}")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("render status = %d, want 503", rec.Code)
	}

	rec = postJSON(t, srv, "/api/dashboard/summary", "{}")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("summary status = %d, want 503", rec.Code)
	}
}
