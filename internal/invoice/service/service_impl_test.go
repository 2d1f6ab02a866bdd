package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	businessprofiledomain "github.com/DevHusayn/InvoicePro/internal/businessprofile/domain"
	clientdomain "github.com/DevHusayn/InvoicePro/internal/client/domain"
	"github.com/DevHusayn/InvoicePro/internal/clock"
	"github.com/DevHusayn/InvoicePro/internal/config"
	invoicedomain "github.com/DevHusayn/InvoicePro/internal/invoice/domain"
	"github.com/DevHusayn/InvoicePro/internal/invoice/render"
)

type stubRenderer struct {
	out   []byte
	err   error
	calls int
	last  render.RenderInput
}

func (r *stubRenderer) RenderPDF(input render.RenderInput) ([]byte, error) {
	r.calls++
	r.last = input
	return r.out, r.err
}

func newTestService(t *testing.T, renderer render.Renderer, cacheEnabled bool) invoicedomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake.NewNode: %v", err)
	}

	cfg := config.Config{}
	cfg.Render.CacheEnabled = cacheEnabled
	cfg.Render.CacheTTL = time.Minute

	return NewService(ServiceParam{
		Config:   cfg,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.Fixed{At: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)},
		Renderer: renderer,
	})
}

func sampleRequest() invoicedomain.RenderDocumentRequest {
	issued := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	return invoicedomain.RenderDocumentRequest{
		Invoice: &invoicedomain.Invoice{
			InvoiceNumber: "INV-000123",
			Status:        invoicedomain.StatusPending,
			Date:          &issued,
			DueDate:       &due,
			Currency:      "USD",
			TaxRate:       10,
			Items: []invoicedomain.LineItem{
				{Description: "Design work", Quantity: 2, Rate: 150},
			},
		},
		Client: &clientdomain.Client{
			ID:    "cl_1",
			Name:  "Ada Lovelace",
			Email: "ada@example.com",
		},
		Profile: &businessprofiledomain.BusinessProfile{
			Name:  "Studio X",
			Email: "hello@studiox.dev",
		},
	}
}

func TestRenderDocument(t *testing.T) {
	renderer := &stubRenderer{out: []byte("%PDF-1.4 test")}
	svc := newTestService(t, renderer, false)

	doc, err := svc.RenderDocument(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if doc.ID == "" {
		t.Fatal("document ID should be assigned")
	}
	if doc.Filename != "INV-000123.pdf" {
		t.Fatalf("Filename = %q, want INV-000123.pdf", doc.Filename)
	}
	if doc.ContentType != "application/pdf" {
		t.Fatalf("ContentType = %q", doc.ContentType)
	}
	if len(doc.Bytes) == 0 {
		t.Fatal("document bytes should not be empty")
	}

	if renderer.last.Invoice.Subtotal != 300 {
		t.Fatalf("Subtotal = %v, want 300", renderer.last.Invoice.Subtotal)
	}
	if renderer.last.Invoice.Tax != 30 {
		t.Fatalf("Tax = %v, want 30", renderer.last.Invoice.Tax)
	}
	if renderer.last.Invoice.Total != 330 {
		t.Fatalf("Total = %v, want 330", renderer.last.Invoice.Total)
	}
}

func TestRenderDocumentMissingRecords(t *testing.T) {
	svc := newTestService(t, &stubRenderer{out: []byte("%PDF")}, false)

	cases := []struct {
		name    string
		mutate  func(*invoicedomain.RenderDocumentRequest)
		wantErr error
	}{
		{
			name:    "missing invoice",
			mutate:  func(r *invoicedomain.RenderDocumentRequest) { r.Invoice = nil },
			wantErr: invoicedomain.ErrMissingInvoice,
		},
		{
			name:    "missing client",
			mutate:  func(r *invoicedomain.RenderDocumentRequest) { r.Client = nil },
			wantErr: invoicedomain.ErrMissingClient,
		},
		{
			name:    "missing profile",
			mutate:  func(r *invoicedomain.RenderDocumentRequest) { r.Profile = nil },
			wantErr: invoicedomain.ErrMissingProfile,
		},
		{
			name:    "no line items",
			mutate:  func(r *invoicedomain.RenderDocumentRequest) { r.Invoice.Items = nil },
			wantErr: invoicedomain.ErrNoLineItems,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := sampleRequest()
			tc.mutate(&req)

			doc, err := svc.RenderDocument(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if doc != nil {
				t.Fatal("no document should be returned on validation failure")
			}
		})
	}
}

func TestRenderDocumentAppliesProfileDefaults(t *testing.T) {
	renderer := &stubRenderer{out: []byte("%PDF")}
	svc := newTestService(t, renderer, false)

	req := sampleRequest()
	req.Invoice.Currency = ""
	req.Invoice.TaxRate = 0
	req.Profile.DefaultCurrency = "eur"
	req.Profile.DefaultTaxRate = 7.5

	if _, err := svc.RenderDocument(context.Background(), req); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if renderer.last.Invoice.Currency != "EUR" {
		t.Fatalf("Currency = %q, want EUR", renderer.last.Invoice.Currency)
	}
	if renderer.last.Invoice.TaxRate != 7.5 {
		t.Fatalf("TaxRate = %v, want 7.5", renderer.last.Invoice.TaxRate)
	}
	if renderer.last.Business.BrandColor != businessprofiledomain.DefaultBrandColor {
		t.Fatalf("BrandColor = %q, want default", renderer.last.Business.BrandColor)
	}
}

func TestRenderDocumentDoesNotMutateRequest(t *testing.T) {
	svc := newTestService(t, &stubRenderer{out: []byte("%PDF")}, false)

	req := sampleRequest()
	req.Invoice.Currency = ""
	if _, err := svc.RenderDocument(context.Background(), req); err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if req.Invoice.Currency != "" {
		t.Fatal("caller invoice should not be mutated")
	}
	if req.Invoice.Total != 0 {
		t.Fatal("derived totals should not leak into the caller's record")
	}
}

func TestRenderDocumentCacheReuse(t *testing.T) {
	renderer := &stubRenderer{out: []byte("%PDF")}
	svc := newTestService(t, renderer, true)

	first, err := svc.RenderDocument(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := svc.RenderDocument(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if renderer.calls != 1 {
		t.Fatalf("renderer calls = %d, want 1", renderer.calls)
	}
	if first.ID != second.ID {
		t.Fatal("cached render should return the same document")
	}

	req := sampleRequest()
	req.Invoice.InvoiceNumber = "INV-000124"
	if _, err := svc.RenderDocument(context.Background(), req); err != nil {
		t.Fatalf("third render: %v", err)
	}
	if renderer.calls != 2 {
		t.Fatalf("renderer calls = %d, want 2 after distinct input", renderer.calls)
	}
}

func TestRenderDocumentRendererFailure(t *testing.T) {
	svc := newTestService(t, &stubRenderer{err: errors.New("boom")}, false)

	_, err := svc.RenderDocument(context.Background(), sampleRequest())
	if !errors.Is(err, invoicedomain.ErrRenderFailed) {
		t.Fatalf("err = %v, want ErrRenderFailed", err)
	}
}

func TestRenderDocumentLogsMaskedClientContact(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orig := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(orig)

	svc := newTestService(t, &stubRenderer{out: []byte("%PDF")}, false)

	req := sampleRequest()
	req.Client.Email = "ada@example.com"
	req.Client.Phone = "555-123-4567"

	doc, err := svc.RenderDocument(context.Background(), req)
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}

	entries := logs.FilterMessage("document rendered").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 render log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["document_id"] != doc.ID {
		t.Fatalf("expected document_id %q, got %v", doc.ID, fields["document_id"])
	}
	if fields["client_email"] != "a****@example.com" {
		t.Fatalf("client email should be masked, got %v", fields["client_email"])
	}
	if fields["client_phone"] != "****4567" {
		t.Fatalf("client phone should be masked, got %v", fields["client_phone"])
	}
}

func TestRenderDocumentNoItemsFromRenderer(t *testing.T) {
	svc := newTestService(t, &stubRenderer{err: render.ErrNoItems}, false)

	_, err := svc.RenderDocument(context.Background(), sampleRequest())
	if !errors.Is(err, invoicedomain.ErrNoLineItems) {
		t.Fatalf("err = %v, want ErrNoLineItems", err)
	}
}
