package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"

	businessprofiledomain "github.com/DevHusayn/InvoicePro/internal/businessprofile/domain"
	"github.com/DevHusayn/InvoicePro/internal/cache"
	clientdomain "github.com/DevHusayn/InvoicePro/internal/client/domain"
	"github.com/DevHusayn/InvoicePro/internal/clock"
	"github.com/DevHusayn/InvoicePro/internal/config"
	invoicedomain "github.com/DevHusayn/InvoicePro/internal/invoice/domain"
	"github.com/DevHusayn/InvoicePro/internal/invoice/render"
	obscontext "github.com/DevHusayn/InvoicePro/internal/observability/context"
	"github.com/DevHusayn/InvoicePro/internal/observability/logger"
	"github.com/DevHusayn/InvoicePro/internal/observability/metrics"
)

// Service renders invoice documents through the PDF layout engine, with a
// short-lived cache for repeated downloads of the same content.
type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	clk      clock.Clock
	renderer render.Renderer
	metrics  *metrics.RenderMetrics

	docs     cache.Cache[string, invoicedomain.Document]
	cacheTTL time.Duration
}

type ServiceParam struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Renderer render.Renderer
	Metrics  *metrics.RenderMetrics `optional:"true"`
}

func NewService(p ServiceParam) invoicedomain.Service {
	var docs cache.Cache[string, invoicedomain.Document] = cache.NoopCache[string, invoicedomain.Document]{}
	if p.Config.Render.CacheEnabled {
		docs = cache.NewTTLCache[string, invoicedomain.Document]()
	}

	return &Service{
		log:      p.Log.Named("invoice.service"),
		genID:    p.GenID,
		clk:      p.Clock,
		renderer: p.Renderer,
		metrics:  p.Metrics,
		docs:     docs,
		cacheTTL: p.Config.Render.CacheTTL,
	}
}

// RenderDocument validates the three records, derives the invoice totals and
// produces the PDF artifact. Fatal validation errors abort before any
// drawing occurs.
func (s *Service) RenderDocument(ctx context.Context, req invoicedomain.RenderDocumentRequest) (*invoicedomain.Document, error) {
	start := time.Now()

	inv, cli, prof, err := s.prepare(req)
	if err != nil {
		s.observe("invalid_input", start, 0)
		return nil, err
	}

	key := renderKey(inv, cli, prof)
	if doc, ok := s.docs.Get(key); ok {
		s.metrics.ObserveCache(true)
		return &doc, nil
	}
	s.metrics.ObserveCache(false)

	out, err := s.renderer.RenderPDF(renderInput(inv, cli, prof))
	if err != nil {
		if errors.Is(err, render.ErrNoItems) {
			s.observe("invalid_input", start, 0)
			return nil, invoicedomain.ErrNoLineItems
		}
		s.log.Error("document render failed",
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Error(err),
		)
		s.observe("failed", start, 0)
		return nil, invoicedomain.ErrRenderFailed
	}

	doc := invoicedomain.Document{
		ID:          s.genID.Generate().String(),
		Filename:    render.DocumentFilename(inv.InvoiceNumber),
		ContentType: "application/pdf",
		Bytes:       out,
	}
	s.docs.Set(key, doc, s.cacheTTL)
	s.observe("success", start, len(out))

	ctx = obscontext.WithDocumentID(ctx, doc.ID)
	logger.FromContext(ctx).Info("document rendered",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("filename", doc.Filename),
		zap.String("client_email", logger.MaskEmail(cli.Email)),
		zap.String("client_phone", logger.MaskPhone(cli.Phone)),
		zap.Int("bytes", len(out)),
		zap.Time("rendered_at", s.clk.Now()),
	)
	return &doc, nil
}

// prepare checks the fatal preconditions and returns normalized copies of
// the three records; the caller's records are never mutated.
func (s *Service) prepare(req invoicedomain.RenderDocumentRequest) (invoicedomain.Invoice, clientdomain.Client, businessprofiledomain.BusinessProfile, error) {
	var (
		zeroInv  invoicedomain.Invoice
		zeroCli  clientdomain.Client
		zeroProf businessprofiledomain.BusinessProfile
	)
	if req.Invoice == nil {
		return zeroInv, zeroCli, zeroProf, invoicedomain.ErrMissingInvoice
	}
	if req.Client == nil {
		return zeroInv, zeroCli, zeroProf, invoicedomain.ErrMissingClient
	}
	if req.Profile == nil {
		return zeroInv, zeroCli, zeroProf, invoicedomain.ErrMissingProfile
	}

	inv := *req.Invoice
	cli := *req.Client
	prof := *req.Profile

	cli.Normalize()
	prof.Normalize()

	if inv.Currency == "" {
		inv.Currency = prof.DefaultCurrency
	}
	if inv.TaxRate <= 0 {
		inv.TaxRate = prof.DefaultTaxRate
	}
	inv.Normalize()

	if len(inv.Items) == 0 {
		return zeroInv, zeroCli, zeroProf, invoicedomain.ErrNoLineItems
	}

	inv.ComputeTotals()
	return inv, cli, prof, nil
}

func (s *Service) observe(result string, start time.Time, size int) {
	s.metrics.ObserveRender(result, time.Since(start), size)
}

// renderKey hashes the normalized inputs; identical content renders an
// identical document, so it is safe to serve from cache.
func renderKey(inv invoicedomain.Invoice, cli clientdomain.Client, prof businessprofiledomain.BusinessProfile) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(inv)
	_ = enc.Encode(cli)
	_ = enc.Encode(prof)
	return hex.EncodeToString(h.Sum(nil))
}

func renderInput(inv invoicedomain.Invoice, cli clientdomain.Client, prof businessprofiledomain.BusinessProfile) render.RenderInput {
	items := make([]render.LineItemView, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, render.LineItemView{
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			AmountPaid:  item.AmountPaid,
		})
	}

	return render.RenderInput{
		Invoice: render.InvoiceView{
			Number:     inv.InvoiceNumber,
			Status:     string(inv.Status),
			IssuedAt:   inv.Date,
			DueAt:      inv.DueDate,
			Currency:   inv.Currency,
			TaxRate:    inv.TaxRate,
			Notes:      inv.Notes,
			Items:      items,
			Subtotal:   inv.Subtotal,
			Tax:        inv.Tax,
			Total:      inv.Total,
			AmountPaid: inv.AmountPaid,
			Balance:    inv.Balance,
		},
		Client: render.ClientView{
			Name:    cli.Name,
			Company: cli.Company,
			Email:   cli.Email,
			Phone:   cli.Phone,
		},
		Business: render.BusinessView{
			Name:       prof.Name,
			Address:    prof.Address,
			Email:      prof.Email,
			Phone:      prof.Phone,
			Website:    prof.Website,
			BrandColor: prof.BrandColor,
		},
	}
}
