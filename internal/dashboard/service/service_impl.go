package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/DevHusayn/InvoicePro/internal/dashboard/domain"
	invoicedomain "github.com/DevHusayn/InvoicePro/internal/invoice/domain"
)

// Service aggregates caller-supplied records into dashboard figures.
type Service struct {
	log *zap.Logger
}

type ServiceParam struct {
	fx.In

	Log *zap.Logger
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log: p.Log.Named("dashboard.service"),
	}
}

// Summarize recomputes every invoice's totals and folds them into one
// summary. Cancelled invoices count toward totals but not revenue.
func (s *Service) Summarize(ctx context.Context, req domain.SummaryRequest) (domain.Summary, error) {
	clientNames := make(map[string]string, len(req.Clients))
	for _, cli := range req.Clients {
		c := cli
		c.Normalize()
		clientNames[c.ID] = c.Name
	}

	summary := domain.Summary{
		TotalInvoices: len(req.Invoices),
		TotalClients:  len(req.Clients),
		StatusCounts:  make(map[string]int),
	}

	paid := decimal.Zero
	pending := decimal.Zero
	invoices := make([]invoicedomain.Invoice, 0, len(req.Invoices))

	for _, record := range req.Invoices {
		inv := record
		inv.Normalize()
		inv.ComputeTotals()
		invoices = append(invoices, inv)

		summary.StatusCounts[string(inv.Status)]++

		switch inv.Status {
		case invoicedomain.StatusPaid:
			paid = paid.Add(decimal.NewFromFloat(inv.Total))
		case invoicedomain.StatusPartialPayment:
			paid = paid.Add(decimal.NewFromFloat(inv.AmountPaid))
			pending = pending.Add(decimal.NewFromFloat(inv.Balance))
		case invoicedomain.StatusPending:
			pending = pending.Add(decimal.NewFromFloat(inv.Total))
		case invoicedomain.StatusOverdue:
			pending = pending.Add(decimal.NewFromFloat(inv.Total))
			summary.OverdueInvoices++
		}
	}

	summary.PaidRevenue = paid.Round(2).InexactFloat64()
	summary.PendingRevenue = pending.Round(2).InexactFloat64()
	summary.RecentInvoices = recentInvoices(invoices, clientNames)

	s.log.Debug("summary computed",
		zap.Int("invoices", summary.TotalInvoices),
		zap.Int("clients", summary.TotalClients),
		zap.Int("overdue", summary.OverdueInvoices),
	)
	return summary, nil
}

// recentInvoices returns the newest invoices by issue date, undated ones
// last, capped at RecentInvoiceLimit.
func recentInvoices(invoices []invoicedomain.Invoice, clientNames map[string]string) []domain.RecentInvoice {
	sorted := make([]invoicedomain.Invoice, len(invoices))
	copy(sorted, invoices)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if len(sorted) > domain.RecentInvoiceLimit {
		sorted = sorted[:domain.RecentInvoiceLimit]
	}

	recent := make([]domain.RecentInvoice, 0, len(sorted))
	for _, inv := range sorted {
		recent = append(recent, domain.RecentInvoice{
			InvoiceNumber: inv.InvoiceNumber,
			ClientName:    clientName(clientNames, inv.ClientID),
			Status:        string(inv.Status),
			Currency:      inv.Currency,
			Total:         inv.Total,
			Date:          inv.Date,
		})
	}
	return recent
}

func clientName(names map[string]string, clientID string) string {
	if name, ok := names[clientID]; ok && name != "" {
		return name
	}
	return "Unknown client"
}
