package domain

import (
	"time"

	clientdomain "github.com/DevHusayn/InvoicePro/internal/client/domain"
	invoicedomain "github.com/DevHusayn/InvoicePro/internal/invoice/domain"
)

// RecentInvoiceLimit caps the recent-invoices list in a summary.
const RecentInvoiceLimit = 5

// SummaryRequest carries the caller's records to aggregate. Nothing is
// persisted; every call computes from the supplied slices.
type SummaryRequest struct {
	Invoices []invoicedomain.Invoice `json:"invoices"`
	Clients  []clientdomain.Client   `json:"clients"`
}

// RecentInvoice is one row of the recent-invoices list.
type RecentInvoice struct {
	InvoiceNumber string     `json:"invoice_number"`
	ClientName    string     `json:"client_name"`
	Status        string     `json:"status"`
	Currency      string     `json:"currency"`
	Total         float64    `json:"total"`
	Date          *time.Time `json:"date"`
}

// Summary aggregates the caller's invoicing position.
type Summary struct {
	TotalInvoices   int             `json:"total_invoices"`
	TotalClients    int             `json:"total_clients"`
	PaidRevenue     float64         `json:"paid_revenue"`
	PendingRevenue  float64         `json:"pending_revenue"`
	OverdueInvoices int             `json:"overdue_invoices"`
	StatusCounts    map[string]int  `json:"status_counts"`
	RecentInvoices  []RecentInvoice `json:"recent_invoices"`
}
