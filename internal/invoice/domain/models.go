package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the lifecycle states an invoice can be in.
type Status string

const (
	StatusPending        Status = "pending"
	StatusPaid           Status = "paid"
	StatusPartialPayment Status = "partial-payment"
	StatusOverdue        Status = "overdue"
	StatusCancelled      Status = "cancelled"
)

// DefaultTaxRate applies when an invoice carries no tax rate.
const DefaultTaxRate = 10.0

// LineItem is one billable row on an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	AmountPaid  float64 `json:"amount_paid"`
}

// Amount returns quantity × rate rounded to two decimal places.
func (li LineItem) Amount() float64 {
	amount := decimal.NewFromFloat(li.Quantity).Mul(decimal.NewFromFloat(li.Rate))
	return amount.Round(2).InexactFloat64()
}

// Balance returns the unpaid remainder of the line amount.
func (li LineItem) Balance() float64 {
	balance := decimal.NewFromFloat(li.Amount()).Sub(decimal.NewFromFloat(li.AmountPaid))
	return balance.Round(2).InexactFloat64()
}

// Invoice is a fully populated, read-only invoice record. The renderer never
// mutates or persists it.
type Invoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	ClientID      string     `json:"client_id"`
	Date          *time.Time `json:"date"`
	DueDate       *time.Time `json:"due_date"`
	Items         []LineItem `json:"items"`
	Status        Status     `json:"status"`
	Currency      string     `json:"currency"`
	TaxRate       float64    `json:"tax_rate"`
	Notes         string     `json:"notes"`

	// Derived financial fields. ComputeTotals fills them from the items;
	// callers may also supply them precomputed.
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	AmountPaid float64 `json:"amount_paid"`
	Balance    float64 `json:"balance"`
}

// EffectiveTaxRate returns the invoice tax rate, defaulting when absent.
func (inv Invoice) EffectiveTaxRate() float64 {
	if inv.TaxRate <= 0 {
		return DefaultTaxRate
	}
	return inv.TaxRate
}

// IsPartialPayment reports whether the paid/balance table variant applies.
func (inv Invoice) IsPartialPayment() bool {
	return inv.Status == StatusPartialPayment
}

// ComputeTotals derives subtotal, tax, total, amount paid and balance from
// the line items. Amount paid is only accumulated for partial-payment
// invoices; otherwise it is zero and the balance equals the total.
func (inv *Invoice) ComputeTotals() {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.Rate)))
	}

	rate := decimal.NewFromFloat(inv.EffectiveTaxRate()).Div(decimal.NewFromInt(100))
	tax := subtotal.Mul(rate)
	total := subtotal.Add(tax)

	paid := decimal.Zero
	if inv.IsPartialPayment() {
		for _, item := range inv.Items {
			paid = paid.Add(decimal.NewFromFloat(item.AmountPaid))
		}
	}

	inv.Subtotal = subtotal.Round(2).InexactFloat64()
	inv.Tax = tax.Round(2).InexactFloat64()
	inv.Total = total.Round(2).InexactFloat64()
	inv.AmountPaid = paid.Round(2).InexactFloat64()
	inv.Balance = total.Sub(paid).Round(2).InexactFloat64()
}

// Normalize trims free-text fields and defaults the currency.
func (inv *Invoice) Normalize() {
	inv.InvoiceNumber = strings.TrimSpace(inv.InvoiceNumber)
	inv.Notes = strings.TrimSpace(inv.Notes)
	inv.Currency = strings.ToUpper(strings.TrimSpace(inv.Currency))
	if inv.Currency == "" {
		inv.Currency = "USD"
	}
	if inv.Status == "" {
		inv.Status = StatusPending
	}
}
