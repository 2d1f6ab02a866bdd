package render

import "time"

// RenderInput is the deterministic input used for invoice rendering. The
// views are fully populated value objects; the renderer never mutates them.
type RenderInput struct {
	Invoice  InvoiceView
	Client   ClientView
	Business BusinessView
}

type InvoiceView struct {
	Number     string
	Status     string
	IssuedAt   *time.Time
	DueAt      *time.Time
	Currency   string
	TaxRate    float64
	Notes      string
	Items      []LineItemView
	Subtotal   float64
	Tax        float64
	Total      float64
	AmountPaid float64
	Balance    float64
}

type LineItemView struct {
	Description string
	Quantity    float64
	Rate        float64
	AmountPaid  float64
}

type ClientView struct {
	Name    string
	Company string
	Email   string
	Phone   string
}

type BusinessView struct {
	Name       string
	Address    string
	Email      string
	Phone      string
	Website    string
	BrandColor string
}

// Renderer produces a finished PDF byte stream from a render input.
type Renderer interface {
	RenderPDF(input RenderInput) ([]byte, error)
}

// DocumentFilename derives the download filename from an invoice number,
// falling back to a generic name when the number is absent.
func DocumentFilename(invoiceNumber string) string {
	if invoiceNumber == "" {
		return "invoice.pdf"
	}
	return invoiceNumber + ".pdf"
}
