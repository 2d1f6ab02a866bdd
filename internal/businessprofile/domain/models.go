// Package domain holds the business profile record that brands rendered
// documents.
package domain

import "strings"

// Defaults applied when a profile field is absent.
const (
	DefaultBrandColor = "#0ea5e9"
	DefaultCurrency   = "USD"
	DefaultTaxRate    = 10.0
)

// BusinessProfile describes the invoicing business: identity, contact
// details and document branding.
type BusinessProfile struct {
	Name            string  `json:"name"`
	Address         string  `json:"address,omitempty"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Website         string  `json:"website,omitempty"`
	BrandColor      string  `json:"brand_color"`
	DefaultCurrency string  `json:"default_currency"`
	DefaultTaxRate  float64 `json:"default_tax_rate"`
}

// Normalize trims fields and fills branding defaults.
func (p *BusinessProfile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Website = strings.TrimSpace(p.Website)
	p.BrandColor = strings.TrimSpace(p.BrandColor)
	if p.BrandColor == "" {
		p.BrandColor = DefaultBrandColor
	}
	p.DefaultCurrency = strings.ToUpper(strings.TrimSpace(p.DefaultCurrency))
	if p.DefaultCurrency == "" {
		p.DefaultCurrency = DefaultCurrency
	}
	if p.DefaultTaxRate <= 0 {
		p.DefaultTaxRate = DefaultTaxRate
	}
}
