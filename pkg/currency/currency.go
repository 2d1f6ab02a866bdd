// Package currency maps ISO currency codes to display symbols and formats
// monetary amounts for on-screen and PDF surfaces.
package currency

import (
	"fmt"
	"strings"
)

// Mode selects which symbol set an amount is formatted with. PDF output is
// restricted to glyphs the embedded core fonts can represent, so currencies
// with non-Latin symbols fall back to their ISO code there.
type Mode int

const (
	// ModeDisplay uses the currency's native glyph.
	ModeDisplay Mode = iota
	// ModePDF substitutes the ISO code for non-Latin glyphs.
	ModePDF
)

// Currency describes one supported currency.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "NGN", Symbol: "₦", Name: "Nigerian Naira"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
	{Code: "MXN", Symbol: "MX$", Name: "Mexican Peso"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
}

// pdfFallbacks maps currencies whose native glyph is outside the PDF core
// font set to the ISO code used in ModePDF.
var pdfFallbacks = map[string]string{
	"NGN": "NGN",
}

// Symbol returns the display symbol for an ISO code. Unknown codes fall back
// to "$".
func Symbol(code string, mode Mode) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if mode == ModePDF {
		if iso, ok := pdfFallbacks[code]; ok {
			return iso
		}
	}
	for _, c := range Currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return "$"
}

// Format renders an amount with its currency symbol prefix, thousands
// separators and exactly two decimal places, e.g. Format(1234.5, "USD",
// ModeDisplay) == "$1,234.50". Negative amounts carry the sign before the
// symbol: "-$100.00".
func Format(amount float64, code string, mode Mode) string {
	if amount < 0 {
		return "-" + Symbol(code, mode) + group(-amount)
	}
	return Symbol(code, mode) + group(amount)
}

// group applies en-US style thousands grouping to a two-decimal rendering of
// the amount.
func group(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
