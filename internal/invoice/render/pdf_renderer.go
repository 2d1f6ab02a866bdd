package render

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/DevHusayn/InvoicePro/pkg/currency"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth     = 210.0
	pageHeight    = 297.0
	marginX       = 15.0
	printableW    = pageWidth - 2*marginX
	contentRightX = pageWidth - marginX

	stripeHeight = 3.0
	lineHeight   = 4.0

	infoCardY    = 62.0
	tableStartY  = 112.0
	tableBreakY  = 262.0
	totalsX      = 130.0
	footerLineY  = 278.0
	bottomStripe = pageHeight - stripeHeight
)

const fontFamily = "Helvetica"

// ErrNoItems guards against emitting a document with an empty table.
var ErrNoItems = errors.New("render: invoice has no line items")

// PDFRenderer lays out invoices as paginated PDF documents. It holds no
// state between calls and is safe for concurrent use.
type PDFRenderer struct{}

// NewPDFRenderer constructs the PDF renderer.
func NewPDFRenderer() Renderer {
	return &PDFRenderer{}
}

// RenderPDF draws the full document and returns its bytes. It fails before
// any drawing occurs when the invoice has no line items; no partial artifact
// is ever returned.
func (r *PDFRenderer) RenderPDF(input RenderInput) ([]byte, error) {
	if len(input.Invoice.Items) == 0 {
		return nil, ErrNoItems
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(marginX, 10, marginX)
	doc.AddPage()

	p := &pdfPage{
		doc:    doc,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
		pal:    newPalette(input.Business.BrandColor),
		schema: resolveRowSchema(input.Invoice.Status),
		in:     input,
	}

	cur := &cursor{y: tableStartY}

	p.drawHeader()
	p.drawInfoCards()
	p.drawItemsTable(cur)
	p.drawTotals(cur)
	p.drawNotes(cur)
	p.drawFooter()

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// cursor is the running vertical position: each stage advances it by the
// height it consumed so the next stage starts strictly below.
type cursor struct {
	y float64
}

// pdfPage bundles the drawing state shared by the layout stages of a single
// render call.
type pdfPage struct {
	doc    *fpdf.Fpdf
	tr     func(string) string
	pal    palette
	schema rowSchema
	in     RenderInput
}

// ----- header & identity block -----

func (p *pdfPage) drawHeader() {
	p.drawTopStripe()

	// Accent rule alongside the identity block.
	p.setDraw(p.pal.primary)
	p.doc.SetLineWidth(1)
	p.doc.Line(marginX, 12, marginX, 50)

	p.setText(ColorText)
	p.doc.SetFont(fontFamily, "B", 22)
	p.text(22, 20, fallback(p.in.Business.Name, "Your Business"))

	p.doc.SetFont(fontFamily, "", 9)
	p.setText(ColorGray)
	addressLines := p.doc.SplitText(p.tr(p.in.Business.Address), 80)
	for i, line := range addressLines {
		p.doc.Text(22, 28+float64(i)*lineHeight, line)
	}

	// Contact stack starts below however many lines the address wrapped to.
	contactY := 28 + float64(len(addressLines))*lineHeight
	p.text(22, contactY, p.in.Business.Email)
	p.text(22, contactY+4, p.in.Business.Phone)
	if p.in.Business.Website != "" {
		p.text(22, contactY+8, p.in.Business.Website)
	}

	p.setText(p.pal.primary)
	p.doc.SetFont(fontFamily, "B", 38)
	p.textRight(contentRightX, 22, "INVOICE")

	// Invoice number pill in the light brand tint.
	p.setFill(p.pal.lightPrimary)
	p.doc.RoundedRect(155, 28, 40, 12, 2, "1234", "F")
	p.setText(p.pal.primary)
	p.doc.SetFont(fontFamily, "B", 11)
	p.textCenter(175, 35.5, "#"+fallback(p.in.Invoice.Number, "INV"))
}

// ----- billing & metadata cards -----

func (p *pdfPage) drawInfoCards() {
	p.setFill(ColorLightGray)
	p.doc.RoundedRect(marginX, infoCardY, 85, 38, 3, "1234", "F")

	p.setText(p.pal.primary)
	p.doc.SetFont(fontFamily, "B", 9)
	p.text(20, infoCardY+6, "BILLED TO")

	p.setText(ColorText)
	p.doc.SetFont(fontFamily, "B", 12)
	p.text(20, infoCardY+13, fallback(p.in.Client.Name, "Client"))

	p.doc.SetFont(fontFamily, "", 9)
	p.setText(ColorGray)
	p.text(20, infoCardY+19, p.in.Client.Company)
	p.text(20, infoCardY+24, p.in.Client.Email)
	if p.in.Client.Phone != "" {
		p.text(20, infoCardY+29, p.in.Client.Phone)
	}

	p.setFill(ColorLightGray)
	p.doc.RoundedRect(110, infoCardY, 85, 38, 3, "1234", "F")

	p.drawStatusBadge()

	p.setText(ColorGray)
	p.doc.SetFont(fontFamily, "", 8)
	p.text(115, infoCardY+18, "ISSUE DATE")
	p.text(115, infoCardY+28, "DUE DATE")

	p.setText(ColorText)
	p.doc.SetFont(fontFamily, "B", 10)
	p.textRight(190, infoCardY+18, formatDate(p.in.Invoice.IssuedAt))
	p.textRight(190, infoCardY+28, formatDate(p.in.Invoice.DueAt))
}

func (p *pdfPage) drawStatusBadge() {
	label := strings.ToUpper(p.in.Invoice.Status)
	p.doc.SetFont(fontFamily, "B", 8)

	width := p.doc.GetStringWidth(p.tr(label)) + 6
	if width < 26 {
		width = 26
	}
	x := 191 - width

	p.setFill(StatusColor(p.in.Invoice.Status))
	p.doc.RoundedRect(x, infoCardY+3, width, 8, 2, "1234", "F")
	p.setText(ColorWhite)
	p.textCenter(x+width/2, infoCardY+8, label)
}

// ----- line-item table -----

func (p *pdfPage) drawItemsTable(cur *cursor) {
	p.drawTableHead(cur)

	for i, item := range p.in.Invoice.Items {
		descLines := p.doc.SplitText(p.tr(item.Description), p.schema.columns[0].width*printableW-6)
		if len(descLines) == 0 {
			descLines = []string{""}
		}
		rowH := float64(len(descLines))*lineHeight + 5
		if rowH < 10 {
			rowH = 10
		}

		if cur.y+rowH > tableBreakY {
			p.startOverflowPage(cur)
			p.drawTableHead(cur)
		}

		if i%2 == 1 {
			p.setFill(ColorRowTint)
			p.doc.Rect(marginX, cur.y, printableW, rowH, "F")
		}

		p.doc.SetFont(fontFamily, "", 9)
		x := marginX
		for _, col := range p.schema.columns {
			w := col.width * printableW
			p.drawCell(col, item, x, w, cur.y, rowH, descLines)
			x += w
		}

		p.setDraw(ColorLightGray)
		p.doc.SetLineWidth(0.2)
		p.doc.Line(marginX, cur.y+rowH, marginX+printableW, cur.y+rowH)

		cur.y += rowH
	}
}

func (p *pdfPage) drawTableHead(cur *cursor) {
	const headH = 8.0

	p.setFill(p.pal.primary)
	p.doc.Rect(marginX, cur.y, printableW, headH, "F")

	p.setText(ColorWhite)
	p.doc.SetFont(fontFamily, "B", 9)
	x := marginX
	for _, col := range p.schema.columns {
		w := col.width * printableW
		if col.kind == colDescription {
			p.text(x+3, cur.y+5.5, col.header)
		} else {
			p.textCenter(x+w/2, cur.y+5.5, col.header)
		}
		x += w
	}

	cur.y += headH
}

func (p *pdfPage) drawCell(col tableColumn, item LineItemView, x, w, y, rowH float64, descLines []string) {
	textY := y + 6.5

	switch col.kind {
	case colDescription:
		p.setText(ColorText)
		for i, line := range descLines {
			p.doc.Text(x+3, textY+float64(i)*lineHeight, line)
		}
	case colQuantity:
		p.setText(ColorGray)
		p.textCenter(x+w/2, textY, trimZeros(item.Quantity))
	case colRate:
		p.setText(ColorGray)
		p.textCenter(x+w/2, textY, p.money(item.Rate))
	case colAmount:
		p.setText(ColorText)
		p.doc.SetFont(fontFamily, "B", 9)
		p.textCenter(x+w/2, textY, p.money(lineAmount(item)))
		p.doc.SetFont(fontFamily, "", 9)
	case colPaid:
		p.setText(ColorGreen)
		p.doc.SetFont(fontFamily, "B", 9)
		p.textCenter(x+w/2, textY, p.money(item.AmountPaid))
		p.doc.SetFont(fontFamily, "", 9)
	case colBalance:
		p.setText(ColorText)
		p.doc.SetFont(fontFamily, "B", 9)
		p.textCenter(x+w/2, textY, p.money(lineAmount(item)-item.AmountPaid))
		p.doc.SetFont(fontFamily, "", 9)
	}
}

// ----- totals cascade -----

func (p *pdfPage) drawTotals(cur *cursor) {
	if cur.y+60 > footerLineY-8 {
		p.startOverflowPage(cur)
	}
	finalY := cur.y + 15

	p.doc.SetFont(fontFamily, "", 9)
	p.setText(ColorGray)
	p.text(totalsX, finalY, "Subtotal")
	p.setText(ColorText)
	p.textRight(contentRightX, finalY, p.money(p.in.Invoice.Subtotal))

	p.setText(ColorGray)
	p.text(totalsX, finalY+8, fmt.Sprintf("Tax (%s%%)", trimZeros(taxRateOrDefault(p.in.Invoice.TaxRate))))
	p.setText(ColorText)
	p.textRight(contentRightX, finalY+8, p.money(p.in.Invoice.Tax))

	p.setDraw(p.pal.primary)
	p.doc.SetLineWidth(1)
	p.doc.Line(totalsX, finalY+13, contentRightX, finalY+13)

	p.setText(ColorText)
	p.doc.SetFont(fontFamily, "B", 10)
	p.text(totalsX, finalY+22, "Total")
	p.doc.SetFont(fontFamily, "B", 11)
	p.textRight(contentRightX, finalY+22, p.money(p.in.Invoice.Total))

	cur.y = finalY + 22

	if p.in.Invoice.AmountPaid > 0 {
		cur.y += 8
		p.doc.SetFont(fontFamily, "", 9)
		p.setText(ColorGray)
		p.text(totalsX, cur.y, "Amount Paid")
		p.setText(ColorGreen)
		p.doc.SetFont(fontFamily, "B", 10)
		p.textRight(contentRightX, cur.y, p.money(-p.in.Invoice.AmountPaid))

		p.drawDueRow(cur, "BALANCE DUE", p.balanceDue())
		return
	}

	p.drawDueRow(cur, "TOTAL DUE", p.in.Invoice.Total)
}

func (p *pdfPage) drawDueRow(cur *cursor, label string, amount float64) {
	cur.y += 5
	p.setDraw(p.pal.primary)
	p.doc.SetLineWidth(0.5)
	p.doc.Line(totalsX, cur.y, contentRightX, cur.y)

	cur.y += 8
	p.setText(p.pal.primary)
	p.doc.SetFont(fontFamily, "B", 10)
	p.text(totalsX, cur.y, label)
	p.doc.SetFont(fontFamily, "B", 11)
	p.textRight(contentRightX, cur.y, p.money(amount))
}

func (p *pdfPage) balanceDue() float64 {
	if p.in.Invoice.Balance != 0 {
		return p.in.Invoice.Balance
	}
	return p.in.Invoice.Total - p.in.Invoice.AmountPaid
}

// ----- notes & footer -----

func (p *pdfPage) drawNotes(cur *cursor) {
	if p.in.Invoice.Notes == "" {
		return
	}

	lines := p.doc.SplitText(p.tr(p.in.Invoice.Notes), 175)
	needed := 12 + float64(len(lines))*lineHeight
	if cur.y+20+needed > footerLineY-4 {
		p.startOverflowPage(cur)
	}
	notesY := cur.y + 20

	p.setDraw(p.pal.primary)
	p.doc.SetLineWidth(0.5)
	p.doc.Line(marginX, notesY, 25, notesY)

	p.setText(p.pal.primary)
	p.doc.SetFont(fontFamily, "B", 9)
	p.text(marginX, notesY+6, "NOTES")

	p.doc.SetFont(fontFamily, "", 8)
	p.setText(ColorGray)
	for i, line := range lines {
		p.doc.Text(marginX, notesY+12+float64(i)*lineHeight, line)
	}

	cur.y = notesY + needed
}

func (p *pdfPage) drawFooter() {
	p.setDraw(ColorLightGray)
	p.doc.SetLineWidth(1)
	p.doc.Line(marginX, footerLineY, contentRightX, footerLineY)

	p.setText(ColorGray)
	p.doc.SetFont(fontFamily, "", 8)
	p.textCenter(pageWidth/2, 285, "Thank you for your business!")

	p.doc.SetFont(fontFamily, "", 7)
	contact := fmt.Sprintf("%s • %s • %s",
		fallback(p.in.Business.Name, "Business"), p.in.Business.Email, p.in.Business.Phone)
	p.textCenter(pageWidth/2, 290, contact)

	p.setFill(p.pal.primary)
	p.doc.Rect(0, bottomStripe, pageWidth, stripeHeight, "F")
}

// startOverflowPage begins a continuation page and resets the cursor below
// the top stripe.
func (p *pdfPage) startOverflowPage(cur *cursor) {
	p.doc.AddPage()
	p.drawTopStripe()
	cur.y = 12
}

func (p *pdfPage) drawTopStripe() {
	p.setFill(p.pal.primary)
	p.doc.Rect(0, 0, pageWidth, stripeHeight, "F")
}

// ----- drawing helpers -----

func (p *pdfPage) text(x, y float64, s string) {
	p.doc.Text(x, y, p.tr(s))
}

func (p *pdfPage) textRight(x, y float64, s string) {
	s = p.tr(s)
	p.doc.Text(x-p.doc.GetStringWidth(s), y, s)
}

func (p *pdfPage) textCenter(x, y float64, s string) {
	s = p.tr(s)
	p.doc.Text(x-p.doc.GetStringWidth(s)/2, y, s)
}

func (p *pdfPage) setFill(c RGB) { p.doc.SetFillColor(c.R, c.G, c.B) }
func (p *pdfPage) setDraw(c RGB) { p.doc.SetDrawColor(c.R, c.G, c.B) }
func (p *pdfPage) setText(c RGB) { p.doc.SetTextColor(c.R, c.G, c.B) }

// money formats an amount in the invoice currency. PDF output always uses
// the ISO code for currencies whose glyph the core fonts cannot represent.
func (p *pdfPage) money(amount float64) string {
	return currency.Format(amount, p.in.Invoice.Currency, currency.ModePDF)
}

func lineAmount(item LineItemView) float64 {
	return item.Quantity * item.Rate
}

func taxRateOrDefault(rate float64) float64 {
	if rate <= 0 {
		return 10
	}
	return rate
}

func formatDate(value *time.Time) string {
	if value == nil || value.IsZero() {
		return "N/A"
	}
	return value.Format("Jan 02, 2006")
}

func trimZeros(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
