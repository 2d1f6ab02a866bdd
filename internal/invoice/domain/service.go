package domain

import (
	"context"
	"errors"

	businessprofiledomain "github.com/DevHusayn/InvoicePro/internal/businessprofile/domain"
	clientdomain "github.com/DevHusayn/InvoicePro/internal/client/domain"
)

// RenderDocumentRequest carries the three records a render needs. All three
// are required and treated as immutable inputs.
type RenderDocumentRequest struct {
	Invoice *Invoice                               `json:"invoice"`
	Client  *clientdomain.Client                   `json:"client"`
	Profile *businessprofiledomain.BusinessProfile `json:"business_profile"`
}

// Document is the finished artifact: one PDF byte stream under a
// deterministic filename.
type Document struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Bytes       []byte `json:"-"`
}

// Service renders invoice documents.
type Service interface {
	RenderDocument(ctx context.Context, req RenderDocumentRequest) (*Document, error)
}

var (
	ErrMissingInvoice = errors.New("missing_invoice")
	ErrMissingClient  = errors.New("missing_client")
	ErrMissingProfile = errors.New("missing_business_profile")
	ErrNoLineItems    = errors.New("invoice_has_no_line_items")
	ErrRenderFailed   = errors.New("render_failed")
)
