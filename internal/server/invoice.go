package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/DevHusayn/InvoicePro/internal/invoice/domain"
)

// RenderInvoice renders the posted invoice, client and business profile
// into a PDF and streams it back as a named attachment.
func (s *Server) RenderInvoice(c *gin.Context) {
	if s.invoiceSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req invoicedomain.RenderDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, newValidationError("body", "invalid_request", "request body must be valid JSON"))
		return
	}

	doc, err := s.invoiceSvc.RenderDocument(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Header("X-Document-Id", doc.ID)
	c.Data(http.StatusOK, doc.ContentType, doc.Bytes)
}
