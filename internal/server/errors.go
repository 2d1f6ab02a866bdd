package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/DevHusayn/InvoicePro/internal/invoice/domain"
)

// apiError is an error with an HTTP status and a machine-readable code.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *apiError) Error() string { return e.Code }

var ErrServiceUnavailable = &apiError{Status: http.StatusServiceUnavailable, Code: "service_unavailable", Message: "service unavailable"}

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError translates service errors into JSON error responses.
// Domain sentinels map to client errors; anything unrecognized is a 500.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = translateDomainError(err)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}

func translateDomainError(err error) *apiError {
	switch {
	case errors.Is(err, invoicedomain.ErrMissingInvoice),
		errors.Is(err, invoicedomain.ErrMissingClient),
		errors.Is(err, invoicedomain.ErrMissingProfile):
		return &apiError{Status: http.StatusBadRequest, Code: err.Error(), Message: "required record is missing"}
	case errors.Is(err, invoicedomain.ErrNoLineItems):
		return &apiError{Status: http.StatusUnprocessableEntity, Code: err.Error(), Message: "invoice has no line items"}
	default:
		return &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"}
	}
}
