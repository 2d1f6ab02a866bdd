package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dashboarddomain "github.com/DevHusayn/InvoicePro/internal/dashboard/domain"
)

// DashboardSummary aggregates the posted invoices and clients into
// dashboard figures.
func (s *Server) DashboardSummary(c *gin.Context) {
	if s.dashboardSvc == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	var req dashboarddomain.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	summary, err := s.dashboardSvc.Summarize(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
