package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reportdomain "github.com/haroun39/facteur/internal/report/domain"
)

// @Summary      Transactions Report
// @Description  Chronological invoice and payment history for one customer
// @Tags         reports
// @Produce      json
// @Param        customer_id  query     string  true   "Customer ID"
// @Param        from         query     string  true   "Start date (YYYY-MM-DD)"
// @Param        to           query     string  false  "End date (YYYY-MM-DD)"
// @Success      200  {object}  reportdomain.TransactionsReport
// @Router       /reports/transactions [get]
func (s *Server) TransactionsReport(c *gin.Context) {
	var query reportdomain.TransactionsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reportSvc.Transactions(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Report Summary
// @Description  Global dashboard totals
// @Tags         reports
// @Produce      json
// @Success      200  {object}  reportdomain.ReportSummary
// @Router       /reports/summary [get]
func (s *Server) ReportSummary(c *gin.Context) {
	resp, err := s.reportSvc.Summary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
