package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
	"github.com/haroun39/facteur/pkg/db/pagination"
)

// @Summary      Create Payment
// @Description  Record a payment toward a customer's balance
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentdomain.CreatePaymentRequest true "Create Payment Request"
// @Success      200  {object}  paymentdomain.Payment
// @Router       /payments [post]
func (s *Server) CreatePayment(c *gin.Context) {
	var req paymentdomain.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Payments
// @Description  List payments with references and filtered-set total
// @Tags         payments
// @Produce      json
// @Param        q          query     string  false  "Search query"
// @Param        page       query     int     false  "Page"
// @Param        page_size  query     int     false  "Page Size"
// @Success      200  {object}  paymentdomain.ListPaymentResponse
// @Router       /payments [get]
func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Query string `form:"q"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		Pagination: query.Pagination,
		Query:      strings.TrimSpace(query.Query),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Payment
// @Description  Update a recorded payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path  string                              true  "Payment ID"
// @Param        request body  paymentdomain.UpdatePaymentRequest  true  "Update Payment Request"
// @Success      200  {object}  paymentdomain.Payment
// @Router       /payments/{id} [put]
func (s *Server) UpdatePayment(c *gin.Context) {
	var req paymentdomain.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Payment
// @Description  Delete a recorded payment
// @Tags         payments
// @Produce      json
// @Param        id   path      string  true  "Payment ID"
// @Success      200  {object}  map[string]string
// @Router       /payments/{id} [delete]
func (s *Server) DeletePayment(c *gin.Context) {
	if err := s.paymentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
