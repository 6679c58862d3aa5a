package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	"github.com/haroun39/facteur/pkg/db/pagination"
)

// @Summary      Create Invoice
// @Description  Create an invoice with its line items
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicedomain.CreateInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.CreateInvoiceResponse
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Description  List invoices with customer identity and filtered-set total
// @Tags         invoices
// @Produce      json
// @Param        q          query     string  false  "Search query"
// @Param        page       query     int     false  "Page"
// @Param        page_size  query     int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Query string `form:"q"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Pagination: query.Pagination,
		Query:      strings.TrimSpace(query.Query),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoice(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice
// @Description  Replace an invoice's header and line items
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id      path  string                              true  "Invoice ID"
// @Param        request body  invoicedomain.UpdateInvoiceRequest  true  "Update Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [put]
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoicedomain.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Description  Delete an invoice and its line items
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List Invoice Items
// @Description  List an invoice's line items
// @Tags         invoices
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  []invoicedomain.InvoiceItem
// @Router       /invoices/{id}/items [get]
func (s *Server) ListInvoiceItems(c *gin.Context) {
	resp, err := s.invoiceSvc.Items(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Products
// @Description  List distinct product names for item-entry autocomplete
// @Tags         products
// @Produce      json
// @Param        q   query      string  false  "Name filter"
// @Success      200  {object}  []invoicedomain.Product
// @Router       /products [get]
func (s *Server) ListProducts(c *gin.Context) {
	resp, err := s.invoiceSvc.Products(c.Request.Context(), c.Query("q"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
