package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	"github.com/haroun39/facteur/pkg/db/pagination"
)

type createCustomerRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Notes   *string `json:"notes"`
}

type updateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

// @Summary      Create Customer
// @Description  Create a new customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        request body createCustomerRequest true "Create Customer Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /customers [post]
func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Notes:   req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Customers
// @Description  List customers with optional search
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        q          query     string  false  "Search query"
// @Param        page       query     int     false  "Page"
// @Param        page_size  query     int     false  "Page Size"
// @Success      200  {object}  customerdomain.ListCustomerResponse
// @Router       /customers [get]
func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Query string `form:"q"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		Pagination: query.Pagination,
		Query:      strings.TrimSpace(query.Query),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Customer
// @Description  Get customer by ID
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  customerdomain.Customer
// @Router       /customers/{id} [get]
func (s *Server) GetCustomer(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Customer
// @Description  Update customer fields
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id      path  string                 true  "Customer ID"
// @Param        request body  updateCustomerRequest  true  "Update Customer Request"
// @Success      200  {object}  customerdomain.Customer
// @Router       /customers/{id} [put]
func (s *Server) UpdateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Update(c.Request.Context(), c.Param("id"), customerdomain.UpdateCustomerRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Customer
// @Description  Delete customer by ID
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  map[string]string
// @Router       /customers/{id} [delete]
func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.customerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      List Customer Invoices
// @Description  List a customer's invoices with payment-history balances
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  []invoicedomain.CustomerInvoice
// @Router       /customers/{id}/invoices [get]
func (s *Server) ListCustomerInvoices(c *gin.Context) {
	resp, err := s.invoiceSvc.ListByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Customer Debt
// @Description  Get a customer's all-time outstanding balance
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {object}  map[string]string
// @Router       /customers/{id}/debt [get]
func (s *Server) GetCustomerDebt(c *gin.Context) {
	debt, err := s.debtSvc.CustomerDebt(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"total_debt": debt}})
}
