package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
	reportdomain "github.com/haroun39/facteur/internal/report/domain"
)

// APIError is the error envelope returned to HTTP clients.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

var (
	ErrNotFound = &APIError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: "resource not found",
	}
	ErrServiceUnavailable = &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    "service_unavailable",
		Message: "service unavailable",
	}
)

func invalidRequestError() *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "invalid request payload",
	}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
		Fields:  map[string]string{field: code},
	}
}

var notFoundErrors = []error{
	customerdomain.ErrCustomerNotFound,
	invoicedomain.ErrInvoiceNotFound,
	paymentdomain.ErrPaymentNotFound,
	reportdomain.ErrCustomerNotFound,
}

var validationErrors = []error{
	customerdomain.ErrInvalidID,
	customerdomain.ErrInvalidName,
	invoicedomain.ErrInvalidID,
	invoicedomain.ErrInvalidNumber,
	invoicedomain.ErrInvalidDate,
	invoicedomain.ErrInvalidStatus,
	invoicedomain.ErrInvalidCustomer,
	invoicedomain.ErrEmptyItems,
	invoicedomain.ErrNegativeUnitPrice,
	invoicedomain.ErrNegativeQuantity,
	paymentdomain.ErrInvalidID,
	paymentdomain.ErrInvalidCustomer,
	paymentdomain.ErrInvalidAmount,
	paymentdomain.ErrInvalidDate,
	reportdomain.ErrInvalidCustomer,
	reportdomain.ErrInvalidDateRange,
}

// AbortWithError translates domain errors into the HTTP error envelope.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": &APIError{
				Status:  http.StatusNotFound,
				Code:    sentinel.Error(),
				Message: sentinel.Error(),
			}})
			return
		}
	}
	for _, sentinel := range validationErrors {
		if errors.Is(err, sentinel) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": &APIError{
				Status:  http.StatusBadRequest,
				Code:    sentinel.Error(),
				Message: sentinel.Error(),
			}})
			return
		}
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "internal server error",
	}})
}
