package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/haroun39/facteur/pkg/db/pagination"
)

type CreatePaymentRequest struct {
	CustomerID string          `json:"customer_id"`
	InvoiceID  string          `json:"invoice_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Notes      *string         `json:"notes,omitempty"`
}

type UpdatePaymentRequest struct {
	CustomerID string          `json:"customer_id"`
	InvoiceID  string          `json:"invoice_id,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Notes      *string         `json:"notes,omitempty"`
}

type ListPaymentRequest struct {
	pagination.Pagination
	// Query matches customer name, invoice number, or a date prefix.
	Query string
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Payments []PaymentWithRefs `json:"payments"`
	// SumAmount is the payment total over the filtered set, not just the
	// returned page.
	SumAmount decimal.Decimal `json:"sum_amount"`
}

type Service interface {
	Create(ctx context.Context, req CreatePaymentRequest) (Payment, error)
	Update(ctx context.Context, id string, req UpdatePaymentRequest) (Payment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, req ListPaymentRequest) (ListPaymentResponse, error)
}

var (
	ErrInvalidID       = errors.New("invalid_payment_id")
	ErrInvalidCustomer = errors.New("invalid_payment_customer")
	ErrInvalidAmount   = errors.New("invalid_payment_amount")
	ErrInvalidDate     = errors.New("invalid_payment_date")
	ErrPaymentNotFound = errors.New("payment_not_found")
)
