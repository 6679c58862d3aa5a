package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/haroun39/facteur/pkg/db/pagination"
)

// ItemInput is a caller-supplied invoice line; the item total is always
// recomputed server-side.
type ItemInput struct {
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
}

type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    string          `json:"customer_id"`
	Date          string          `json:"date"`
	Status        InvoiceStatus   `json:"status"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Items         []ItemInput     `json:"items"`
}

// UpdateInvoiceRequest replaces the invoice header and its items. The total
// is recomputed from the items; status and paid_amount are stored as given
// (creation-time reconciliation does not rerun on edit).
type UpdateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    string          `json:"customer_id"`
	Date          string          `json:"date"`
	Status        InvoiceStatus   `json:"status"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Items         []ItemInput     `json:"items"`
}

type ListInvoiceRequest struct {
	pagination.Pagination
	// Query matches invoice_number, customer name, or a date prefix.
	Query string
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []InvoiceWithCustomer `json:"invoices"`
	// SumTotal is the invoice grand total over the filtered set, not just
	// the returned page.
	SumTotal decimal.Decimal `json:"sum_total"`
}

// CreateInvoiceResponse reports the created invoice and, when the invoice
// was created paid or partially paid, the synthesized companion payment id.
type CreateInvoiceResponse struct {
	Invoice            Invoice `json:"invoice"`
	SyntheticPaymentID string  `json:"synthetic_payment_id,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (CreateInvoiceResponse, error)
	Update(ctx context.Context, id string, req UpdateInvoiceRequest) (Invoice, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Invoice, error)
	Items(ctx context.Context, id string) ([]InvoiceItem, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	ListByCustomer(ctx context.Context, customerID string) ([]CustomerInvoice, error)
	Products(ctx context.Context, query string) ([]Product, error)
}

var (
	ErrInvalidID         = errors.New("invalid_invoice_id")
	ErrInvalidNumber     = errors.New("invalid_invoice_number")
	ErrInvalidDate       = errors.New("invalid_invoice_date")
	ErrInvalidStatus     = errors.New("invalid_invoice_status")
	ErrInvalidCustomer   = errors.New("invalid_customer_reference")
	ErrEmptyItems        = errors.New("empty_invoice_items")
	ErrNegativeUnitPrice = errors.New("negative_unit_price")
	ErrNegativeQuantity  = errors.New("negative_quantity")
	ErrInvoiceNotFound   = errors.New("invoice_not_found")
)
