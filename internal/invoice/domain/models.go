package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceStatus is the payment state recorded on an invoice.
type InvoiceStatus string

const (
	StatusUnpaid  InvoiceStatus = "unpaid"
	StatusPartial InvoiceStatus = "partial"
	StatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether the status is one of the known values.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusUnpaid, StatusPartial, StatusPaid:
		return true
	default:
		return false
	}
}

// Invoice is a bill issued to a customer. Total is always derived from the
// invoice's items, never taken from the caller.
type Invoice struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"type:text;not null;uniqueIndex" json:"invoice_number"`
	CustomerID    snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	Date          datatypes.Date  `gorm:"not null;index" json:"date"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`
	Status        InvoiceStatus   `gorm:"type:text;not null;default:'unpaid'" json:"status"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"paid_amount"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is a single line on an invoice. Items are owned by their
// invoice and replaced wholesale when the invoice is edited.
type InvoiceItem struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID   snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	ProductName string          `gorm:"type:text;not null;index" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"quantity"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// InvoiceWithCustomer is the invoice list row joined with customer identity.
// RemainingAmount is a display convenience; the authoritative balance comes
// from the payment history.
type InvoiceWithCustomer struct {
	Invoice
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// CustomerInvoice is an invoice row for the per-customer view, with the
// paid amount recomputed from the payments linked to the invoice.
type CustomerInvoice struct {
	Invoice
	PaidFromPayments decimal.Decimal `json:"paid_from_payments"`
	RemainingAmount  decimal.Decimal `json:"remaining_amount"`
}

// Product is a distinct product name observed across invoice items, used
// for item-entry autocomplete.
type Product struct {
	ID   snowflake.ID `json:"id"`
	Name string       `json:"name"`
}
