package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Payment is money received from a customer. A payment may reference the
// invoice it was taken against, but it always counts toward the customer's
// aggregate balance rather than being allocated per invoice.
type Payment struct {
	ID         snowflake.ID    `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID    `gorm:"not null;index" json:"customer_id"`
	InvoiceID  *snowflake.ID   `gorm:"index" json:"invoice_id,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Date       datatypes.Date  `gorm:"not null;index" json:"date"`
	Notes      *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }

// PaymentWithRefs is the payment list row joined with customer and invoice
// identity for display.
type PaymentWithRefs struct {
	Payment
	CustomerName  string `json:"customer_name"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
}
