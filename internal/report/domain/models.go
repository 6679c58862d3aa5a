package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TransactionType tags a report row as an invoice or payment event.
type TransactionType string

const (
	TransactionInvoice TransactionType = "invoice"
	TransactionPayment TransactionType = "payment"
)

// Transaction is a unified, display-only view of an invoice or payment
// event on a customer's timeline.
type Transaction struct {
	RecordID        snowflake.ID    `json:"record_id"`
	TransactionType TransactionType `json:"transaction_type"`
	// Reference is the invoice number; empty for payments.
	Reference     string          `json:"reference,omitempty"`
	CustomerID    snowflake.ID    `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionsReport is a customer's chronological activity in a date
// range with period totals. RemainingTotal is scoped to the queried range;
// it is a different quantity from the customer's all-time outstanding debt
// and the two are deliberately never merged.
type TransactionsReport struct {
	Data           []Transaction   `json:"data"`
	TotalInvoices  decimal.Decimal `json:"total_invoices"`
	TotalPayments  decimal.Decimal `json:"total_payments"`
	RemainingTotal decimal.Decimal `json:"remaining_total"`
}

// ReportSummary is the global dashboard rollup across all customers.
type ReportSummary struct {
	TotalInvoices decimal.Decimal `json:"total_invoices"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	TotalDebts    decimal.Decimal `json:"total_debts"`
	CustomerCount int64           `json:"customer_count"`
}
