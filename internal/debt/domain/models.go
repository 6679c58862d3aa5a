package domain

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// CustomerDebt is a customer's all-time financial position: everything
// invoiced minus everything paid, regardless of which invoice a payment
// referenced.
type CustomerDebt struct {
	ID            snowflake.ID    `json:"id"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	TotalInvoices decimal.Decimal `json:"total_invoices"`
	TotalPayments decimal.Decimal `json:"total_payments"`
	TotalDebt     decimal.Decimal `json:"total_debt"`
}
