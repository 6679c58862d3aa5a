package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type ListDebtsRequest struct {
	// IncludeZero keeps customers whose debt is exactly zero. The
	// payment-entry search sets it false; negative debts (overpayment)
	// are always listed.
	IncludeZero bool
	// Query matches customer name, phone, or notes.
	Query string
}

type ListDebtsResponse struct {
	Debts []CustomerDebt `json:"debts"`
}

type Service interface {
	ListDebts(ctx context.Context, req ListDebtsRequest) (ListDebtsResponse, error)
	// CustomerDebt returns the all-time outstanding balance for one
	// customer, computed over the full invoice and payment history.
	CustomerDebt(ctx context.Context, customerID string) (decimal.Decimal, error)
}
