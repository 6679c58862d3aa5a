package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidCustomer  = errors.New("invalid_customer_id")
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrCustomerNotFound = errors.New("customer_not_found")
)

type TransactionsRequest struct {
	CustomerID string `form:"customer_id" binding:"required"`
	From       string `form:"from" binding:"required"`
	To         string `form:"to"`
}

// Service exposes the reporting read models.
type Service interface {
	Transactions(ctx context.Context, req TransactionsRequest) (*TransactionsReport, error)
	Summary(ctx context.Context) (*ReportSummary, error)
}
