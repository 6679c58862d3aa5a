package domain

import (
	"context"
	"errors"

	"github.com/haroun39/facteur/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Notes   *string `json:"notes,omitempty"`
}

// UpdateCustomerRequest carries a partial update; nil fields are untouched.
type UpdateCustomerRequest struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type ListCustomerRequest struct {
	pagination.Pagination
	// Query matches against name, phone, address and notes.
	Query string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
}

var (
	ErrInvalidID        = errors.New("invalid_customer_id")
	ErrInvalidName      = errors.New("invalid_customer_name")
	ErrCustomerNotFound = errors.New("customer_not_found")
)
