package domain

import (
	"testing"

	"github.com/shopspring/decimal"

	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
)

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", raw, err)
	}
	return value
}

func TestOutstanding(t *testing.T) {
	invoices := []invoicedomain.Invoice{
		{Total: dec(t, "100.50")},
		{Total: dec(t, "49.50")},
	}
	payments := []paymentdomain.Payment{
		{Amount: dec(t, "30")},
		{Amount: dec(t, "20")},
	}

	got := Outstanding(invoices, payments)
	if !got.Equal(dec(t, "100.00")) {
		t.Fatalf("expected 100.00, got %s", got.String())
	}
}

func TestOutstandingCanBeNegative(t *testing.T) {
	invoices := []invoicedomain.Invoice{{Total: dec(t, "50")}}
	payments := []paymentdomain.Payment{{Amount: dec(t, "80")}}

	got := Outstanding(invoices, payments)
	if !got.Equal(dec(t, "-30")) {
		t.Fatalf("expected -30, got %s", got.String())
	}
}

func TestOutstandingEmptyHistoryIsZero(t *testing.T) {
	got := Outstanding(nil, nil)
	if got.Sign() != 0 {
		t.Fatalf("expected 0, got %s", got.String())
	}
}
