package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", raw, err)
	}
	return value
}

func TestComputeTotalsSumsItemTotals(t *testing.T) {
	inv := Invoice{CustomerID: 1}
	items := []InvoiceItem{
		{ProductName: "cement", UnitPrice: dec(t, "12.50"), Quantity: dec(t, "4")},
		{ProductName: "sand", UnitPrice: dec(t, "3.10"), Quantity: dec(t, "2.5")},
	}

	got, gotItems, err := ComputeTotals(inv, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Total.Equal(dec(t, "57.75")) {
		t.Fatalf("expected total 57.75, got %s", got.Total.String())
	}
	if !gotItems[0].Total.Equal(dec(t, "50.00")) {
		t.Fatalf("expected first item total 50.00, got %s", gotItems[0].Total.String())
	}
	if !gotItems[1].Total.Equal(dec(t, "7.75")) {
		t.Fatalf("expected second item total 7.75, got %s", gotItems[1].Total.String())
	}
}

func TestComputeTotalsDiscardsCallerTotal(t *testing.T) {
	inv := Invoice{CustomerID: 1, Total: dec(t, "9999")}
	items := []InvoiceItem{
		{ProductName: "brick", UnitPrice: dec(t, "1"), Quantity: dec(t, "10"), Total: dec(t, "123.45")},
	}

	got, gotItems, err := ComputeTotals(inv, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Total.Equal(dec(t, "10")) {
		t.Fatalf("expected total 10, got %s", got.Total.String())
	}
	if !gotItems[0].Total.Equal(dec(t, "10")) {
		t.Fatalf("expected item total 10, got %s", gotItems[0].Total.String())
	}
}

func TestComputeTotalsRoundsWithoutFloatDrift(t *testing.T) {
	inv := Invoice{CustomerID: 1}
	items := []InvoiceItem{
		{ProductName: "wire", UnitPrice: dec(t, "0.1"), Quantity: dec(t, "3")},
	}

	_, gotItems, err := ComputeTotals(inv, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotItems[0].Total.String() != "0.3" {
		t.Fatalf("expected 0.3, got %s", gotItems[0].Total.String())
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	inv := Invoice{CustomerID: 7}
	items := []InvoiceItem{
		{ProductName: "paint", UnitPrice: dec(t, "33.335"), Quantity: dec(t, "1.5")},
		{ProductName: "brush", UnitPrice: dec(t, "4.99"), Quantity: dec(t, "2")},
	}

	first, firstItems, err := ComputeTotals(inv, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, secondItems, err := ComputeTotals(first, firstItems)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Total.Equal(second.Total) {
		t.Fatalf("totals differ: %s vs %s", first.Total.String(), second.Total.String())
	}
	for i := range firstItems {
		if !firstItems[i].Total.Equal(secondItems[i].Total) {
			t.Fatalf("item %d totals differ: %s vs %s", i, firstItems[i].Total.String(), secondItems[i].Total.String())
		}
	}
}

func TestComputeTotalsValidation(t *testing.T) {
	cases := []struct {
		name  string
		inv   Invoice
		items []InvoiceItem
		want  error
	}{
		{
			name: "missing customer",
			inv:  Invoice{},
			items: []InvoiceItem{
				{UnitPrice: dec(t, "1"), Quantity: dec(t, "1")},
			},
			want: ErrInvalidCustomer,
		},
		{
			name:  "empty items",
			inv:   Invoice{CustomerID: 1},
			items: nil,
			want:  ErrEmptyItems,
		},
		{
			name: "negative unit price",
			inv:  Invoice{CustomerID: 1},
			items: []InvoiceItem{
				{UnitPrice: dec(t, "-1"), Quantity: dec(t, "1")},
			},
			want: ErrNegativeUnitPrice,
		},
		{
			name: "negative quantity",
			inv:  Invoice{CustomerID: 1},
			items: []InvoiceItem{
				{UnitPrice: dec(t, "1"), Quantity: dec(t, "-0.5")},
			},
			want: ErrNegativeQuantity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ComputeTotals(tc.inv, tc.items)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDeriveStatusPaidClampsToTotal(t *testing.T) {
	inv := DeriveStatus(Invoice{Total: dec(t, "100"), Status: StatusPaid, PaidAmount: dec(t, "10")})
	if inv.Status != StatusPaid {
		t.Fatalf("expected paid, got %s", inv.Status)
	}
	if !inv.PaidAmount.Equal(dec(t, "100")) {
		t.Fatalf("expected paid_amount 100, got %s", inv.PaidAmount.String())
	}
}

func TestDeriveStatusUnpaidZeroesPaidAmount(t *testing.T) {
	inv := DeriveStatus(Invoice{Total: dec(t, "100"), Status: StatusUnpaid, PaidAmount: dec(t, "50")})
	if inv.Status != StatusUnpaid {
		t.Fatalf("expected unpaid, got %s", inv.Status)
	}
	if inv.PaidAmount.Sign() != 0 {
		t.Fatalf("expected paid_amount 0, got %s", inv.PaidAmount.String())
	}
}

func TestDeriveStatusPartialClamping(t *testing.T) {
	inv := DeriveStatus(Invoice{Total: dec(t, "100"), Status: StatusPartial, PaidAmount: dec(t, "150")})
	if inv.Status != StatusPaid {
		t.Fatalf("expected overpaid partial to become paid, got %s", inv.Status)
	}
	if !inv.PaidAmount.Equal(dec(t, "100")) {
		t.Fatalf("expected paid_amount 100, got %s", inv.PaidAmount.String())
	}

	inv = DeriveStatus(Invoice{Total: dec(t, "100"), Status: StatusPartial, PaidAmount: dec(t, "-5")})
	if inv.Status != StatusUnpaid {
		t.Fatalf("expected negative partial to become unpaid, got %s", inv.Status)
	}
	if inv.PaidAmount.Sign() != 0 {
		t.Fatalf("expected paid_amount 0, got %s", inv.PaidAmount.String())
	}

	inv = DeriveStatus(Invoice{Total: dec(t, "100"), Status: StatusPartial, PaidAmount: dec(t, "40")})
	if inv.Status != StatusPartial {
		t.Fatalf("expected partial, got %s", inv.Status)
	}
	if !inv.PaidAmount.Equal(dec(t, "40")) {
		t.Fatalf("expected paid_amount 40, got %s", inv.PaidAmount.String())
	}
}

func TestSyntheticPaymentAmount(t *testing.T) {
	amount, ok := SyntheticPaymentAmount(Invoice{Total: dec(t, "80"), Status: StatusPaid, PaidAmount: dec(t, "80")})
	if !ok || !amount.Equal(dec(t, "80")) {
		t.Fatalf("expected synthesized payment of 80, got %s ok=%v", amount.String(), ok)
	}

	amount, ok = SyntheticPaymentAmount(Invoice{Total: dec(t, "80"), Status: StatusPartial, PaidAmount: dec(t, "30")})
	if !ok || !amount.Equal(dec(t, "30")) {
		t.Fatalf("expected synthesized payment of 30, got %s ok=%v", amount.String(), ok)
	}

	if _, ok = SyntheticPaymentAmount(Invoice{Total: dec(t, "80"), Status: StatusUnpaid}); ok {
		t.Fatalf("expected no synthesized payment for unpaid invoice")
	}
}
