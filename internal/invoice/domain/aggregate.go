package domain

import (
	"github.com/shopspring/decimal"

	"github.com/haroun39/facteur/pkg/money"
)

// ComputeTotals validates an invoice against its items and derives the
// invoice total. Every item total is recomputed as unit_price × quantity
// rounded to two decimal places, and the invoice total is the exact sum of
// the item totals; caller-supplied totals are discarded. The computation is
// pure and idempotent.
func ComputeTotals(inv Invoice, items []InvoiceItem) (Invoice, []InvoiceItem, error) {
	if inv.CustomerID == 0 {
		return Invoice{}, nil, ErrInvalidCustomer
	}
	if len(items) == 0 {
		return Invoice{}, nil, ErrEmptyItems
	}

	computed := make([]InvoiceItem, len(items))
	total := decimal.Zero
	for i, item := range items {
		if money.IsNegative(item.UnitPrice) {
			return Invoice{}, nil, ErrNegativeUnitPrice
		}
		if money.IsNegative(item.Quantity) {
			return Invoice{}, nil, ErrNegativeQuantity
		}
		item.Total = money.LineTotal(item.UnitPrice, item.Quantity)
		computed[i] = item
		total = total.Add(item.Total)
	}

	inv.Total = total
	return inv, computed, nil
}

// DeriveStatus reconciles status and paid amount at invoice creation time.
// A paid invoice carries paid_amount == total, an unpaid one carries zero,
// and a partial one keeps the entered amount clamped to [0, total]. A
// clamped amount that lands on a boundary moves the status with it. Edits
// never pass through here: after creation, status and paid_amount are
// stored as given.
func DeriveStatus(inv Invoice) Invoice {
	switch inv.Status {
	case StatusPaid:
		inv.PaidAmount = inv.Total
		return inv
	case StatusUnpaid:
		inv.PaidAmount = decimal.Zero
		return inv
	}

	paid := money.Clamp(inv.PaidAmount, decimal.Zero, inv.Total)
	switch {
	case paid.GreaterThanOrEqual(inv.Total) && inv.Total.Sign() > 0:
		inv.Status = StatusPaid
		inv.PaidAmount = inv.Total
	case paid.Sign() <= 0:
		inv.Status = StatusUnpaid
		inv.PaidAmount = decimal.Zero
	default:
		inv.Status = StatusPartial
		inv.PaidAmount = paid
	}
	return inv
}

// SyntheticPaymentAmount returns the amount of the companion payment to
// record when an invoice is created already paid or partially paid, so the
// customer's aggregate debt stays consistent without a second caller
// round trip. The second return is false when no payment should be
// synthesized.
func SyntheticPaymentAmount(inv Invoice) (decimal.Decimal, bool) {
	switch inv.Status {
	case StatusPaid:
		return inv.Total, true
	case StatusPartial:
		if inv.PaidAmount.Sign() > 0 {
			return inv.PaidAmount, true
		}
	}
	return decimal.Zero, false
}
