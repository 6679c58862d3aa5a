// Package money provides exact decimal arithmetic for currency amounts.
// Amounts are carried unrounded through intermediate computation and only
// rounded to two decimal places at display boundaries.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to two decimal places, half away from zero.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// LineTotal computes unit_price multiplied by quantity, rounded to two
// decimal places.
func LineTotal(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return Round2(unitPrice.Mul(quantity))
}

// Sum adds a list of amounts exactly.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}

// Clamp constrains an amount to the inclusive range [min, max].
func Clamp(amount, min, max decimal.Decimal) decimal.Decimal {
	if amount.LessThan(min) {
		return min
	}
	if amount.GreaterThan(max) {
		return max
	}
	return amount
}

// IsNegative reports whether the amount is strictly below zero.
func IsNegative(amount decimal.Decimal) bool {
	return amount.Sign() < 0
}
