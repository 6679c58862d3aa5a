package domain

import (
	"github.com/shopspring/decimal"

	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
	"github.com/haroun39/facteur/pkg/money"
)

// Outstanding computes a customer's all-time debt from the full invoice and
// payment history. The result may be zero or negative (overpayment); it is
// never clamped here.
func Outstanding(invoices []invoicedomain.Invoice, payments []paymentdomain.Payment) decimal.Decimal {
	totals := make([]decimal.Decimal, len(invoices))
	for i, inv := range invoices {
		totals[i] = inv.Total
	}
	amounts := make([]decimal.Decimal, len(payments))
	for i, payment := range payments {
		amounts[i] = payment.Amount
	}
	return money.Sum(totals...).Sub(money.Sum(amounts...))
}
