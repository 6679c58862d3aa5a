package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
)

// BuildTransactions merges a customer's invoices and payments falling in
// [from, to] into one chronological sequence with period totals. A nil to
// leaves the range unbounded forward. Equal dates order invoices before
// payments; the merge is stable so identical input always produces
// identical output, which printed reports rely on.
func BuildTransactions(
	customer customerdomain.Customer,
	invoices []invoicedomain.Invoice,
	payments []paymentdomain.Payment,
	from time.Time,
	to *time.Time,
) TransactionsReport {
	invoiceRows := make([]Transaction, 0, len(invoices))
	totalInvoices := decimal.Zero
	for _, inv := range invoices {
		date := time.Time(inv.Date)
		if !inRange(date, from, to) {
			continue
		}
		invoiceRows = append(invoiceRows, Transaction{
			RecordID:        inv.ID,
			TransactionType: TransactionInvoice,
			Reference:       inv.InvoiceNumber,
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			CustomerPhone:   customer.Phone,
			Date:            date,
			Amount:          inv.Total,
			CreatedAt:       inv.CreatedAt,
		})
		totalInvoices = totalInvoices.Add(inv.Total)
	}

	paymentRows := make([]Transaction, 0, len(payments))
	totalPayments := decimal.Zero
	for _, payment := range payments {
		date := time.Time(payment.Date)
		if !inRange(date, from, to) {
			continue
		}
		paymentRows = append(paymentRows, Transaction{
			RecordID:        payment.ID,
			TransactionType: TransactionPayment,
			CustomerID:      customer.ID,
			CustomerName:    customer.Name,
			CustomerPhone:   customer.Phone,
			Date:            date,
			Amount:          payment.Amount,
			CreatedAt:       payment.CreatedAt,
		})
		totalPayments = totalPayments.Add(payment.Amount)
	}

	sort.SliceStable(invoiceRows, func(i, j int) bool {
		return invoiceRows[i].Date.Before(invoiceRows[j].Date)
	})
	sort.SliceStable(paymentRows, func(i, j int) bool {
		return paymentRows[i].Date.Before(paymentRows[j].Date)
	})

	merged := make([]Transaction, 0, len(invoiceRows)+len(paymentRows))
	i, j := 0, 0
	for i < len(invoiceRows) && j < len(paymentRows) {
		// Invoices win date ties.
		if !paymentRows[j].Date.Before(invoiceRows[i].Date) {
			merged = append(merged, invoiceRows[i])
			i++
			continue
		}
		merged = append(merged, paymentRows[j])
		j++
	}
	merged = append(merged, invoiceRows[i:]...)
	merged = append(merged, paymentRows[j:]...)

	return TransactionsReport{
		Data:           merged,
		TotalInvoices:  totalInvoices,
		TotalPayments:  totalPayments,
		RemainingTotal: totalInvoices.Sub(totalPayments),
	}
}

// BuildSummary computes the global dashboard rollup. Empty data yields an
// all-zero summary, never an error.
func BuildSummary(totalInvoices, totalPayments decimal.Decimal, customerCount int64) ReportSummary {
	return ReportSummary{
		TotalInvoices: totalInvoices,
		TotalPayments: totalPayments,
		TotalDebts:    totalInvoices.Sub(totalPayments),
		CustomerCount: customerCount,
	}
}

func inRange(date, from time.Time, to *time.Time) bool {
	if date.Before(from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}
