package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
)

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", raw, err)
	}
	return d
}

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return d
}

func TestBuildTransactionsOrdersInvoicesBeforePaymentsOnSameDate(t *testing.T) {
	customer := customerdomain.Customer{ID: 1, Name: "Karim", Phone: "0550"}
	invoices := []invoicedomain.Invoice{
		{ID: 10, InvoiceNumber: "INV-10", Date: datatypes.Date(day(t, "2024-01-05")), Total: dec(t, "100")},
	}
	payments := []paymentdomain.Payment{
		{ID: 20, Amount: dec(t, "40"), Date: datatypes.Date(day(t, "2024-01-05"))},
	}

	to := day(t, "2024-01-31")
	report := BuildTransactions(customer, invoices, payments, day(t, "2024-01-01"), &to)

	if len(report.Data) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(report.Data))
	}
	if report.Data[0].TransactionType != TransactionInvoice {
		t.Errorf("expected invoice first on equal dates, got %s", report.Data[0].TransactionType)
	}
	if report.Data[0].Reference != "INV-10" {
		t.Errorf("expected invoice reference INV-10, got %q", report.Data[0].Reference)
	}
	if report.Data[1].TransactionType != TransactionPayment {
		t.Errorf("expected payment second, got %s", report.Data[1].TransactionType)
	}
	if report.Data[1].Reference != "" {
		t.Errorf("payments carry no reference, got %q", report.Data[1].Reference)
	}
	if !report.TotalInvoices.Equal(dec(t, "100")) {
		t.Errorf("total_invoices = %s, want 100", report.TotalInvoices)
	}
	if !report.TotalPayments.Equal(dec(t, "40")) {
		t.Errorf("total_payments = %s, want 40", report.TotalPayments)
	}
	if !report.RemainingTotal.Equal(dec(t, "60")) {
		t.Errorf("remaining_total = %s, want 60", report.RemainingTotal)
	}
}

func TestBuildTransactionsSortsAcrossDates(t *testing.T) {
	customer := customerdomain.Customer{ID: 1, Name: "Karim"}
	invoices := []invoicedomain.Invoice{
		{ID: 12, InvoiceNumber: "INV-12", Date: datatypes.Date(day(t, "2024-02-10")), Total: dec(t, "50")},
		{ID: 11, InvoiceNumber: "INV-11", Date: datatypes.Date(day(t, "2024-02-01")), Total: dec(t, "30")},
	}
	payments := []paymentdomain.Payment{
		{ID: 21, Amount: dec(t, "30"), Date: datatypes.Date(day(t, "2024-02-05"))},
	}

	report := BuildTransactions(customer, invoices, payments, day(t, "2024-02-01"), nil)

	want := []string{"INV-11", "", "INV-12"}
	if len(report.Data) != len(want) {
		t.Fatalf("expected %d transactions, got %d", len(want), len(report.Data))
	}
	for i, ref := range want {
		if report.Data[i].Reference != ref {
			t.Errorf("data[%d].reference = %q, want %q", i, report.Data[i].Reference, ref)
		}
	}
	if !report.RemainingTotal.Equal(dec(t, "50")) {
		t.Errorf("remaining_total = %s, want 50", report.RemainingTotal)
	}
}

func TestBuildTransactionsEmptyRange(t *testing.T) {
	customer := customerdomain.Customer{ID: 1, Name: "Karim"}
	invoices := []invoicedomain.Invoice{
		{ID: 10, InvoiceNumber: "INV-10", Date: datatypes.Date(day(t, "2024-01-05")), Total: dec(t, "100")},
	}
	payments := []paymentdomain.Payment{
		{ID: 20, Amount: dec(t, "40"), Date: datatypes.Date(day(t, "2024-01-05"))},
	}

	to := day(t, "2023-12-31")
	report := BuildTransactions(customer, invoices, payments, day(t, "2023-12-01"), &to)

	if len(report.Data) != 0 {
		t.Fatalf("expected no transactions, got %d", len(report.Data))
	}
	if !report.TotalInvoices.IsZero() || !report.TotalPayments.IsZero() || !report.RemainingTotal.IsZero() {
		t.Errorf("expected zero totals, got invoices=%s payments=%s remaining=%s",
			report.TotalInvoices, report.TotalPayments, report.RemainingTotal)
	}
}

func TestBuildTransactionsBoundsInclusive(t *testing.T) {
	customer := customerdomain.Customer{ID: 1, Name: "Karim"}
	invoices := []invoicedomain.Invoice{
		{ID: 1, InvoiceNumber: "A", Date: datatypes.Date(day(t, "2024-03-01")), Total: dec(t, "10")},
		{ID: 2, InvoiceNumber: "B", Date: datatypes.Date(day(t, "2024-03-31")), Total: dec(t, "20")},
		{ID: 3, InvoiceNumber: "C", Date: datatypes.Date(day(t, "2024-04-01")), Total: dec(t, "40")},
	}

	to := day(t, "2024-03-31")
	report := BuildTransactions(customer, invoices, nil, day(t, "2024-03-01"), &to)

	if len(report.Data) != 2 {
		t.Fatalf("expected 2 transactions inside [from, to], got %d", len(report.Data))
	}
	if !report.TotalInvoices.Equal(dec(t, "30")) {
		t.Errorf("total_invoices = %s, want 30", report.TotalInvoices)
	}
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(dec(t, "250.50"), dec(t, "100"), 3)

	if !summary.TotalDebts.Equal(dec(t, "150.50")) {
		t.Errorf("total_debts = %s, want 150.50", summary.TotalDebts)
	}
	if summary.CustomerCount != 3 {
		t.Errorf("customer_count = %d, want 3", summary.CustomerCount)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary := BuildSummary(decimal.Zero, decimal.Zero, 0)

	if !summary.TotalInvoices.IsZero() || !summary.TotalPayments.IsZero() || !summary.TotalDebts.IsZero() {
		t.Errorf("expected all-zero summary, got %+v", summary)
	}
	if summary.CustomerCount != 0 {
		t.Errorf("customer_count = %d, want 0", summary.CustomerCount)
	}
}
