package metrics

import (
	"context"

	"github.com/haroun39/facteur/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BillingMetrics counts ledger-affecting events.
type BillingMetrics struct {
	invoicesCreated  metric.Int64Counter
	paymentsRecorded metric.Int64Counter
	reportsBuilt     metric.Int64Counter
}

// NewBillingMetrics creates billing metrics instruments.
func NewBillingMetrics(cfg config.Config, provider metric.MeterProvider) (*BillingMetrics, error) {
	meter := provider.Meter(MeterName(cfg, "billing"))

	invoicesCreated, err := meter.Int64Counter("billing.invoices.created")
	if err != nil {
		return nil, err
	}
	paymentsRecorded, err := meter.Int64Counter("billing.payments.recorded")
	if err != nil {
		return nil, err
	}
	reportsBuilt, err := meter.Int64Counter("billing.reports.built")
	if err != nil {
		return nil, err
	}

	return &BillingMetrics{
		invoicesCreated:  invoicesCreated,
		paymentsRecorded: paymentsRecorded,
		reportsBuilt:     reportsBuilt,
	}, nil
}

// IncInvoiceCreated counts a created invoice by payment status.
func (m *BillingMetrics) IncInvoiceCreated(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.invoicesCreated.Add(ctx, 1, metric.WithAttributes(
		FilterAttributes(attribute.String("status", status))...,
	))
}

// IncPaymentRecorded counts a recorded payment. Synthesized payments
// (created alongside an already-paid invoice) are tagged separately.
func (m *BillingMetrics) IncPaymentRecorded(ctx context.Context, synthesized bool) {
	if m == nil {
		return
	}
	m.paymentsRecorded.Add(ctx, 1, metric.WithAttributes(
		FilterAttributes(attribute.Bool("synthesized", synthesized))...,
	))
}

// IncReportBuilt counts a built report by kind.
func (m *BillingMetrics) IncReportBuilt(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.reportsBuilt.Add(ctx, 1, metric.WithAttributes(
		FilterAttributes(attribute.String("kind", kind))...,
	))
}
