package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	customerservice "github.com/haroun39/facteur/internal/customer/service"
	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	"github.com/haroun39/facteur/internal/observability/metrics"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
	reportdomain "github.com/haroun39/facteur/internal/report/domain"
	"github.com/haroun39/facteur/pkg/repository"
)

const (
	dateLayout = "2006-01-02"

	// summaryTTL bounds staleness of the dashboard summary against writes
	// that bypass the services; service writes invalidate the key directly.
	summaryTTL = 30 * time.Second
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Summary *reportdomain.SummaryCache `optional:"true"`
	Metrics *metrics.BillingMetrics    `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	metrics *metrics.BillingMetrics
	summary *reportdomain.SummaryCache

	customerrepo repository.Repository[customerdomain.Customer]
	invoicerepo  repository.Repository[invoicedomain.Invoice]
	paymentrepo  repository.Repository[paymentdomain.Payment]
}

func NewService(p ServiceParam) reportdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("report.service"),

		metrics: p.Metrics,
		summary: p.Summary,

		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
		invoicerepo:  repository.ProvideStore[invoicedomain.Invoice](p.DB),
		paymentrepo:  repository.ProvideStore[paymentdomain.Payment](p.DB),
	}
}

func (s *Service) Transactions(ctx context.Context, req reportdomain.TransactionsRequest) (*reportdomain.TransactionsReport, error) {
	customerID, err := customerservice.ParseID(req.CustomerID)
	if err != nil {
		return nil, reportdomain.ErrInvalidCustomer
	}
	customer, err := s.customerrepo.FindOne(ctx, map[string]any{"id": customerID})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, reportdomain.ErrCustomerNotFound
	}

	from, err := time.Parse(dateLayout, strings.TrimSpace(req.From))
	if err != nil {
		return nil, reportdomain.ErrInvalidDateRange
	}
	// An inverted range is not an error; it simply matches nothing and
	// yields an empty report.
	var to *time.Time
	if raw := strings.TrimSpace(req.To); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, reportdomain.ErrInvalidDateRange
		}
		to = &parsed
	}

	invoices, err := s.invoicerepo.Find(ctx, map[string]any{"customer_id": customerID})
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentrepo.Find(ctx, map[string]any{"customer_id": customerID})
	if err != nil {
		return nil, err
	}

	report := reportdomain.BuildTransactions(*customer, invoices, payments, from, to)

	s.metrics.IncReportBuilt(ctx, "transactions")
	return &report, nil
}

func (s *Service) Summary(ctx context.Context) (*reportdomain.ReportSummary, error) {
	if cached, ok := s.summary.Get(reportdomain.SummaryCacheKey); ok {
		return &cached, nil
	}

	customerCount, err := s.customerrepo.Count(ctx, map[string]any{})
	if err != nil {
		return nil, err
	}

	var invoices []invoicedomain.Invoice
	if err := s.db.WithContext(ctx).Select("total").Find(&invoices).Error; err != nil {
		return nil, err
	}
	var payments []paymentdomain.Payment
	if err := s.db.WithContext(ctx).Select("amount").Find(&payments).Error; err != nil {
		return nil, err
	}

	totalInvoices := decimal.Zero
	for _, inv := range invoices {
		totalInvoices = totalInvoices.Add(inv.Total)
	}
	totalPayments := decimal.Zero
	for _, payment := range payments {
		totalPayments = totalPayments.Add(payment.Amount)
	}

	built := reportdomain.BuildSummary(totalInvoices, totalPayments, customerCount)
	s.summary.Set(reportdomain.SummaryCacheKey, built, summaryTTL)

	s.metrics.IncReportBuilt(ctx, "summary")
	return &built, nil
}
