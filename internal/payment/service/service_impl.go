package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/haroun39/facteur/internal/clock"
	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	"github.com/haroun39/facteur/internal/observability/metrics"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
	reportdomain "github.com/haroun39/facteur/internal/report/domain"
	"github.com/haroun39/facteur/pkg/db/pagination"
	"github.com/haroun39/facteur/pkg/repository"
)

const dateLayout = "2006-01-02"

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Summary *reportdomain.SummaryCache `optional:"true"`
	Metrics *metrics.BillingMetrics    `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID   *snowflake.Node
	clock   clock.Clock
	summary *reportdomain.SummaryCache
	metrics *metrics.BillingMetrics

	paymentrepo  repository.Repository[paymentdomain.Payment]
	invoicerepo  repository.Repository[invoicedomain.Invoice]
	customerrepo repository.Repository[customerdomain.Customer]
}

func NewService(p ServiceParam) paymentdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("payment.service"),

		genID:   p.GenID,
		clock:   p.Clock,
		summary: p.Summary,
		metrics: p.Metrics,

		paymentrepo:  repository.ProvideStore[paymentdomain.Payment](p.DB),
		invoicerepo:  repository.ProvideStore[invoicedomain.Invoice](p.DB),
		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req paymentdomain.CreatePaymentRequest) (paymentdomain.Payment, error) {
	record, err := s.buildPayment(ctx, req.CustomerID, req.InvoiceID, req.Amount, req.Date, req.Notes)
	if err != nil {
		return paymentdomain.Payment{}, err
	}
	record.ID = s.genID.Generate()
	record.CreatedAt = s.clock.Now()

	if err := s.paymentrepo.Create(ctx, &record); err != nil {
		return paymentdomain.Payment{}, err
	}

	s.summary.Delete(reportdomain.SummaryCacheKey)
	s.metrics.IncPaymentRecorded(ctx, false)
	s.log.Info("payment recorded",
		zap.String("payment_id", record.ID.String()),
		zap.String("customer_id", record.CustomerID.String()),
	)
	return record, nil
}

func (s *Service) Update(ctx context.Context, id string, req paymentdomain.UpdatePaymentRequest) (paymentdomain.Payment, error) {
	paymentID, err := parseID(id)
	if err != nil {
		return paymentdomain.Payment{}, paymentdomain.ErrInvalidID
	}

	existing, err := s.paymentrepo.FindOne(ctx, map[string]any{"id": paymentID})
	if err != nil {
		return paymentdomain.Payment{}, err
	}
	if existing == nil {
		return paymentdomain.Payment{}, paymentdomain.ErrPaymentNotFound
	}

	record, err := s.buildPayment(ctx, req.CustomerID, req.InvoiceID, req.Amount, req.Date, req.Notes)
	if err != nil {
		return paymentdomain.Payment{}, err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt

	values := map[string]any{
		"customer_id": record.CustomerID,
		"invoice_id":  record.InvoiceID,
		"amount":      record.Amount,
		"date":        record.Date,
		"notes":       record.Notes,
	}
	if err := s.paymentrepo.Updates(ctx, map[string]any{"id": paymentID}, values); err != nil {
		return paymentdomain.Payment{}, err
	}

	s.summary.Delete(reportdomain.SummaryCacheKey)
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	paymentID, err := parseID(id)
	if err != nil {
		return paymentdomain.ErrInvalidID
	}

	existing, err := s.paymentrepo.FindOne(ctx, map[string]any{"id": paymentID})
	if err != nil {
		return err
	}
	if existing == nil {
		return paymentdomain.ErrPaymentNotFound
	}

	if err := s.paymentrepo.Delete(ctx, map[string]any{"id": paymentID}); err != nil {
		return err
	}

	s.summary.Delete(reportdomain.SummaryCacheKey)
	return nil
}

func (s *Service) List(ctx context.Context, req paymentdomain.ListPaymentRequest) (paymentdomain.ListPaymentResponse, error) {
	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).
			Table("payments").
			Joins("JOIN customers ON customers.id = payments.customer_id").
			Joins("LEFT JOIN invoices ON invoices.id = payments.invoice_id")
		if query := strings.TrimSpace(req.Query); query != "" {
			like := "%" + query + "%"
			tx = tx.Where(
				"customers.name LIKE ? OR invoices.invoice_number LIKE ? OR payments.date LIKE ?",
				like, like, like,
			)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return paymentdomain.ListPaymentResponse{}, err
	}

	var payments []paymentdomain.PaymentWithRefs
	if err := filtered().
		Select("payments.*, customers.name AS customer_name, invoices.invoice_number AS invoice_number").
		Order("payments.date DESC, payments.created_at DESC").
		Limit(req.Limit()).
		Offset(req.Offset()).
		Scan(&payments).Error; err != nil {
		return paymentdomain.ListPaymentResponse{}, err
	}

	// Summed in Go: decimals are stored as text under sqlite, so SQL SUM
	// cannot be trusted with them.
	var amounts []paymentdomain.Payment
	if err := filtered().Select("payments.amount").Scan(&amounts).Error; err != nil {
		return paymentdomain.ListPaymentResponse{}, err
	}
	sum := decimal.Zero
	for _, row := range amounts {
		sum = sum.Add(row.Amount)
	}

	return paymentdomain.ListPaymentResponse{
		PageInfo:  pagination.NewPageInfo(req.Pagination, total),
		Payments:  payments,
		SumAmount: sum,
	}, nil
}

// buildPayment validates the shared create/update fields and resolves the
// customer and optional invoice references.
func (s *Service) buildPayment(ctx context.Context, customerID, invoiceID string, amount decimal.Decimal, rawDate string, notes *string) (paymentdomain.Payment, error) {
	id, err := parseID(customerID)
	if err != nil {
		return paymentdomain.Payment{}, paymentdomain.ErrInvalidCustomer
	}
	customer, err := s.customerrepo.FindOne(ctx, map[string]any{"id": id})
	if err != nil {
		return paymentdomain.Payment{}, err
	}
	if customer == nil {
		return paymentdomain.Payment{}, customerdomain.ErrCustomerNotFound
	}

	if amount.Sign() <= 0 {
		return paymentdomain.Payment{}, paymentdomain.ErrInvalidAmount
	}

	date, err := parseDate(rawDate)
	if err != nil {
		return paymentdomain.Payment{}, paymentdomain.ErrInvalidDate
	}

	record := paymentdomain.Payment{
		CustomerID: id,
		Amount:     amount,
		Date:       date,
		Notes:      trimNotes(notes),
	}

	if raw := strings.TrimSpace(invoiceID); raw != "" {
		ref, err := parseID(raw)
		if err != nil {
			return paymentdomain.Payment{}, invoicedomain.ErrInvalidID
		}
		invoice, err := s.invoicerepo.FindOne(ctx, map[string]any{"id": ref})
		if err != nil {
			return paymentdomain.Payment{}, err
		}
		if invoice == nil {
			return paymentdomain.Payment{}, invoicedomain.ErrInvoiceNotFound
		}
		record.InvoiceID = &ref
	}
	return record, nil
}

func parseID(raw string) (snowflake.ID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, paymentdomain.ErrInvalidID
	}
	return snowflake.ID(value), nil
}

func parseDate(raw string) (datatypes.Date, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(parsed), nil
}

func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
