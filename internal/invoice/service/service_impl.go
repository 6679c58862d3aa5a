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

	invoicerepo  repository.Repository[invoicedomain.Invoice]
	itemrepo     repository.Repository[invoicedomain.InvoiceItem]
	customerrepo repository.Repository[customerdomain.Customer]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("invoice.service"),

		genID:   p.GenID,
		clock:   p.Clock,
		summary: p.Summary,
		metrics: p.Metrics,

		invoicerepo:  repository.ProvideStore[invoicedomain.Invoice](p.DB),
		itemrepo:     repository.ProvideStore[invoicedomain.InvoiceItem](p.DB),
		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.CreateInvoiceResponse, error) {
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return invoicedomain.CreateInvoiceResponse{}, invoicedomain.ErrInvalidNumber
	}

	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return invoicedomain.CreateInvoiceResponse{}, invoicedomain.ErrInvalidCustomer
	}
	customer, err := s.customerrepo.FindOne(ctx, map[string]any{"id": customerID})
	if err != nil {
		return invoicedomain.CreateInvoiceResponse{}, err
	}
	if customer == nil {
		return invoicedomain.CreateInvoiceResponse{}, customerdomain.ErrCustomerNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return invoicedomain.CreateInvoiceResponse{}, invoicedomain.ErrInvalidDate
	}

	status := req.Status
	if status == "" {
		status = invoicedomain.StatusUnpaid
	}
	if !status.Valid() {
		return invoicedomain.CreateInvoiceResponse{}, invoicedomain.ErrInvalidStatus
	}

	invoice := invoicedomain.Invoice{
		ID:            s.genID.Generate(),
		InvoiceNumber: number,
		CustomerID:    customerID,
		Date:          date,
		Status:        status,
		PaidAmount:    req.PaidAmount,
		CreatedAt:     s.clock.Now(),
	}

	invoice, items, err := invoicedomain.ComputeTotals(invoice, toItems(invoice.ID, req.Items))
	if err != nil {
		return invoicedomain.CreateInvoiceResponse{}, err
	}
	invoice = invoicedomain.DeriveStatus(invoice)
	for i := range items {
		items[i].ID = s.genID.Generate()
	}

	var synthetic *paymentdomain.Payment
	if amount, ok := invoicedomain.SyntheticPaymentAmount(invoice); ok {
		invoiceID := invoice.ID
		notes := "recorded with invoice " + invoice.InvoiceNumber
		synthetic = &paymentdomain.Payment{
			ID:         s.genID.Generate(),
			CustomerID: invoice.CustomerID,
			InvoiceID:  &invoiceID,
			Amount:     amount,
			Date:       invoice.Date,
			Notes:      &notes,
			CreatedAt:  s.clock.Now(),
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.invoicerepo.CreateTx(ctx, tx, &invoice); err != nil {
			return err
		}
		for i := range items {
			if err := s.itemrepo.CreateTx(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		if synthetic != nil {
			if err := tx.Create(synthetic).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return invoicedomain.CreateInvoiceResponse{}, err
	}

	s.summary.Delete(reportdomain.SummaryCacheKey)
	s.metrics.IncInvoiceCreated(ctx, string(invoice.Status))
	if synthetic != nil {
		s.metrics.IncPaymentRecorded(ctx, true)
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("status", string(invoice.Status)),
		zap.Bool("payment_synthesized", synthetic != nil),
	)

	resp := invoicedomain.CreateInvoiceResponse{Invoice: invoice}
	if synthetic != nil {
		resp.SyntheticPaymentID = synthetic.ID.String()
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, id string, req invoicedomain.UpdateInvoiceRequest) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}

	existing, err := s.invoicerepo.FindOne(ctx, map[string]any{"id": invoiceID})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if existing == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}

	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidNumber
	}

	customerID, err := parseID(req.CustomerID)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidCustomer
	}
	customer, err := s.customerrepo.FindOne(ctx, map[string]any{"id": customerID})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if customer == nil {
		return invoicedomain.Invoice{}, customerdomain.ErrCustomerNotFound
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidDate
	}
	if !req.Status.Valid() {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidStatus
	}

	updated := *existing
	updated.InvoiceNumber = number
	updated.CustomerID = customerID
	updated.Date = date
	// Status and paid amount are stored as entered; reconciliation only
	// runs at creation time.
	updated.Status = req.Status
	updated.PaidAmount = req.PaidAmount

	updated, items, err := invoicedomain.ComputeTotals(updated, toItems(updated.ID, req.Items))
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	for i := range items {
		items[i].ID = s.genID.Generate()
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&invoicedomain.Invoice{}).
			Where("id = ?", invoiceID).
			Updates(map[string]any{
				"invoice_number": updated.InvoiceNumber,
				"customer_id":    updated.CustomerID,
				"date":           updated.Date,
				"total":          updated.Total,
				"status":         updated.Status,
				"paid_amount":    updated.PaidAmount,
			}).Error; err != nil {
			return err
		}
		if err := s.itemrepo.DeleteTx(ctx, tx, map[string]any{"invoice_id": invoiceID}); err != nil {
			return err
		}
		for i := range items {
			if err := s.itemrepo.CreateTx(ctx, tx, &items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	s.summary.Delete(reportdomain.SummaryCacheKey)
	s.log.Info("invoice updated", zap.String("invoice_id", updated.ID.String()))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.ErrInvalidID
	}

	existing, err := s.invoicerepo.FindOne(ctx, map[string]any{"id": invoiceID})
	if err != nil {
		return err
	}
	if existing == nil {
		return invoicedomain.ErrInvoiceNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Payments keep their amounts toward the customer balance; only
		// the invoice reference is cleared.
		if err := tx.Model(&paymentdomain.Payment{}).
			Where("invoice_id = ?", invoiceID).
			Update("invoice_id", nil).Error; err != nil {
			return err
		}
		if err := s.itemrepo.DeleteTx(ctx, tx, map[string]any{"invoice_id": invoiceID}); err != nil {
			return err
		}
		return s.invoicerepo.DeleteTx(ctx, tx, map[string]any{"id": invoiceID})
	})
	if err != nil {
		return err
	}

	s.summary.Delete(reportdomain.SummaryCacheKey)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}

	record, err := s.invoicerepo.FindOne(ctx, map[string]any{"id": invoiceID})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if record == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}
	return *record, nil
}

func (s *Service) Items(ctx context.Context, id string) ([]invoicedomain.InvoiceItem, error) {
	invoiceID, err := parseID(id)
	if err != nil {
		return nil, invoicedomain.ErrInvalidID
	}

	existing, err := s.invoicerepo.FindOne(ctx, map[string]any{"id": invoiceID})
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, invoicedomain.ErrInvoiceNotFound
	}

	return s.itemrepo.Find(ctx, map[string]any{"invoice_id": invoiceID}, repository.WithOrder("id ASC"))
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).
			Table("invoices").
			Joins("JOIN customers ON customers.id = invoices.customer_id")
		if query := strings.TrimSpace(req.Query); query != "" {
			like := "%" + query + "%"
			tx = tx.Where(
				"invoices.invoice_number LIKE ? OR customers.name LIKE ? OR invoices.date LIKE ?",
				like, like, like,
			)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	var invoices []invoicedomain.InvoiceWithCustomer
	if err := filtered().
		Select("invoices.*, customers.name AS customer_name, customers.phone AS customer_phone").
		Order("invoices.date DESC, invoices.created_at DESC").
		Limit(req.Limit()).
		Offset(req.Offset()).
		Scan(&invoices).Error; err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}
	for i := range invoices {
		invoices[i].RemainingAmount = invoices[i].Total.Sub(invoices[i].PaidAmount)
	}

	// Decimals are stored as text under sqlite, so the grand total over the
	// filtered set is summed here rather than with SQL SUM.
	var amounts []invoicedomain.Invoice
	if err := filtered().Select("invoices.total").Scan(&amounts).Error; err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}
	sum := decimal.Zero
	for _, row := range amounts {
		sum = sum.Add(row.Total)
	}

	return invoicedomain.ListInvoiceResponse{
		PageInfo: pagination.NewPageInfo(req.Pagination, total),
		Invoices: invoices,
		SumTotal: sum,
	}, nil
}

// ListByCustomer returns a customer's invoices newest first, with the paid
// and remaining columns rebuilt from the payments that reference each
// invoice. Unlinked payments count toward the aggregate customer balance
// but not toward any single invoice here.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]invoicedomain.CustomerInvoice, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, invoicedomain.ErrInvalidCustomer
	}
	customer, err := s.customerrepo.FindOne(ctx, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, customerdomain.ErrCustomerNotFound
	}

	invoices, err := s.invoicerepo.Find(ctx, map[string]any{"customer_id": id},
		repository.WithOrder("date DESC, created_at DESC"))
	if err != nil {
		return nil, err
	}

	var payments []paymentdomain.Payment
	if err := s.db.WithContext(ctx).
		Where("customer_id = ? AND invoice_id IS NOT NULL", id).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	linked := make(map[snowflake.ID]decimal.Decimal, len(invoices))
	for _, payment := range payments {
		linked[*payment.InvoiceID] = linked[*payment.InvoiceID].Add(payment.Amount)
	}

	rows := make([]invoicedomain.CustomerInvoice, 0, len(invoices))
	for _, inv := range invoices {
		paid := linked[inv.ID]
		rows = append(rows, invoicedomain.CustomerInvoice{
			Invoice:          inv,
			PaidFromPayments: paid,
			RemainingAmount:  inv.Total.Sub(paid),
		})
	}
	return rows, nil
}

func (s *Service) Products(ctx context.Context, query string) ([]invoicedomain.Product, error) {
	tx := s.db.WithContext(ctx).
		Table("invoice_items").
		Select("MIN(id) AS id, product_name AS name").
		Group("product_name").
		Order("product_name ASC")
	if query = strings.TrimSpace(query); query != "" {
		tx = tx.Where("product_name LIKE ?", "%"+query+"%")
	}

	var products []invoicedomain.Product
	if err := tx.Scan(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func toItems(invoiceID snowflake.ID, inputs []invoicedomain.ItemInput) []invoicedomain.InvoiceItem {
	items := make([]invoicedomain.InvoiceItem, len(inputs))
	for i, input := range inputs {
		items[i] = invoicedomain.InvoiceItem{
			InvoiceID:   invoiceID,
			ProductName: strings.TrimSpace(input.ProductName),
			UnitPrice:   input.UnitPrice,
			Quantity:    input.Quantity,
		}
	}
	return items
}

func parseID(raw string) (snowflake.ID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, invoicedomain.ErrInvalidID
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
