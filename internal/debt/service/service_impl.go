package service

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	customerservice "github.com/haroun39/facteur/internal/customer/service"
	debtdomain "github.com/haroun39/facteur/internal/debt/domain"
	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
	"github.com/haroun39/facteur/pkg/repository"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	customerrepo repository.Repository[customerdomain.Customer]
	invoicerepo  repository.Repository[invoicedomain.Invoice]
	paymentrepo  repository.Repository[paymentdomain.Payment]
}

func NewService(p ServiceParam) debtdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("debt.service"),

		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
		invoicerepo:  repository.ProvideStore[invoicedomain.Invoice](p.DB),
		paymentrepo:  repository.ProvideStore[paymentdomain.Payment](p.DB),
	}
}

// ListDebts aggregates every customer's all-time balance. Amounts are
// decimals stored as text, so the per-customer rollup happens here rather
// than in SQL.
func (s *Service) ListDebts(ctx context.Context, req debtdomain.ListDebtsRequest) (debtdomain.ListDebtsResponse, error) {
	filter := map[string]any{}
	tx := s.db.WithContext(ctx).Model(&customerdomain.Customer{})
	if query := strings.TrimSpace(req.Query); query != "" {
		like := "%" + query + "%"
		tx = tx.Where("name LIKE ? OR phone LIKE ? OR notes LIKE ?", like, like, like)
	}
	var customers []customerdomain.Customer
	if err := tx.Order("name ASC").Find(&customers).Error; err != nil {
		return debtdomain.ListDebtsResponse{}, err
	}

	invoices, err := s.invoicerepo.Find(ctx, filter)
	if err != nil {
		return debtdomain.ListDebtsResponse{}, err
	}
	payments, err := s.paymentrepo.Find(ctx, filter)
	if err != nil {
		return debtdomain.ListDebtsResponse{}, err
	}

	invoiced := make(map[snowflake.ID]decimal.Decimal, len(customers))
	paid := make(map[snowflake.ID]decimal.Decimal, len(customers))
	for _, inv := range invoices {
		invoiced[inv.CustomerID] = invoiced[inv.CustomerID].Add(inv.Total)
	}
	for _, payment := range payments {
		paid[payment.CustomerID] = paid[payment.CustomerID].Add(payment.Amount)
	}

	debts := make([]debtdomain.CustomerDebt, 0, len(customers))
	for _, customer := range customers {
		totalInvoices := invoiced[customer.ID]
		totalPayments := paid[customer.ID]
		debt := totalInvoices.Sub(totalPayments)
		// Only an exactly-zero balance is filtered; negative debts
		// (overpayment) stay visible.
		if !req.IncludeZero && debt.IsZero() {
			continue
		}
		debts = append(debts, debtdomain.CustomerDebt{
			ID:            customer.ID,
			Name:          customer.Name,
			Phone:         customer.Phone,
			TotalInvoices: totalInvoices,
			TotalPayments: totalPayments,
			TotalDebt:     debt,
		})
	}

	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].TotalDebt.GreaterThan(debts[j].TotalDebt)
	})

	return debtdomain.ListDebtsResponse{Debts: debts}, nil
}

func (s *Service) CustomerDebt(ctx context.Context, customerID string) (decimal.Decimal, error) {
	id, err := customerservice.ParseID(customerID)
	if err != nil {
		return decimal.Zero, customerdomain.ErrInvalidID
	}

	customer, err := s.customerrepo.FindOne(ctx, map[string]any{"id": id})
	if err != nil {
		return decimal.Zero, err
	}
	if customer == nil {
		return decimal.Zero, customerdomain.ErrCustomerNotFound
	}

	invoices, err := s.invoicerepo.Find(ctx, map[string]any{"customer_id": id})
	if err != nil {
		return decimal.Zero, err
	}
	payments, err := s.paymentrepo.Find(ctx, map[string]any{"customer_id": id})
	if err != nil {
		return decimal.Zero, err
	}

	return debtdomain.Outstanding(invoices, payments), nil
}
