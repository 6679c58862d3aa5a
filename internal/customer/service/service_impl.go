package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/haroun39/facteur/internal/clock"
	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	reportdomain "github.com/haroun39/facteur/internal/report/domain"
	"github.com/haroun39/facteur/pkg/db/pagination"
	"github.com/haroun39/facteur/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Summary *reportdomain.SummaryCache `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID        *snowflake.Node
	clock        clock.Clock
	summary      *reportdomain.SummaryCache
	customerrepo repository.Repository[customerdomain.Customer]
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("customer.service"),

		genID:        p.GenID,
		clock:        p.Clock,
		summary:      p.Summary,
		customerrepo: repository.ProvideStore[customerdomain.Customer](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidName
	}

	record := customerdomain.Customer{
		ID:        s.genID.Generate(),
		Name:      name,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		Notes:     trimNotes(req.Notes),
		CreatedAt: s.clock.Now(),
	}
	if err := s.customerrepo.Create(ctx, &record); err != nil {
		return customerdomain.Customer{}, err
	}

	// The dashboard summary counts customers.
	s.summary.Delete(reportdomain.SummaryCacheKey)
	s.log.Info("customer created", zap.String("customer_id", record.ID.String()))
	return record, nil
}

func (s *Service) Update(ctx context.Context, id string, req customerdomain.UpdateCustomerRequest) (customerdomain.Customer, error) {
	customerID, err := ParseID(id)
	if err != nil {
		return customerdomain.Customer{}, customerdomain.ErrInvalidID
	}

	existing, err := s.customerrepo.FindOne(ctx, map[string]any{"id": customerID})
	if err != nil {
		return customerdomain.Customer{}, err
	}
	if existing == nil {
		return customerdomain.Customer{}, customerdomain.ErrCustomerNotFound
	}

	values := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return customerdomain.Customer{}, customerdomain.ErrInvalidName
		}
		values["name"] = name
	}
	if req.Phone != nil {
		values["phone"] = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		values["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		values["notes"] = strings.TrimSpace(*req.Notes)
	}
	if len(values) == 0 {
		return *existing, nil
	}

	if err := s.customerrepo.Updates(ctx, map[string]any{"id": customerID}, values); err != nil {
		return customerdomain.Customer{}, err
	}

	updated, err := s.customerrepo.FindOne(ctx, map[string]any{"id": customerID})
	if err != nil {
		return customerdomain.Customer{}, err
	}
	if updated == nil {
		return customerdomain.Customer{}, customerdomain.ErrCustomerNotFound
	}
	return *updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	customerID, err := ParseID(id)
	if err != nil {
		return customerdomain.ErrInvalidID
	}

	existing, err := s.customerrepo.FindOne(ctx, map[string]any{"id": customerID})
	if err != nil {
		return err
	}
	if existing == nil {
		return customerdomain.ErrCustomerNotFound
	}

	if err := s.customerrepo.Delete(ctx, map[string]any{"id": customerID}); err != nil {
		return err
	}

	s.summary.Delete(reportdomain.SummaryCacheKey)
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (customerdomain.Customer, error) {
	customerID, err := ParseID(id)
	if err != nil {
		return customerdomain.Customer{}, customerdomain.ErrInvalidID
	}

	record, err := s.customerrepo.FindOne(ctx, map[string]any{"id": customerID})
	if err != nil {
		return customerdomain.Customer{}, err
	}
	if record == nil {
		return customerdomain.Customer{}, customerdomain.ErrCustomerNotFound
	}
	return *record, nil
}

func (s *Service) List(ctx context.Context, req customerdomain.ListCustomerRequest) (customerdomain.ListCustomerResponse, error) {
	tx := s.db.WithContext(ctx).Model(&customerdomain.Customer{})
	if query := strings.TrimSpace(req.Query); query != "" {
		like := "%" + query + "%"
		tx = tx.Where("name LIKE ? OR phone LIKE ? OR address LIKE ? OR notes LIKE ?", like, like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return customerdomain.ListCustomerResponse{}, err
	}

	var customers []customerdomain.Customer
	if err := tx.
		Order("created_at DESC").
		Limit(req.Limit()).
		Offset(req.Offset()).
		Find(&customers).Error; err != nil {
		return customerdomain.ListCustomerResponse{}, err
	}

	return customerdomain.ListCustomerResponse{
		PageInfo:  pagination.NewPageInfo(req.Pagination, total),
		Customers: customers,
	}, nil
}

// ParseID parses a decimal customer id string into a snowflake ID.
func ParseID(raw string) (snowflake.ID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, customerdomain.ErrInvalidID
	}
	return snowflake.ID(value), nil
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
