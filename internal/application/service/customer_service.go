package service

import (
	"context"
	"strings"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/repository"
	"github.com/kallospos/billing-api/pkg/apperror"
	"github.com/rs/zerolog"
)

// CustomerService manages the customer directory used to link regulars
// to their bills.
type CustomerService struct {
	customers repository.CustomerRepository
	logger    zerolog.Logger
}

func NewCustomerService(customers repository.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		logger:    logger.With().Str("component", "customer").Logger(),
	}
}

// Create registers a new customer. Mobile numbers are unique across the
// directory.
func (s *CustomerService) Create(ctx context.Context, name, mobile, notes string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)
	if name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if mobile == "" {
		return nil, apperror.NewBadRequestError("Customer mobile is required")
	}

	existing, err := s.customers.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A customer with this mobile already exists")
	}

	customer := &entity.Customer{
		Name:   name,
		Mobile: mobile,
		Notes:  notes,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info().Uint("customer_id", customer.ID).Msg("customer created")
	return customer, nil
}

// GetByID returns one customer.
func (s *CustomerService) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// List returns the whole directory, or matches against name and mobile
// when query is non-empty.
func (s *CustomerService) List(ctx context.Context, query string) ([]entity.Customer, error) {
	query = strings.TrimSpace(query)
	if query != "" {
		return s.customers.Search(ctx, query)
	}
	return s.customers.List(ctx)
}

// Update modifies a customer's details. The mobile uniqueness check
// skips the customer being updated.
func (s *CustomerService) Update(ctx context.Context, id uint, name, mobile, notes string) (*entity.Customer, error) {
	customer, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)
	if name != "" {
		customer.Name = name
	}
	if mobile != "" && mobile != customer.Mobile {
		existing, err := s.customers.GetByMobile(ctx, mobile)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("A customer with this mobile already exists")
		}
		customer.Mobile = mobile
	}
	customer.Notes = notes

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer. Stored bills keep their customer_id; the
// join in the history listing simply stops resolving a name.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Uint("customer_id", id).Msg("customer deleted")
	return nil
}
