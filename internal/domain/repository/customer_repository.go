package repository

import (
	"context"

	"github.com/kallospos/billing-api/internal/domain/entity"
)

// CustomerRepository defines the interface for customer directory access
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uint) (*entity.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error)
	// List returns all customers ordered by name.
	List(ctx context.Context) ([]entity.Customer, error)
	// Search matches the query against names and mobile numbers.
	Search(ctx context.Context, query string) ([]entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uint) error
}
