package repository

import (
	"context"

	"github.com/kallospos/billing-api/internal/domain/entity"
)

// MenuRepository defines the interface for catalog (category + article) access
type MenuRepository interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateCategory(ctx context.Context, category *entity.Category) error
	UpdateCategory(ctx context.Context, category *entity.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	// ListItems returns all menu items, or only those in the given
	// category when categoryID is non-zero.
	ListItems(ctx context.Context, categoryID uint) ([]entity.MenuItem, error)
	GetItem(ctx context.Context, id uint) (*entity.MenuItem, error)
	CreateItem(ctx context.Context, item *entity.MenuItem) error
	UpdateItem(ctx context.Context, item *entity.MenuItem) error
	DeleteItem(ctx context.Context, id uint) error
}
