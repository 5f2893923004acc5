package service

import (
	"context"
	"strings"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/repository"
	"github.com/kallospos/billing-api/pkg/apperror"
	"github.com/rs/zerolog"
)

// MenuService manages the catalog: categories and the articles sold
// under them.
type MenuService struct {
	menu   repository.MenuRepository
	logger zerolog.Logger
}

func NewMenuService(menu repository.MenuRepository, logger zerolog.Logger) *MenuService {
	return &MenuService{
		menu:   menu,
		logger: logger.With().Str("component", "menu").Logger(),
	}
}

// ListCategories returns all categories.
func (s *MenuService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.menu.ListCategories(ctx)
}

// CreateCategory adds a new category.
func (s *MenuService) CreateCategory(ctx context.Context, name, emoji string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category := &entity.Category{Name: name, Emoji: emoji}
	if err := s.menu.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("category_id", category.ID).Msg("category created")
	return category, nil
}

// UpdateCategory renames a category or changes its emoji.
func (s *MenuService) UpdateCategory(ctx context.Context, id uint, name, emoji string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Category name is required")
	}

	category := &entity.Category{ID: id, Name: name, Emoji: emoji}
	if err := s.menu.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and its articles.
func (s *MenuService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.menu.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Uint("category_id", id).Msg("category deleted")
	return nil
}

// ListItems returns all articles, optionally filtered to one category.
func (s *MenuService) ListItems(ctx context.Context, categoryID uint) ([]entity.MenuItem, error) {
	return s.menu.ListItems(ctx, categoryID)
}

// CreateItem adds an article with its price variants.
func (s *MenuService) CreateItem(ctx context.Context, categoryID uint, name, emoji string, prices map[string]float64) (*entity.MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if categoryID == 0 {
		return nil, apperror.NewBadRequestError("Item category is required")
	}
	if len(prices) == 0 {
		return nil, apperror.NewBadRequestError("At least one price variant is required")
	}
	for variant, price := range prices {
		if price < 0 {
			return nil, apperror.NewBadRequestError("Price for variant '" + variant + "' cannot be negative")
		}
	}

	item := &entity.MenuItem{CategoryID: categoryID, Name: name, Emoji: emoji}
	if err := item.SetPriceMap(prices); err != nil {
		return nil, err
	}
	if err := s.menu.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info().Uint("item_id", item.ID).Msg("menu item created")
	return item, nil
}

// UpdateItem modifies an article. Zero-valued fields keep their current
// value; a non-nil prices map replaces the variants wholesale.
func (s *MenuService) UpdateItem(ctx context.Context, id uint, categoryID uint, name, emoji string, prices map[string]float64) (*entity.MenuItem, error) {
	item, err := s.menu.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	if name = strings.TrimSpace(name); name != "" {
		item.Name = name
	}
	if categoryID != 0 {
		item.CategoryID = categoryID
	}
	if emoji != "" {
		item.Emoji = emoji
	}
	if prices != nil {
		if len(prices) == 0 {
			return nil, apperror.NewBadRequestError("At least one price variant is required")
		}
		if err := item.SetPriceMap(prices); err != nil {
			return nil, err
		}
	}

	if err := s.menu.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an article from the catalog.
func (s *MenuService) DeleteItem(ctx context.Context, id uint) error {
	if err := s.menu.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Uint("item_id", id).Msg("menu item deleted")
	return nil
}
