package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kallospos/billing-api/internal/config"
	"github.com/kallospos/billing-api/internal/domain/entity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens (or creates) the embedded database on the till machine.
func NewSQLiteDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// busy_timeout keeps concurrent pipeline commits from failing on the
	// single-writer lock; foreign_keys enforces bill_items -> bills.
	dsn := cfg.Path + "?_busy_timeout=5000&_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; funnel all writes through one
	// connection instead of surfacing SQLITE_BUSY to callers.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Database initialized at: %s", cfg.Path)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Directory entities
		&entity.Customer{},

		// Catalog entities
		&entity.Category{},
		&entity.MenuItem{},

		// Fiscal entities
		&entity.Bill{},
		&entity.BillItem{},

		// System entities
		&entity.Setting{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedCategory describes one category with its articles for initial seeding.
type SeedCategory struct {
	Name  string
	Emoji string
	Items []SeedItem
}

// SeedItem describes one article with its price variants.
type SeedItem struct {
	Name   string
	Emoji  string
	Prices map[string]float64
}

// SeedMenu populates the catalog when it is empty. It never touches an
// already-populated catalog, so repeated startups are harmless.
func SeedMenu(db *gorm.DB, menu []SeedCategory) error {
	var count int64
	if err := db.Model(&entity.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding database with default menu...")
	return db.Transaction(func(tx *gorm.DB) error {
		for _, cat := range menu {
			emoji := cat.Emoji
			if emoji == "" {
				emoji = "📂"
			}
			category := entity.Category{Name: cat.Name, Emoji: emoji}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}

			for _, it := range cat.Items {
				itemEmoji := it.Emoji
				if itemEmoji == "" {
					itemEmoji = "🍽️"
				}
				item := entity.MenuItem{
					CategoryID: category.ID,
					Name:       it.Name,
					Emoji:      itemEmoji,
				}
				if err := item.SetPriceMap(it.Prices); err != nil {
					return err
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// DefaultMenu is the starter catalog seeded on first run.
func DefaultMenu() []SeedCategory {
	return []SeedCategory{
		{
			Name: "Tandoor & Breads", Emoji: "🫓",
			Items: []SeedItem{
				{Name: "Roti", Emoji: "🫓", Prices: map[string]float64{"pc": 10}},
				{Name: "Butter Naan", Emoji: "🫓", Prices: map[string]float64{"pc": 25}},
			},
		},
		{
			Name: "Beverages", Emoji: "☕",
			Items: []SeedItem{
				{Name: "Tea", Emoji: "☕", Prices: map[string]float64{"cup": 20, "pot": 60}},
				{Name: "Coffee", Emoji: "☕", Prices: map[string]float64{"cup": 30}},
			},
		},
		{
			Name: "Snacks", Emoji: "🥟",
			Items: []SeedItem{
				{Name: "Samosa", Emoji: "🥟", Prices: map[string]float64{"pc": 10, "plate": 25}},
			},
		},
	}
}
