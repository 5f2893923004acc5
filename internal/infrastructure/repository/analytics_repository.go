package repository

import (
	"context"
	"fmt"

	domainRepo "github.com/kallospos/billing-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetDailyStats(ctx context.Context) (*domainRepo.DailyStatsResult, error) {
	var result domainRepo.DailyStatsResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS count,
			COALESCE(SUM(total), 0) AS total_sales,
			COALESCE(SUM(CASE WHEN payment_mode = 'Cash' THEN total ELSE 0 END), 0) AS cash_sales,
			COALESCE(SUM(CASE WHEN payment_mode = 'UPI' THEN total ELSE 0 END), 0) AS upi_sales
		FROM bills
		WHERE date(created_at) = date('now')
	`).Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *analyticsRepository) GetSalesSeries(ctx context.Context, period string) ([]domainRepo.SalesPointResult, error) {
	var query string
	switch period {
	case "daily", "":
		query = `
			SELECT date(created_at) AS date, SUM(total) AS amount
			FROM bills
			GROUP BY date(created_at)
			ORDER BY date DESC
			LIMIT 30
		`
	case "monthly":
		query = `
			SELECT strftime('%Y-%m', created_at) AS date, SUM(total) AS amount
			FROM bills
			GROUP BY date
			ORDER BY date DESC
			LIMIT 12
		`
	default:
		return nil, fmt.Errorf("analytics: unknown sales period %q", period)
	}

	var results []domainRepo.SalesPointResult
	if err := r.db.WithContext(ctx).Raw(query).Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *analyticsRepository) GetCategorySales(ctx context.Context) ([]domainRepo.CategorySalesResult, error) {
	var results []domainRepo.CategorySalesResult

	// Bill items are denormalized; join back to the catalog by article
	// name to attribute revenue to categories.
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.name AS category, SUM(bi.qty * bi.price) AS amount
		FROM bill_items bi
		JOIN menu_items mi ON bi.name = mi.name
		JOIN categories c ON mi.category_id = c.id
		GROUP BY c.name
		ORDER BY amount DESC
	`).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetTopSellingItems(ctx context.Context, limit int) ([]domainRepo.TopItemResult, error) {
	if limit <= 0 {
		limit = 5
	}

	var results []domainRepo.TopItemResult
	err := r.db.WithContext(ctx).Raw(`
		SELECT name, SUM(qty) AS sold_count
		FROM bill_items
		GROUP BY name
		ORDER BY sold_count DESC
		LIMIT ?
	`, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetHourlySales(ctx context.Context) ([]domainRepo.HourlySalesResult, error) {
	var results []domainRepo.HourlySalesResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT strftime('%H', created_at) AS hour, SUM(total) AS amount
		FROM bills
		WHERE date(created_at) = date('now')
		GROUP BY hour
		ORDER BY hour ASC
	`).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
