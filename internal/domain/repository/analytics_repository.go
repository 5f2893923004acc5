package repository

import "context"

// DailyStatsResult summarizes today's trading.
type DailyStatsResult struct {
	Count      int64   `json:"count"`
	TotalSales float64 `json:"total_sales"`
	CashSales  float64 `json:"cash_sales"`
	UPISales   float64 `json:"upi_sales"`
}

// SalesPointResult is one bucket of the sales time series. Date holds a
// day ("2006-01-02") or a month ("2006-01") depending on the period.
type SalesPointResult struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// CategorySalesResult represents revenue aggregated by menu category.
type CategorySalesResult struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// TopItemResult represents an article's total units sold.
type TopItemResult struct {
	Name      string `json:"name"`
	SoldCount int64  `json:"sold_count"`
}

// HourlySalesResult represents today's revenue for one hour bucket.
type HourlySalesResult struct {
	Hour   string  `json:"hour"`
	Amount float64 `json:"amount"`
}

// AnalyticsRepository defines interface for the aggregate queries consumed
// by the dashboard and reports screens.
type AnalyticsRepository interface {
	// GetDailyStats returns today's bill count and revenue split by payment mode.
	GetDailyStats(ctx context.Context) (*DailyStatsResult, error)

	// GetSalesSeries returns revenue per day (last 30) or per month (last 12).
	GetSalesSeries(ctx context.Context, period string) ([]SalesPointResult, error)

	// GetCategorySales returns revenue aggregated by menu category.
	GetCategorySales(ctx context.Context) ([]CategorySalesResult, error)

	// GetTopSellingItems returns the best sellers by units sold.
	GetTopSellingItems(ctx context.Context, limit int) ([]TopItemResult, error)

	// GetHourlySales returns today's revenue bucketed by hour.
	GetHourlySales(ctx context.Context) ([]HourlySalesResult, error)
}
