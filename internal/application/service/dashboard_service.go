package service

import (
	"context"

	"github.com/kallospos/billing-api/internal/domain/repository"
	"github.com/kallospos/billing-api/pkg/apperror"
	"github.com/rs/zerolog"
)

const defaultTopItemsLimit = 5

// DashboardSummary bundles every aggregate the reports screen renders
// into one response.
type DashboardSummary struct {
	Daily         *repository.DailyStatsResult     `json:"daily"`
	SalesSeries   []repository.SalesPointResult    `json:"sales_series"`
	CategorySales []repository.CategorySalesResult `json:"category_sales"`
	TopItems      []repository.TopItemResult       `json:"top_items"`
	HourlySales   []repository.HourlySalesResult   `json:"hourly_sales"`
}

// DashboardService serves the read-only aggregates behind the reports
// screen.
type DashboardService struct {
	analytics repository.AnalyticsRepository
	logger    zerolog.Logger
}

func NewDashboardService(analytics repository.AnalyticsRepository, logger zerolog.Logger) *DashboardService {
	return &DashboardService{
		analytics: analytics,
		logger:    logger.With().Str("component", "dashboard").Logger(),
	}
}

// GetDailyStats returns today's bill count and revenue split by payment mode.
func (s *DashboardService) GetDailyStats(ctx context.Context) (*repository.DailyStatsResult, error) {
	return s.analytics.GetDailyStats(ctx)
}

// GetSalesSeries returns the sales time series. Period is "daily"
// (last 30 days) or "monthly" (last 12 months).
func (s *DashboardService) GetSalesSeries(ctx context.Context, period string) ([]repository.SalesPointResult, error) {
	switch period {
	case "", "daily":
		period = "daily"
	case "monthly":
	default:
		return nil, apperror.NewBadRequestError("Period must be 'daily' or 'monthly'")
	}
	return s.analytics.GetSalesSeries(ctx, period)
}

// GetSummary gathers every dashboard aggregate in one call.
func (s *DashboardService) GetSummary(ctx context.Context, period string, topLimit int) (*DashboardSummary, error) {
	if topLimit <= 0 {
		topLimit = defaultTopItemsLimit
	}

	daily, err := s.GetDailyStats(ctx)
	if err != nil {
		return nil, err
	}
	series, err := s.GetSalesSeries(ctx, period)
	if err != nil {
		return nil, err
	}
	categories, err := s.analytics.GetCategorySales(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.analytics.GetTopSellingItems(ctx, topLimit)
	if err != nil {
		return nil, err
	}
	hourly, err := s.analytics.GetHourlySales(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		Daily:         daily,
		SalesSeries:   series,
		CategorySales: categories,
		TopItems:      top,
		HourlySales:   hourly,
	}, nil
}
