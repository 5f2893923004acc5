package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kallospos/billing-api/internal/application/service"
	"github.com/kallospos/billing-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles reports screen HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DailyStats handles today's bill count and revenue split
func (h *DashboardHandler) DailyStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDailyStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Daily stats retrieved successfully", stats)
}

// SalesSeries handles the daily/monthly sales time series
func (h *DashboardHandler) SalesSeries(c *gin.Context) {
	series, err := h.dashboardService.GetSalesSeries(c.Request.Context(), c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sales series retrieved successfully", series)
}

// Summary handles the combined dashboard aggregates
func (h *DashboardHandler) Summary(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("top_limit", "5"))

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), c.Query("period"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Dashboard summary retrieved successfully", summary)
}
