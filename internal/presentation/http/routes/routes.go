package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kallospos/billing-api/internal/config"
	"github.com/kallospos/billing-api/internal/presentation/http/handler"
	"github.com/kallospos/billing-api/internal/presentation/http/middleware"
	"github.com/rs/zerolog"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session   *handler.SessionHandler
	Billing   *handler.BillingHandler
	Customer  *handler.CustomerHandler
	Menu      *handler.MenuHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg    *config.Config
	Logger zerolog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.Burst,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerSessionRoutes(v1, h)
		registerBillingRoutes(v1, h)
		registerCustomerRoutes(v1, h)
		registerMenuRoutes(v1, h)
		registerDashboardRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerSessionRoutes(v1 *gin.RouterGroup, h *Handlers) {
	tables := v1.Group("/tables")
	{
		tables.GET("", h.Session.Overview)
		tables.GET("/:tableNo", h.Session.Get)
		tables.POST("/:tableNo/items", h.Session.AddLine)
		tables.PATCH("/:tableNo/items", h.Session.UpdateQuantity)
		tables.DELETE("/:tableNo/items", h.Session.RemoveLine)
		tables.POST("/:tableNo/lock", h.Session.Lock)
		tables.POST("/:tableNo/reset", h.Session.Reset)
		tables.POST("/:tableNo/customer", h.Session.LinkCustomer)
		tables.DELETE("/:tableNo/customer", h.Session.UnlinkCustomer)
	}
}

func registerBillingRoutes(v1 *gin.RouterGroup, h *Handlers) {
	tables := v1.Group("/tables")
	{
		tables.POST("/:tableNo/checkout", h.Billing.Checkout)
		tables.POST("/:tableNo/kot", h.Billing.SendKOT)
		tables.GET("/:tableNo/bill-number", h.Billing.PreviewBillNumber)
	}

	bills := v1.Group("/bills")
	{
		bills.GET("", h.Billing.ListBills)
		bills.GET("/:id/items", h.Billing.GetBillItems)
		bills.POST("/:id/reprint", h.Billing.Reprint)
		bills.POST("/sequence/reset", h.Billing.ResetSequence)
	}
}

func registerCustomerRoutes(v1 *gin.RouterGroup, h *Handlers) {
	customers := v1.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerMenuRoutes(v1 *gin.RouterGroup, h *Handlers) {
	menu := v1.Group("/menu")
	{
		menu.GET("/categories", h.Menu.ListCategories)
		menu.POST("/categories", h.Menu.CreateCategory)
		menu.PUT("/categories/:id", h.Menu.UpdateCategory)
		menu.DELETE("/categories/:id", h.Menu.DeleteCategory)

		menu.GET("/items", h.Menu.ListItems)
		menu.POST("/items", h.Menu.CreateItem)
		menu.PUT("/items/:id", h.Menu.UpdateItem)
		menu.DELETE("/items/:id", h.Menu.DeleteItem)
	}
}

func registerDashboardRoutes(v1 *gin.RouterGroup, h *Handlers) {
	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("", h.Dashboard.Summary)
		dashboard.GET("/daily", h.Dashboard.DailyStats)
		dashboard.GET("/sales", h.Dashboard.SalesSeries)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printer := v1.Group("/printer")
	{
		printer.GET("/status", h.Printer.Status)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
