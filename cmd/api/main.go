package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kallospos/billing-api/internal/application/service"
	"github.com/kallospos/billing-api/internal/config"
	"github.com/kallospos/billing-api/internal/infrastructure/database"
	infraRepo "github.com/kallospos/billing-api/internal/infrastructure/repository"
	"github.com/kallospos/billing-api/internal/pipeline"
	"github.com/kallospos/billing-api/internal/presentation/http/handler"
	"github.com/kallospos/billing-api/internal/presentation/http/routes"
	"github.com/kallospos/billing-api/pkg/printer"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	db, err := database.NewSQLiteDB(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.SeedMenu(db, database.DefaultMenu()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed menu")
	}

	// Repositories
	billRepo := infraRepo.NewBillRepository(db)
	customerRepo := infraRepo.NewCustomerRepository(db)
	menuRepo := infraRepo.NewMenuRepository(db)
	settingsRepo := infraRepo.NewSettingsRepository(db)
	analyticsRepo := infraRepo.NewAnalyticsRepository(db)

	// Printer hardware; fall back to the null printer so the till keeps
	// working when the device is missing.
	prn, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logger.Warn().Err(err).Msg("printer unavailable, falling back to null printer")
		prn = printer.NewNullPrinter()
	}
	defer prn.Close()

	// Rendering surfaces
	surfaces := pipeline.NewChromiumFactory(context.Background(), cfg.Render.CaptureQuality)
	defer surfaces.Close()

	pipe := pipeline.New(surfaces, billRepo, prn, pipeline.Options{
		BillDir:          cfg.Billing.BillOutputDir,
		KOTDir:           cfg.Billing.KOTOutputDir,
		ReceiptWidth:     cfg.Render.ReceiptWidth,
		SettleDelay:      cfg.Render.SettleDelay,
		CutterMargin:     cfg.Render.CutterMargin,
		StrictCommit:     cfg.Billing.StrictCommit,
		PrinterWidthDots: cfg.Printer.WidthDots,
	}, logger)

	// Services
	registry := service.NewSessionRegistry(cfg.Billing.TableCount)
	sessionService := service.NewSessionService(registry, logger)
	sequenceService := service.NewSequenceService(billRepo, settingsRepo, logger)
	billingService := service.NewBillingService(sessionService, sequenceService, billRepo, pipe, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	menuService := service.NewMenuService(menuRepo, logger)
	dashboardService := service.NewDashboardService(analyticsRepo, logger)
	printerService := service.NewPrinterService(prn, cfg.Printer.CharWidth, cfg.App.Name, logger)

	// Handlers
	handlers := &routes.Handlers{
		Session:   handler.NewSessionHandler(sessionService, customerService),
		Billing:   handler.NewBillingHandler(billingService),
		Customer:  handler.NewCustomerHandler(customerService),
		Menu:      handler.NewMenuHandler(menuService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{Cfg: cfg, Logger: logger})

	logger.Info().
		Str("port", cfg.App.Port).
		Int("tables", cfg.Billing.TableCount).
		Str("printer", cfg.Printer.Type).
		Msg("starting billing API")

	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.App.Env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			Level(level).
			With().Timestamp().Str("service", cfg.App.Name).Logger()
	}
	return logger
}
