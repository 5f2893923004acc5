package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Billing   BillingConfig
	Render    RenderConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	LogLevel string
}

type DatabaseConfig struct {
	Path string
}

type BillingConfig struct {
	TableCount    int
	BillOutputDir string
	KOTOutputDir  string
	// StrictCommit makes a failed fiscal commit fail the whole print
	// operation instead of logging and continuing.
	StrictCommit bool
}

type RenderConfig struct {
	ReceiptWidth   int
	SettleDelay    time.Duration
	CutterMargin   int
	CaptureQuality int
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	// WidthDots is the print head width in dots (384 for 58mm, 576 for 80mm).
	WidthDots int
	// CharWidth is the plain-text line width used for test prints.
	CharWidth int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "billing-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_LOG_LEVEL", "info")
	viper.SetDefault("DB_PATH", "./data/pos_system.db")
	viper.SetDefault("TABLE_COUNT", 21)
	viper.SetDefault("BILL_OUTPUT_DIR", "./bills")
	viper.SetDefault("KOT_OUTPUT_DIR", "./kot")
	viper.SetDefault("BILLING_STRICT_COMMIT", false)
	viper.SetDefault("RENDER_RECEIPT_WIDTH", 350)
	viper.SetDefault("RENDER_SETTLE_MS", 500)
	viper.SetDefault("RENDER_CUTTER_MARGIN", 40)
	viper.SetDefault("RENDER_CAPTURE_QUALITY", 80)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH_DOTS", 384)
	viper.SetDefault("PRINTER_CHAR_WIDTH", 32)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_RPS", 25)
	viper.SetDefault("RATE_LIMIT_BURST", 50)

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			LogLevel: viper.GetString("APP_LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Path: viper.GetString("DB_PATH"),
		},
		Billing: BillingConfig{
			TableCount:    viper.GetInt("TABLE_COUNT"),
			BillOutputDir: viper.GetString("BILL_OUTPUT_DIR"),
			KOTOutputDir:  viper.GetString("KOT_OUTPUT_DIR"),
			StrictCommit:  viper.GetBool("BILLING_STRICT_COMMIT"),
		},
		Render: RenderConfig{
			ReceiptWidth:   viper.GetInt("RENDER_RECEIPT_WIDTH"),
			SettleDelay:    time.Duration(viper.GetInt("RENDER_SETTLE_MS")) * time.Millisecond,
			CutterMargin:   viper.GetInt("RENDER_CUTTER_MARGIN"),
			CaptureQuality: viper.GetInt("RENDER_CAPTURE_QUALITY"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			WidthDots: viper.GetInt("PRINTER_WIDTH_DOTS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}
}
