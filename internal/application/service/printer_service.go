package service

import (
	"time"

	"github.com/kallospos/billing-api/pkg/apperror"
	"github.com/kallospos/billing-api/pkg/printer"
	"github.com/rs/zerolog"
)

// PrinterStatus reports whether the configured thermal printer is
// reachable.
type PrinterStatus struct {
	Connected bool      `json:"connected"`
	CheckedAt time.Time `json:"checked_at"`
}

// PrinterService exposes the physical printer to the operator screens:
// a connectivity check and a plain-text self-test page.
type PrinterService struct {
	printer   printer.Printer
	charWidth int
	appName   string
	logger    zerolog.Logger
}

func NewPrinterService(prn printer.Printer, charWidth int, appName string, logger zerolog.Logger) *PrinterService {
	return &PrinterService{
		printer:   prn,
		charWidth: charWidth,
		appName:   appName,
		logger:    logger.With().Str("component", "printer").Logger(),
	}
}

// Status probes the printer connection.
func (s *PrinterService) Status() *PrinterStatus {
	return &PrinterStatus{
		Connected: s.printer.IsConnected(),
		CheckedAt: time.Now(),
	}
}

// TestPrint sends a short self-test page so the operator can verify
// paper, alignment and cutter without settling a bill.
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(s.charWidth).
		SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(s.appName).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Text("Printer self-test").
		Separator('-').
		SetAlign(printer.AlignLeft).
		KeyValue("Time", time.Now().Format("02-01-2006 15:04:05")).
		KeyValue("Width", "OK").
		Separator('-').
		SetAlign(printer.AlignCenter).
		Text("If you can read this, the").
		Text("printer is ready.").
		FeedLines(3).
		Cut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		s.logger.Error().Err(err).Msg("test print failed")
		return apperror.NewPrintError(err)
	}
	s.logger.Info().Msg("test print sent")
	return nil
}
