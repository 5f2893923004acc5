package service

import (
	"context"
	"time"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/enum"
	"github.com/kallospos/billing-api/internal/domain/repository"
	"github.com/kallospos/billing-api/internal/pipeline"
	"github.com/kallospos/billing-api/pkg/apperror"
	"github.com/kallospos/billing-api/pkg/pagination"
	"github.com/rs/zerolog"
)

// walkInCustomer is printed on receipts that have no linked customer.
const walkInCustomer = "CASH"

// DocumentPipeline is the slice of the render pipeline the billing flow
// depends on.
type DocumentPipeline interface {
	PrintBill(ctx context.Context, payload *entity.ReceiptPayload) (*pipeline.Result, error)
	PrintKOT(ctx context.Context, payload *entity.KOTPayload) (*pipeline.Result, error)
}

// BillingService drives checkout and reprint: it assembles receipt
// payloads from the live table session and the fiscal store, runs them
// through the document pipeline and manages the session lock that keeps
// a settled table from being modified until it is cleared.
type BillingService struct {
	sessions *SessionService
	sequence *SequenceService
	bills    repository.BillRepository
	pipeline DocumentPipeline
	logger   zerolog.Logger
}

func NewBillingService(
	sessions *SessionService,
	sequence *SequenceService,
	bills repository.BillRepository,
	pipe DocumentPipeline,
	logger zerolog.Logger,
) *BillingService {
	return &BillingService{
		sessions: sessions,
		sequence: sequence,
		bills:    bills,
		pipeline: pipe,
		logger:   logger.With().Str("component", "billing").Logger(),
	}
}

// PreviewBillNumber returns the bill number the table would settle
// under right now, caching it on the session so the same number is
// shown and settled throughout the checkout screen.
func (s *BillingService) PreviewBillNumber(ctx context.Context, tableNo int) (string, error) {
	snap, err := s.sessions.Snapshot(tableNo)
	if err != nil {
		return "", err
	}
	if snap.DraftBillNo != "" {
		return snap.DraftBillNo, nil
	}

	billNo, err := s.sequence.NextBillNumber(ctx)
	if err != nil {
		return "", err
	}
	if err := s.sessions.SetDraftBillNo(tableNo, billNo); err != nil {
		return "", err
	}
	return billNo, nil
}

// Checkout settles the table: it snapshots the session, runs the
// receipt through the pipeline (which also commits the fiscal record)
// and seals the session on success. An already sealed table refuses a
// second checkout so the same order cannot be billed twice.
func (s *BillingService) Checkout(ctx context.Context, tableNo int, paymentMode string) (*pipeline.Result, error) {
	snap, err := s.sessions.Snapshot(tableNo)
	if err != nil {
		return nil, err
	}
	if len(snap.Items) == 0 {
		return nil, apperror.ErrEmptyCart
	}
	if snap.Locked {
		return nil, apperror.ErrSessionLocked
	}

	mode := enum.PaymentMode(paymentMode).OrDefault()
	if paymentMode != "" && !enum.PaymentMode(paymentMode).IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment mode: " + paymentMode)
	}

	billNo := snap.DraftBillNo
	if billNo == "" {
		billNo, err = s.sequence.NextBillNumber(ctx)
		if err != nil {
			return nil, err
		}
	}

	payload := &entity.ReceiptPayload{
		Items:        snap.Items,
		Subtotal:     snap.Totals.Subtotal,
		CGST:         snap.Totals.CGST,
		SGST:         snap.Totals.SGST,
		Total:        snap.Totals.GrandTotal,
		BillNo:       billNo,
		CustomerID:   snap.CustomerID,
		CustomerName: snap.CustomerName,
		PaymentMode:  mode,
		Timestamp:    time.Now(),
	}
	if payload.CustomerName == "" {
		payload.CustomerName = walkInCustomer
	}

	res, err := s.pipeline.PrintBill(ctx, payload)
	if err != nil {
		return nil, apperror.NewPrintError(err)
	}

	if lockErr := s.sessions.Lock(tableNo); lockErr != nil {
		s.logger.Error().Err(lockErr).Int("table", tableNo).Msg("failed to seal session after checkout")
	}

	s.logger.Info().
		Int("table", tableNo).
		Str("bill_no", billNo).
		Float64("total", payload.Total).
		Str("payment_mode", string(mode)).
		Msg("bill settled")

	return res, nil
}

// SendKOT prints a kitchen order ticket for the table's current cart.
// The session is left untouched; a KOT is not a settlement.
func (s *BillingService) SendKOT(ctx context.Context, tableNo int) (*pipeline.Result, error) {
	snap, err := s.sessions.Snapshot(tableNo)
	if err != nil {
		return nil, err
	}
	if len(snap.Items) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	res, err := s.pipeline.PrintKOT(ctx, &entity.KOTPayload{
		Items:     snap.Items,
		TableNo:   tableNo,
		Timestamp: time.Now(),
	})
	if err != nil {
		return nil, apperror.NewPrintError(err)
	}

	s.logger.Info().Int("table", tableNo).Int("lines", len(snap.Items)).Msg("kot sent")
	return res, nil
}

// Reprint re-renders a stored bill as a duplicate. The stored totals
// and the original bill time are reused verbatim and no new fiscal
// record is created.
func (s *BillingService) Reprint(ctx context.Context, billID uint) (*pipeline.Result, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}

	items, err := s.bills.GetItems(ctx, billID)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.ReceiptLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, entity.ReceiptLine{
			Name:    it.Name,
			Qty:     it.Qty,
			Price:   it.Price,
			QtyType: it.QtyType,
		})
	}

	customerName := walkInCustomer
	if bill.Customer != nil && bill.Customer.Name != "" {
		customerName = bill.Customer.Name
	}

	payload := &entity.ReceiptPayload{
		Items:        lines,
		Subtotal:     bill.Subtotal,
		CGST:         bill.CGST,
		SGST:         bill.SGST,
		Total:        bill.Total,
		BillNo:       bill.BillNo,
		CustomerID:   bill.CustomerID,
		CustomerName: customerName,
		PaymentMode:  bill.PaymentMode,
		Timestamp:    bill.CreatedAt,
		Reprint:      true,
	}

	res, err := s.pipeline.PrintBill(ctx, payload)
	if err != nil {
		return nil, apperror.NewPrintError(err)
	}

	s.logger.Info().Uint("bill_id", billID).Str("bill_no", bill.BillNo).Msg("bill reprinted")
	return res, nil
}

// ListBills pages through the fiscal history, newest first.
func (s *BillingService) ListBills(ctx context.Context, params pagination.PaginationParams) (*pagination.PaginatedResult[repository.BillSummary], error) {
	params.Validate()

	bills, total, err := s.bills.List(ctx, params.PerPage, params.Offset())
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(bills, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetBillItems returns the line rows of one stored bill.
func (s *BillingService) GetBillItems(ctx context.Context, billID uint) ([]entity.BillItem, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return s.bills.GetItems(ctx, billID)
}

// ResetSequence restarts bill numbering from 01 without touching stored
// bills. Typically run at the start of a business day.
func (s *BillingService) ResetSequence(ctx context.Context) error {
	if err := s.sequence.ResetSequence(ctx); err != nil {
		return err
	}
	s.logger.Info().Msg("bill number sequence reset")
	return nil
}
