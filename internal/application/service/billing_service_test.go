package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/enum"
	"github.com/kallospos/billing-api/internal/pipeline"
	"github.com/kallospos/billing-api/pkg/apperror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	failBill    bool
	billCalls   int
	kotCalls    int
	lastPayload *entity.ReceiptPayload
	lastKOT     *entity.KOTPayload
}

func (p *fakePipeline) PrintBill(_ context.Context, payload *entity.ReceiptPayload) (*pipeline.Result, error) {
	if p.failBill {
		return nil, errors.New("render surface unavailable")
	}
	p.billCalls++
	p.lastPayload = payload
	return &pipeline.Result{Success: true, Path: "/bills/out.jpg", BillID: 1}, nil
}

func (p *fakePipeline) PrintKOT(_ context.Context, payload *entity.KOTPayload) (*pipeline.Result, error) {
	p.kotCalls++
	p.lastKOT = payload
	return &pipeline.Result{Success: true, Path: "/kot/out.jpg"}, nil
}

type billingFixture struct {
	sessions *SessionService
	billing  *BillingService
	pipe     *fakePipeline
	bills    *stubBillStore
}

func newBillingFixture(t *testing.T) *billingFixture {
	t.Helper()
	sessions := newTestSessionService(4)
	bills := &stubBillStore{}
	pipe := &fakePipeline{}
	sequence := NewSequenceService(bills, &stubSettings{}, zerolog.Nop())
	billing := NewBillingService(sessions, sequence, bills, pipe, zerolog.Nop())
	return &billingFixture{sessions: sessions, billing: billing, pipe: pipe, bills: bills}
}

func TestCheckoutBuildsPayloadAndSealsSession(t *testing.T) {
	f := newBillingFixture(t)
	require.NoError(t, f.sessions.AddLine(1, "Tea", 20, "cup", ""))
	require.NoError(t, f.sessions.UpdateQuantity(1, 0, 1))
	require.NoError(t, f.sessions.AddLine(1, "Samosa", 10, "pc", ""))
	require.NoError(t, f.sessions.UpdateQuantity(1, 1, 1))
	require.NoError(t, f.sessions.UpdateQuantity(1, 1, 1))

	res, err := f.billing.Checkout(context.Background(), 1, "UPI")
	require.NoError(t, err)
	assert.True(t, res.Success)

	p := f.pipe.lastPayload
	require.NotNil(t, p)
	assert.Equal(t, "01", p.BillNo)
	assert.InDelta(t, 70.0, p.Total, 1e-9)
	assert.InDelta(t, 70.0, p.Subtotal, 1e-9)
	assert.Equal(t, enum.PaymentModeUPI, p.PaymentMode)
	assert.Equal(t, "CASH", p.CustomerName, "walk-in default when no customer is linked")
	assert.False(t, p.Reprint)
	assert.WithinDuration(t, time.Now(), p.Timestamp, time.Minute)

	snap, _ := f.sessions.Snapshot(1)
	assert.True(t, snap.Locked, "checkout seals the table")
}

func TestCheckoutRefusesEmptyCart(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.billing.Checkout(context.Background(), 1, "Cash")
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
	assert.Zero(t, f.pipe.billCalls)
}

func TestCheckoutRefusesSealedTable(t *testing.T) {
	f := newBillingFixture(t)
	require.NoError(t, f.sessions.AddLine(1, "Tea", 20, "cup", ""))

	_, err := f.billing.Checkout(context.Background(), 1, "Cash")
	require.NoError(t, err)

	_, err = f.billing.Checkout(context.Background(), 1, "Cash")
	assert.ErrorIs(t, err, apperror.ErrSessionLocked)
	assert.Equal(t, 1, f.pipe.billCalls, "the same order cannot be billed twice")
}

func TestCheckoutDefaultsPaymentModeToCash(t *testing.T) {
	f := newBillingFixture(t)
	require.NoError(t, f.sessions.AddLine(1, "Tea", 20, "cup", ""))

	_, err := f.billing.Checkout(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentModeCash, f.pipe.lastPayload.PaymentMode)
}

func TestCheckoutRejectsUnknownPaymentMode(t *testing.T) {
	f := newBillingFixture(t)
	require.NoError(t, f.sessions.AddLine(1, "Tea", 20, "cup", ""))

	_, err := f.billing.Checkout(context.Background(), 1, "Cheque")
	assert.Error(t, err)
	assert.Zero(t, f.pipe.billCalls)
}

func TestCheckoutUsesDraftBillNumber(t *testing.T) {
	f := newBillingFixture(t)
	require.NoError(t, f.sessions.AddLine(1, "Tea", 20, "cup", ""))

	no, err := f.billing.PreviewBillNumber(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.billing.Checkout(context.Background(), 1, "Cash")
	require.NoError(t, err)
	assert.Equal(t, no, f.pipe.lastPayload.BillNo, "the previewed number is the settled number")
}

func TestCheckoutCarriesLinkedCustomer(t *testing.T) {
	f := newBillingFixture(t)
	require.NoError(t, f.sessions.AddLine(1, "Tea", 20, "cup", ""))
	require.NoError(t, f.sessions.LinkCustomer(1, 7, "Asha"))

	_, err := f.billing.Checkout(context.Background(), 1, "Cash")
	require.NoError(t, err)

	p := f.pipe.lastPayload
	require.NotNil(t, p.CustomerID)
	assert.Equal(t, uint(7), *p.CustomerID)
	assert.Equal(t, "Asha", p.CustomerName)
}

func TestCheckoutDoesNotSealOnPipelineFailure(t *testing.T) {
	f := newBillingFixture(t)
	f.pipe.failBill = true
	require.NoError(t, f.sessions.AddLine(1, "Tea", 20, "cup", ""))

	_, err := f.billing.Checkout(context.Background(), 1, "Cash")
	require.Error(t, err)

	snap, _ := f.sessions.Snapshot(1)
	assert.False(t, snap.Locked, "a failed print leaves the table open for retry")
}

func TestSendKOTLeavesSessionOpen(t *testing.T) {
	f := newBillingFixture(t)
	require.NoError(t, f.sessions.AddLine(2, "Roti", 10, "pc", ""))

	_, err := f.billing.SendKOT(context.Background(), 2)
	require.NoError(t, err)

	require.NotNil(t, f.pipe.lastKOT)
	assert.Equal(t, 2, f.pipe.lastKOT.TableNo)

	snap, _ := f.sessions.Snapshot(2)
	assert.False(t, snap.Locked)

	_, err = f.billing.SendKOT(context.Background(), 2)
	require.NoError(t, err, "kitchen tickets can be sent repeatedly")
	assert.Equal(t, 2, f.pipe.kotCalls)
}

func TestSendKOTRefusesEmptyCart(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.billing.SendKOT(context.Background(), 1)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestReprintUnknownBill(t *testing.T) {
	f := newBillingFixture(t)

	_, err := f.billing.Reprint(context.Background(), 42)
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}
