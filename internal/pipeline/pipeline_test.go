package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/enum"
	"github.com/kallospos/billing-api/internal/domain/repository"
	"github.com/kallospos/billing-api/pkg/printer"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	failTemplate bool
	failMeasure  bool
	failCapture  bool

	loadedTemplate string
	payload        []byte
	measuredID     string
	resizedWidth   int
	resizedHeight  int
	closed         int
}

func (s *fakeSurface) LoadTemplate(_ context.Context, name string) error {
	if s.failTemplate {
		return errors.New("template resource unreachable")
	}
	s.loadedTemplate = name
	return nil
}

func (s *fakeSurface) InjectPayload(_ context.Context, payload []byte) error {
	s.payload = payload
	return nil
}

func (s *fakeSurface) MeasureHeight(_ context.Context, elementID string) (int, error) {
	if s.failMeasure {
		return 0, errors.New("element not found")
	}
	s.measuredID = elementID
	return 400, nil
}

func (s *fakeSurface) Resize(_ context.Context, width, height int) error {
	s.resizedWidth = width
	s.resizedHeight = height
	return nil
}

func (s *fakeSurface) Capture(_ context.Context) ([]byte, error) {
	if s.failCapture {
		return nil, errors.New("rasterization failed")
	}
	return []byte("jpeg-bytes"), nil
}

func (s *fakeSurface) Close() error {
	s.closed++
	return nil
}

type fakeFactory struct {
	surface    *fakeSurface
	acquireErr error
}

func (f *fakeFactory) Acquire(_ context.Context, width, height int) (Surface, error) {
	if f.acquireErr != nil {
		return nil, f.acquireErr
	}
	return f.surface, nil
}

type fakeBillRepo struct {
	failCommit bool
	commits    int
	lastBill   *entity.Bill
	lastItems  []entity.BillItem
}

func (r *fakeBillRepo) CreateWithItems(_ context.Context, bill *entity.Bill, items []entity.BillItem) (uint, error) {
	if r.failCommit {
		return 0, errors.New("disk I/O error")
	}
	r.commits++
	r.lastBill = bill
	r.lastItems = items
	bill.ID = uint(r.commits)
	return bill.ID, nil
}

func (r *fakeBillRepo) GetByID(context.Context, uint) (*entity.Bill, error) { return nil, nil }
func (r *fakeBillRepo) List(context.Context, int, int) ([]repository.BillSummary, int64, error) {
	return nil, 0, nil
}
func (r *fakeBillRepo) GetItems(context.Context, uint) ([]entity.BillItem, error) { return nil, nil }
func (r *fakeBillRepo) CountAfter(context.Context, int64) (int64, error)          { return 0, nil }
func (r *fakeBillRepo) MaxID(context.Context) (int64, error)                      { return 0, nil }

func newTestPipeline(t *testing.T, surface *fakeSurface, repo *fakeBillRepo, strict bool) *Pipeline {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		BillDir:      filepath.Join(dir, "bills"),
		KOTDir:       filepath.Join(dir, "kot"),
		ReceiptWidth: 350,
		SettleDelay:  time.Millisecond,
		CutterMargin: 40,
		StrictCommit: strict,
	}
	return New(&fakeFactory{surface: surface}, repo, printer.NewNullPrinter(), opts, zerolog.Nop())
}

func testPayload() *entity.ReceiptPayload {
	return &entity.ReceiptPayload{
		Items: []entity.ReceiptLine{
			{Name: "Tea", Qty: 2, Price: 20, QtyType: "cup"},
			{Name: "Samosa", Qty: 3, Price: 10, QtyType: "pc"},
		},
		Subtotal:    70,
		CGST:        1.67,
		SGST:        1.67,
		Total:       70,
		BillNo:      "07",
		PaymentMode: enum.PaymentModeCash,
		Timestamp:   time.Date(2024, 3, 15, 13, 45, 0, 0, time.Local),
	}
}

func TestPrintBillSuccess(t *testing.T) {
	surface := &fakeSurface{}
	repo := &fakeBillRepo{}
	p := newTestPipeline(t, surface, repo, false)

	res, err := p.PrintBill(context.Background(), testPayload())
	require.NoError(t, err)
	require.True(t, res.Success)

	assert.Equal(t, TemplateReceipt, surface.loadedTemplate)
	assert.Equal(t, "document", surface.measuredID)
	assert.Equal(t, 1, surface.closed, "surface must be released exactly once")

	// Artifact on disk, named from the bill number, stamped with the
	// logical bill time.
	assert.Equal(t, "Bill-07-70-15-03-2024.jpg", filepath.Base(res.Path))
	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(time.Date(2024, 3, 15, 13, 45, 0, 0, time.Local)))

	// Fiscal record committed with the artifact path embedded.
	require.Equal(t, 1, repo.commits)
	assert.Equal(t, res.Path, repo.lastBill.ImagePath)
	assert.Len(t, repo.lastItems, 2)
	assert.Equal(t, uint(1), res.BillID)
}

func TestPrintBillMeasureAddsCutterMargin(t *testing.T) {
	surface := &fakeSurface{}
	p := newTestPipeline(t, surface, &fakeBillRepo{}, false)

	_, err := p.PrintBill(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, 440, surface.resizedHeight, "measured 400 + 40 cutter margin")
	assert.Equal(t, 350, surface.resizedWidth)
}

func TestPrintBillTemplateLoadFailure(t *testing.T) {
	surface := &fakeSurface{failTemplate: true}
	repo := &fakeBillRepo{}
	p := newTestPipeline(t, surface, repo, false)

	_, err := p.PrintBill(context.Background(), testPayload())
	require.ErrorIs(t, err, ErrTemplateLoad)
	assert.Equal(t, 1, surface.closed, "surface must be released on template failure")
	assert.Zero(t, repo.commits)
}

func TestPrintBillCaptureFailure(t *testing.T) {
	surface := &fakeSurface{failCapture: true}
	repo := &fakeBillRepo{}
	p := newTestPipeline(t, surface, repo, false)

	_, err := p.PrintBill(context.Background(), testPayload())
	require.ErrorIs(t, err, ErrCapture)
	assert.Equal(t, 1, surface.closed)
	assert.Zero(t, repo.commits)
}

func TestPrintBillMeasureFailure(t *testing.T) {
	surface := &fakeSurface{failMeasure: true}
	p := newTestPipeline(t, surface, &fakeBillRepo{}, false)

	_, err := p.PrintBill(context.Background(), testPayload())
	require.ErrorIs(t, err, ErrMeasure)
	assert.Equal(t, 1, surface.closed)
}

func TestPrintBillReprintSkipsCommit(t *testing.T) {
	surface := &fakeSurface{}
	repo := &fakeBillRepo{}
	p := newTestPipeline(t, surface, repo, false)

	payload := testPayload()
	payload.Reprint = true

	res, err := p.PrintBill(context.Background(), payload)
	require.NoError(t, err)

	assert.Zero(t, repo.commits, "reprint must not create a new fiscal record")
	assert.Zero(t, res.BillID)

	// The reprint artifact carries a disambiguating time suffix.
	base := filepath.Base(res.Path)
	assert.Regexp(t, `^Bill-07-70-15-03-2024-\d{6}\.jpg$`, base)
	_, err = os.Stat(res.Path)
	assert.NoError(t, err)
}

func TestPrintBillCommitFailureContinues(t *testing.T) {
	surface := &fakeSurface{}
	repo := &fakeBillRepo{failCommit: true}
	p := newTestPipeline(t, surface, repo, false)

	res, err := p.PrintBill(context.Background(), testPayload())
	require.NoError(t, err, "best-effort mode: artifact and print continue past a failed commit")
	assert.True(t, res.Success)
	_, statErr := os.Stat(res.Path)
	assert.NoError(t, statErr)
}

func TestPrintBillCommitFailureStrict(t *testing.T) {
	surface := &fakeSurface{}
	repo := &fakeBillRepo{failCommit: true}
	p := newTestPipeline(t, surface, repo, true)

	_, err := p.PrintBill(context.Background(), testPayload())
	require.ErrorIs(t, err, ErrCommit)
	assert.Equal(t, 1, surface.closed)
}

func TestPrintBillRejectsInvalidPayload(t *testing.T) {
	p := newTestPipeline(t, &fakeSurface{}, &fakeBillRepo{}, false)

	_, err := p.PrintBill(context.Background(), &entity.ReceiptPayload{BillNo: "01", Timestamp: time.Now()})
	require.Error(t, err)
}

func TestPrintKOTNeverCommits(t *testing.T) {
	surface := &fakeSurface{}
	repo := &fakeBillRepo{}
	p := newTestPipeline(t, surface, repo, false)

	res, err := p.PrintKOT(context.Background(), &entity.KOTPayload{
		Items:     []entity.ReceiptLine{{Name: "Roti", Qty: 4, Price: 10, QtyType: "pc"}},
		TableNo:   5,
		Timestamp: time.Date(2024, 3, 15, 19, 30, 0, 0, time.Local),
	})
	require.NoError(t, err)

	assert.Zero(t, repo.commits)
	assert.Equal(t, TemplateKOT, surface.loadedTemplate)
	assert.Equal(t, "KOT-T5-15-03-2024-193000.jpg", filepath.Base(res.Path))
	assert.Equal(t, 1, surface.closed)
}

func TestTemplatesEmbedded(t *testing.T) {
	for _, name := range []string{TemplateReceipt, TemplateKOT} {
		html, err := templateHTML(name)
		require.NoError(t, err)
		assert.Contains(t, html, `id="document"`)
	}
	_, err := templateHTML("letterhead")
	assert.Error(t, err)
}
