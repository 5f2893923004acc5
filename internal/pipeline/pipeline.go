package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/kallospos/billing-api/internal/domain/entity"
	"github.com/kallospos/billing-api/internal/domain/repository"
	"github.com/kallospos/billing-api/pkg/printer"
	"github.com/rs/zerolog"
)

// Stage tracks a pipeline invocation through its strictly ordered
// sequence. Errored is reachable from any stage.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageRendering  Stage = "rendering"
	StageMeasuring  Stage = "measuring"
	StageCapturing  Stage = "capturing"
	StagePersisting Stage = "persisting"
	StagePrinting   Stage = "printing"
	StageClosed     Stage = "closed"
	StageErrored    Stage = "errored"
)

// Options configures the document pipeline.
type Options struct {
	BillDir string
	KOTDir  string
	// ReceiptWidth is the surface width in pixels, slightly wider than
	// the 300px template content to avoid scrollbars.
	ReceiptWidth int
	// InitialHeight is the pre-measurement surface height, tall enough
	// for long bills.
	InitialHeight int
	// SettleDelay is the buffer between payload injection and
	// measurement, allowing layout, fonts and the logo image to finish.
	SettleDelay time.Duration
	// CutterMargin is added to the measured content height so the
	// physical cutter does not clip the last line.
	CutterMargin int
	// StrictCommit makes a failed fiscal commit fail the invocation
	// instead of logging and continuing.
	StrictCommit bool
	// PrinterWidthDots is the thermal print head width.
	PrinterWidthDots int
}

// Result is resolved to the caller once the artifact is on disk and the
// fiscal record handled, before the physical print finishes. The till is
// never blocked on printer hardware.
type Result struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
	BillID  uint   `json:"bill_id,omitempty"`
}

// Pipeline turns bill and kitchen-ticket payloads into archived images,
// fiscal records and physical prints. Invocations are independent; each
// owns its own rendering surface and several may be in flight at once.
type Pipeline struct {
	surfaces SurfaceFactory
	bills    repository.BillRepository
	printer  printer.Printer
	opts     Options
	logger   zerolog.Logger
}

// New creates a document pipeline.
func New(
	surfaces SurfaceFactory,
	bills repository.BillRepository,
	prn printer.Printer,
	opts Options,
	logger zerolog.Logger,
) *Pipeline {
	if opts.ReceiptWidth <= 0 {
		opts.ReceiptWidth = 350
	}
	if opts.InitialHeight <= 0 {
		opts.InitialHeight = 2500
	}
	if opts.PrinterWidthDots <= 0 {
		opts.PrinterWidthDots = 384
	}
	return &Pipeline{
		surfaces: surfaces,
		bills:    bills,
		printer:  prn,
		opts:     opts,
		logger:   logger.With().Str("component", "pipeline").Logger(),
	}
}

// PrintBill runs the full receipt sequence for a checkout or reprint:
// render, settle, measure, capture, persist the artifact, commit the
// fiscal record (new bills only), then hand the job to the printer.
func (p *Pipeline) PrintBill(ctx context.Context, payload *entity.ReceiptPayload) (*Result, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode receipt payload: %w", err)
	}

	j := &job{
		p:           p,
		template:    TemplateReceipt,
		payload:     raw,
		outPath:     filepath.Join(p.opts.BillDir, billFilename(payload)),
		logicalTime: payload.Timestamp,
		logger: p.logger.With().
			Str("doc", "bill").
			Str("bill_no", payload.BillNo).
			Bool("reprint", payload.Reprint).
			Logger(),
	}
	if err := j.run(ctx); err != nil {
		return nil, err
	}

	var billID uint
	if !payload.Reprint {
		billID, err = p.commit(ctx, payload, j.outPath)
		if err != nil {
			if p.opts.StrictCommit {
				return nil, fmt.Errorf("%w: %v", ErrCommit, err)
			}
			// Best-effort archiving: the image artifact exists and the
			// print still goes out even though the fiscal row is lost.
			j.logger.Error().Err(err).
				Str("path", j.outPath).
				Msg("fiscal commit failed; continuing with artifact and print")
		}
	}

	p.submitPrint(j)

	return &Result{Success: true, Path: j.outPath, BillID: billID}, nil
}

// PrintKOT runs the kitchen-ticket variant: same render/capture/persist
// sequence, separate audit directory, no fiscal record ever.
func (p *Pipeline) PrintKOT(ctx context.Context, payload *entity.KOTPayload) (*Result, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode kot payload: %w", err)
	}

	j := &job{
		p:           p,
		template:    TemplateKOT,
		payload:     raw,
		outPath:     filepath.Join(p.opts.KOTDir, kotFilename(payload)),
		logicalTime: payload.Timestamp,
		logger:      p.logger.With().Str("doc", "kot").Int("table", payload.TableNo).Logger(),
	}
	if err := j.run(ctx); err != nil {
		return nil, err
	}

	p.submitPrint(j)

	return &Result{Success: true, Path: j.outPath}, nil
}

// commit writes the bill and its line rows through the store's atomic
// commit, embedding the artifact path.
func (p *Pipeline) commit(ctx context.Context, payload *entity.ReceiptPayload, artifactPath string) (uint, error) {
	bill := &entity.Bill{
		BillNo:      payload.BillNo,
		CustomerID:  payload.CustomerID,
		Subtotal:    payload.Subtotal,
		CGST:        payload.CGST,
		SGST:        payload.SGST,
		Total:       payload.Total,
		PaymentMode: payload.PaymentMode.OrDefault(),
		ImagePath:   artifactPath,
		CreatedAt:   payload.Timestamp,
	}

	items := make([]entity.BillItem, len(payload.Items))
	for i, it := range payload.Items {
		items[i] = entity.BillItem{
			Name:    it.Name,
			Qty:     it.Qty,
			Price:   it.Price,
			QtyType: it.QtyType,
		}
	}

	return p.bills.CreateWithItems(ctx, bill, items)
}

// submitPrint hands the captured image to the thermal printer on a
// detached goroutine. The caller's result has already been resolved; a
// slow or stalled printer only holds this goroutine. There is no timeout
// here: like the original print dialog, a stuck job waits until the
// hardware responds.
func (p *Pipeline) submitPrint(j *job) {
	img := j.image
	logger := j.logger

	go func() {
		decoded, err := jpeg.Decode(bytes.NewReader(img))
		if err != nil {
			logger.Error().Err(err).Msg("print skipped: captured image unreadable")
			return
		}
		data, err := printer.EncodeRaster(decoded, p.opts.PrinterWidthDots)
		if err != nil {
			logger.Error().Err(err).Msg("print skipped: raster encoding failed")
			return
		}
		if err := p.printer.Print(data); err != nil {
			logger.Error().Err(err).Msg("print submission failed")
			return
		}
		logger.Debug().Msg("print job submitted")
	}()
}

// job is the per-invocation state threaded through the stages.
type job struct {
	p           *Pipeline
	stage       Stage
	template    string
	payload     []byte
	outPath     string
	logicalTime time.Time
	image       []byte
	logger      zerolog.Logger
}

// run executes the render → settle → measure → capture → persist sequence.
// The surface is released on every path out of this function.
func (j *job) run(ctx context.Context) error {
	j.stage = StageIdle

	surface, err := j.p.surfaces.Acquire(ctx, j.p.opts.ReceiptWidth, j.p.opts.InitialHeight)
	if err != nil {
		j.stage = StageErrored
		return fmt.Errorf("acquire rendering surface: %w", err)
	}
	defer surface.Close()

	j.stage = StageRendering
	if err := surface.LoadTemplate(ctx, j.template); err != nil {
		j.stage = StageErrored
		return fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}
	if err := surface.InjectPayload(ctx, j.payload); err != nil {
		j.stage = StageErrored
		return fmt.Errorf("%w: %v", ErrTemplateLoad, err)
	}

	// Bounded settle buffer so layout, fonts and the logo finish loading
	// before measurement.
	select {
	case <-ctx.Done():
		j.stage = StageErrored
		return ctx.Err()
	case <-time.After(j.p.opts.SettleDelay):
	}

	j.stage = StageMeasuring
	height, err := surface.MeasureHeight(ctx, contentElementID)
	if err != nil {
		j.stage = StageErrored
		return fmt.Errorf("%w: %v", ErrMeasure, err)
	}
	height += j.p.opts.CutterMargin
	if err := surface.Resize(ctx, j.p.opts.ReceiptWidth, height); err != nil {
		j.stage = StageErrored
		return fmt.Errorf("%w: %v", ErrMeasure, err)
	}

	j.stage = StageCapturing
	j.image, err = surface.Capture(ctx)
	if err != nil {
		j.stage = StageErrored
		return fmt.Errorf("%w: %v", ErrCapture, err)
	}

	j.stage = StagePersisting
	if err := j.persist(); err != nil {
		j.stage = StageErrored
		return fmt.Errorf("%w: %v", ErrPersistArtifact, err)
	}

	j.logger.Info().Str("path", j.outPath).Int("height", height).Msg("document captured")
	j.stage = StageClosed
	return nil
}

// persist writes the artifact and stamps it with the logical bill time so
// the archive sorts by business time rather than capture time.
func (j *job) persist() error {
	if err := os.MkdirAll(filepath.Dir(j.outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(j.outPath, j.image, 0o644); err != nil {
		return err
	}
	return os.Chtimes(j.outPath, j.logicalTime, j.logicalTime)
}

// billFilename builds "Bill-<no>-<roundedTotal>-<DD-MM-YYYY>.jpg".
// Reprints get a time suffix so they never overwrite the original
// artifact.
func billFilename(payload *entity.ReceiptPayload) string {
	name := fmt.Sprintf("Bill-%s-%d-%s",
		payload.BillNo,
		int(math.Round(payload.Total)),
		payload.Timestamp.Format("02-01-2006"),
	)
	if payload.Reprint {
		name += "-" + time.Now().Format("150405")
	}
	return name + ".jpg"
}

// kotFilename builds "KOT-T<table>-<DD-MM-YYYY-HHMMSS>.jpg".
func kotFilename(payload *entity.KOTPayload) string {
	return fmt.Sprintf("KOT-T%d-%s.jpg",
		payload.TableNo,
		payload.Timestamp.Format("02-01-2006-150405"),
	)
}
