package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromiumFactory acquires hidden rendering surfaces backed by headless
// Chromium tabs, one tab per pipeline invocation. The browser process is
// shared and started lazily on the first acquire.
type ChromiumFactory struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	quality  int
}

// NewChromiumFactory prepares the shared browser allocator. Call Close
// when the process shuts down to reap the browser.
func NewChromiumFactory(ctx context.Context, captureQuality int) *ChromiumFactory {
	if captureQuality <= 0 || captureQuality > 100 {
		captureQuality = 80
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("force-device-scale-factor", "1"),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	return &ChromiumFactory{
		allocCtx: allocCtx,
		cancel:   cancel,
		quality:  captureQuality,
	}
}

// Acquire opens a fresh off-screen tab sized for a receipt.
func (f *ChromiumFactory) Acquire(_ context.Context, width, height int) (Surface, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx)
	if err := chromedp.Run(tabCtx, chromedp.EmulateViewport(int64(width), int64(height))); err != nil {
		cancelTab()
		return nil, fmt.Errorf("open rendering tab: %w", err)
	}
	return &chromiumSurface{ctx: tabCtx, cancel: cancelTab, quality: f.quality}, nil
}

// Close shuts down the shared browser process.
func (f *ChromiumFactory) Close() {
	f.cancel()
}

// chromiumSurface is one hidden tab. All operations run against the tab's
// context; Close tears the tab down.
type chromiumSurface struct {
	ctx     context.Context
	cancel  context.CancelFunc
	quality int
}

func (s *chromiumSurface) LoadTemplate(ctx context.Context, name string) error {
	html, err := templateHTML(name)
	if err != nil {
		return err
	}
	url := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))
	return chromedp.Run(s.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("#"+contentElementID),
	)
}

func (s *chromiumSurface) InjectPayload(ctx context.Context, payload []byte) error {
	script := fmt.Sprintf("window.payload = %s; render();", payload)
	return chromedp.Run(s.ctx, chromedp.Evaluate(script, nil))
}

func (s *chromiumSurface) MeasureHeight(ctx context.Context, elementID string) (int, error) {
	var height int
	expr := fmt.Sprintf("document.getElementById(%q).scrollHeight", elementID)
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(expr, &height)); err != nil {
		return 0, err
	}
	if height <= 0 {
		return 0, fmt.Errorf("element %q has no rendered height", elementID)
	}
	return height, nil
}

func (s *chromiumSurface) Resize(ctx context.Context, width, height int) error {
	return chromedp.Run(s.ctx, chromedp.EmulateViewport(int64(width), int64(height)))
}

func (s *chromiumSurface) Capture(ctx context.Context) ([]byte, error) {
	var buf []byte
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatJpeg).
			WithQuality(int64(s.quality)).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *chromiumSurface) Close() error {
	s.cancel()
	return nil
}
