package pipeline

import "context"

// Surface is a disposable off-screen rendering surface. Each pipeline
// invocation acquires its own surface and must release it with Close on
// every exit path, including failures.
//
// The original till drove a hidden browser window through this exact
// sequence; the production implementation (chromium.go) does the same
// against headless Chromium, and tests script a fake.
type Surface interface {
	// LoadTemplate loads the named embedded document template.
	LoadTemplate(ctx context.Context, name string) error
	// InjectPayload hands the serialized payload to the loaded template
	// and triggers its render function.
	InjectPayload(ctx context.Context, payload []byte) error
	// MeasureHeight returns the rendered natural height in pixels of the
	// element with the given id.
	MeasureHeight(ctx context.Context, elementID string) (int, error)
	// Resize adjusts the surface viewport so a capture exactly frames the
	// content.
	Resize(ctx context.Context, width, height int) error
	// Capture rasterizes the surface to compressed image bytes (JPEG).
	Capture(ctx context.Context) ([]byte, error)
	// Close releases the surface. Safe to call exactly once.
	Close() error
}

// SurfaceFactory acquires fresh rendering surfaces. Several surfaces may
// be live at once; they are fully independent.
type SurfaceFactory interface {
	Acquire(ctx context.Context, width, height int) (Surface, error)
}

// Template names understood by LoadTemplate.
const (
	TemplateReceipt = "receipt"
	TemplateKOT     = "kot"
)

// Element ids measured after rendering. The templates wrap their content
// in a container with this id.
const contentElementID = "document"
