package pipeline

import "errors"

// Pipeline failures are terminal for the invocation: there are no retries,
// and the rendering surface is always released before the error surfaces.
var (
	// ErrTemplateLoad means the document template resource could not be
	// loaded into the surface.
	ErrTemplateLoad = errors.New("pipeline: template load failed")

	// ErrMeasure means the rendered content's height could not be read.
	ErrMeasure = errors.New("pipeline: content measurement failed")

	// ErrCapture means the surface could not be rasterized.
	ErrCapture = errors.New("pipeline: capture failed")

	// ErrPersistArtifact means the captured image could not be written to
	// the archive directory.
	ErrPersistArtifact = errors.New("pipeline: artifact write failed")

	// ErrCommit means the fiscal record failed to save. It only surfaces
	// to callers when strict commit mode is enabled; otherwise the
	// pipeline logs it and continues with the artifact and print.
	ErrCommit = errors.New("pipeline: fiscal commit failed")
)
