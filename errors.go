package deckgen

import (
	"errors"
	"fmt"
)

// ErrInvalidStructure is the base of every request validation error.
// Requests failing it never reach layout or rendering.
var ErrInvalidStructure = errors.New("invalid presentation structure")

// Structural validation errors. Each wraps ErrInvalidStructure.
var (
	ErrMissingTitle      = fmt.Errorf("%w: title is required", ErrInvalidStructure)
	ErrSlidesNotList     = fmt.Errorf("%w: slides must be a list", ErrInvalidStructure)
	ErrNoSlides          = fmt.Errorf("%w: at least one slide is required", ErrInvalidStructure)
	ErrUnsupportedFormat = fmt.Errorf("%w: unsupported format", ErrInvalidStructure)
)

// Sentinel errors for generation.
var (
	ErrRenderEngine   = errors.New("render engine failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)

// SlideBuildError reports a slide that could not be planned or serialized.
// Index is 1-based.
type SlideBuildError struct {
	Index int
	Err   error
}

func (e *SlideBuildError) Error() string {
	return fmt.Sprintf("slide %d: %v", e.Index, e.Err)
}

func (e *SlideBuildError) Unwrap() error {
	return e.Err
}

// renderError tags a capture failure with ErrRenderEngine and its stage.
func renderError(stage error, cause any) error {
	return fmt.Errorf("%w: %w: %v", ErrRenderEngine, stage, cause)
}
