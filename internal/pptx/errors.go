package pptx

import (
	"errors"
	"fmt"
)

// Sentinel errors for package building.
var (
	ErrEmptyDeck     = errors.New("deck has no slides")
	ErrSlideTitle    = errors.New("slide is missing a title")
	ErrSlideType     = errors.New("slide is missing a type")
	ErrInvalidColor  = errors.New("invalid theme color")
	ErrTemplateParse = errors.New("package template parsing failed")
	ErrPartWrite     = errors.New("failed to write package part")
	ErrUnknownBlock  = errors.New("unknown block type")
)

// SlideError reports a failure while serializing one slide.
// Index is 1-based.
type SlideError struct {
	Index int
	Err   error
}

func (e *SlideError) Error() string {
	return fmt.Sprintf("slide %d: %v", e.Index, e.Err)
}

func (e *SlideError) Unwrap() error { return e.Err }
