package deckgen

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/alnah/go-deckgen/internal/layout"
)

// SlideType selects the layout template for a slide.
type SlideType string

// Slide types.
const (
	SlideTitle   SlideType = SlideType(layout.TypeTitle)
	SlideContent SlideType = SlideType(layout.TypeContent)
	SlideImage   SlideType = SlideType(layout.TypeImage)
	SlideChart   SlideType = SlideType(layout.TypeChart)
)

// Format is the artifact format.
type Format string

// Output formats.
const (
	FormatPPTX Format = "pptx"
	FormatPDF  Format = "pdf"
)

// DefaultFormat is used when a request does not name a format.
const DefaultFormat = FormatPPTX

// Media types per format.
const (
	MediaTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MediaTypePDF  = "application/pdf"
)

// ParseFormat resolves a format name (case-insensitive). Empty selects DefaultFormat.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultFormat, nil
	case string(FormatPPTX):
		return FormatPPTX, nil
	case string(FormatPDF):
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q (must be pptx or pdf)", ErrUnsupportedFormat, s)
	}
}

// MediaType returns the artifact media type.
func (f Format) MediaType() string {
	if f == FormatPDF {
		return MediaTypePDF
	}
	return MediaTypePPTX
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatPDF {
		return "pdf"
	}
	return "pptx"
}

// Slide is one slide of a presentation. Content is raw text; newlines and
// commas separate its items.
type Slide struct {
	Title   string    `json:"title" yaml:"title"`
	Content string    `json:"content" yaml:"content"`
	Type    SlideType `json:"type" yaml:"type"`
}

// Presentation is an ordered deck of slides.
type Presentation struct {
	Title  string  `json:"title" yaml:"title"`
	Slides []Slide `json:"slides" yaml:"slides"`
}

// Request is one generation request.
type Request struct {
	Presentation `yaml:",inline"`

	Format Format `json:"format,omitempty" yaml:"format,omitempty"`

	// Author is written to the package document properties.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// HTMLOnly skips the capture step for PDF requests and returns only the
	// rendered markup (for debugging).
	HTMLOnly bool `json:"-" yaml:"-"`
}

// Validate checks the request structure. Per-slide fields are checked later,
// during generation, and reported as *SlideBuildError.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	if len(r.Slides) == 0 {
		return ErrNoSlides
	}
	if _, err := ParseFormat(string(r.Format)); err != nil {
		return err
	}
	return nil
}

// Result is a generated artifact.
type Result struct {
	Data      []byte // PPTX or PDF bytes; empty in HTMLOnly mode
	HTML      []byte // rendered markup (PDF requests only)
	Format    Format
	MediaType string
	Filename  string
	Slides    int
	Duration  time.Duration
}

// Filename returns the artifact file name for a presentation title: the
// title lower-cased with every character that is not a letter or digit
// replaced by an underscore, plus the format extension.
func Filename(title string, f Format) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte('_')
	}
	return sb.String() + "." + f.Extension()
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 landscape with half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationLandscape,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}
