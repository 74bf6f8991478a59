package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-deckgen/internal/markup"
)

// Sentinel errors for slide planning.
var (
	ErrMissingTitle = errors.New("slide is missing a title")
	ErrMissingType  = errors.New("slide is missing a type")
	ErrUnknownType  = errors.New("unknown slide type")
)

// SlideType selects the layout template.
type SlideType string

// Slide types.
const (
	TypeTitle   SlideType = "title"
	TypeContent SlideType = "content"
	TypeImage   SlideType = "image"
	TypeChart   SlideType = "chart"
)

// Placeholder labels.
const (
	ImagePlaceholderLabel = "[Image Placeholder]"
	ChartPlaceholderLabel = "[Chart Placeholder]"
)

// Package palette (RRGGBB).
const (
	ColorPrimary         = "2C3E50"
	ColorMuted           = "7F8C8D"
	ColorBody            = "34495E"
	ColorPlaceholderFill = "F8F9FA"
	ColorPlaceholderLine = "BDC3C7"
	ColorBackground      = "FFFFFF"
)

// HeaderBarHeight is the height of the accent bar drawn across the top of
// every slide by both serializers.
const HeaderBarHeight = 0.3

// Content slide geometry.
const (
	contentOriginY   = 1.8
	subheadingOffset = 0.5
	bulletPitch      = 0.45
	bulletHeight     = 0.4
)

// SlideData is the planner's view of one slide.
type SlideData struct {
	Title   string
	Content string
	Type    SlideType
}

// Validate reports the first missing or unknown field.
func (s SlideData) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrMissingTitle
	}
	switch s.Type {
	case "":
		return ErrMissingType
	case TypeTitle, TypeContent, TypeImage, TypeChart:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, s.Type)
	}
}

// Plan computes the ordered blocks for one slide.
// index is the zero-based slide position; deckTitle replaces the slide title
// on an opening title slide.
func Plan(s SlideData, index int, deckTitle string) ([]Block, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Type {
	case TypeTitle:
		return planTitle(s, index, deckTitle), nil
	case TypeContent:
		return planContent(s), nil
	case TypeImage:
		return planPlaceholder(s, imageTemplate), nil
	case TypeChart:
		return planPlaceholder(s, chartTemplate), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, s.Type)
}

// planTitle builds an opening or section-divider title slide.
func planTitle(s SlideData, index int, deckTitle string) []Block {
	heading := &TextBlock{
		Kind: RoleSectionTitle,
		Rect: Rect{X: 1, Y: 2.5, W: 8, H: 1},
		Runs: markup.ParseInline(s.Title),
		Style: TextStyle{
			Size: 36, Bold: true, Color: ColorPrimary,
			Align: AlignCenter, VAlign: VAlignMiddle,
		},
	}
	subtitleSize := 20.0

	if index == 0 {
		heading.Kind = RoleDeckTitle
		heading.Rect = Rect{X: 1, Y: 2, W: 8, H: 1.5}
		heading.Runs = markup.ParseInline(deckTitle)
		heading.Style.Size = 44
		subtitleSize = 24
	}

	blocks := []Block{heading}
	if s.Content != "" {
		blocks = append(blocks, &TextBlock{
			Kind: RoleSubtitle,
			Rect: Rect{X: 1, Y: 3.8, W: 8, H: 0.8},
			Runs: markup.ParseInline(s.Content),
			Style: TextStyle{
				Size: subtitleSize, Color: ColorMuted,
				Align: AlignCenter, VAlign: VAlignMiddle,
			},
		})
	}
	return blocks
}

// planContent builds a header, optional sub-heading and bullet rows.
// With no bullets the raw content becomes a single paragraph.
func planContent(s SlideData) []Block {
	blocks := []Block{&TextBlock{
		Kind: RoleHeader,
		Rect: Rect{X: 0.5, Y: 0.5, W: 9, H: 0.8},
		Runs: markup.ParseInline(s.Title),
		Style: TextStyle{
			Size: 32, Bold: true, Color: ColorPrimary,
			Align: AlignCenter, VAlign: VAlignTop,
		},
	}}

	extracted := markup.ExtractBullets(s.Content)
	if len(extracted.Bullets) == 0 {
		return append(blocks, &TextBlock{
			Kind: RoleParagraph,
			Rect: Rect{X: 0.5, Y: contentOriginY, W: 9, H: 3},
			Runs: markup.ParseInline(s.Content),
			Style: TextStyle{
				Size: 18, Color: ColorBody,
				Align: AlignLeft, VAlign: VAlignTop,
			},
		})
	}

	y := contentOriginY
	if extracted.Heading != "" && extracted.Heading != s.Title {
		blocks = append(blocks, &TextBlock{
			Kind: RoleSubheading,
			Rect: Rect{X: 0.8, Y: y, W: 8.4, H: 0.4},
			Runs: markup.ParseInline(extracted.Heading),
			Style: TextStyle{
				Size: 22, Bold: true, Color: ColorBody,
				Align: AlignLeft, VAlign: VAlignTop,
			},
		})
		y += subheadingOffset
	}

	for i, bullet := range extracted.Bullets {
		blocks = append(blocks, &TextBlock{
			Kind:   RoleBullet,
			Rect:   Rect{X: 0.8, Y: y + float64(i)*bulletPitch, W: 8.4, H: bulletHeight},
			Runs:   markup.ParseInline(bullet),
			Bullet: true,
			Style: TextStyle{
				Size: 18, Color: ColorBody,
				Align: AlignLeft, VAlign: VAlignTop,
			},
		})
	}
	return blocks
}

// placeholderTemplate holds the geometry that differs between image and
// chart slides.
type placeholderTemplate struct {
	label    string
	box      Rect
	captionY float64
}

var (
	imageTemplate = placeholderTemplate{
		label:    ImagePlaceholderLabel,
		box:      Rect{X: 2, Y: 1.5, W: 6, H: 3},
		captionY: 4.5,
	}
	chartTemplate = placeholderTemplate{
		label:    ChartPlaceholderLabel,
		box:      Rect{X: 1.5, Y: 1.5, W: 7, H: 2.5},
		captionY: 4.2,
	}
)

// planPlaceholder builds a header, a dashed placeholder box and an optional caption.
func planPlaceholder(s SlideData, tpl placeholderTemplate) []Block {
	blocks := []Block{
		&TextBlock{
			Kind: RoleHeader,
			Rect: Rect{X: 0.5, Y: 0.5, W: 9, H: 0.8},
			Runs: markup.ParseInline(s.Title),
			Style: TextStyle{
				Size: 28, Bold: true, Color: ColorPrimary,
				Align: AlignLeft, VAlign: VAlignTop,
			},
		},
		&ShapeBlock{
			Kind:   RolePlaceholder,
			Rect:   tpl.box,
			Fill:   ColorPlaceholderFill,
			Border: Border{Color: ColorPlaceholderLine, Width: 2, Dashed: true},
			Label:  tpl.label,
			LabelStyle: TextStyle{
				Size: 16, Color: ColorMuted,
				Align: AlignCenter, VAlign: VAlignMiddle,
			},
		},
	}

	if s.Content != "" {
		blocks = append(blocks, &TextBlock{
			Kind: RoleCaption,
			Rect: Rect{X: 0.5, Y: tpl.captionY, W: 9, H: 0.8},
			Runs: markup.ParseInline(s.Content),
			Style: TextStyle{
				Size: 16, Color: ColorBody,
				Align: AlignCenter, VAlign: VAlignTop,
			},
		})
	}
	return blocks
}
