package deckgen

import (
	"fmt"
	"math"
	"strings"

	"github.com/alnah/go-deckgen/internal/pipeline"
)

// cssPixelsPerInch is the CSS reference resolution.
const cssPixelsPerInch = 96

// paperSize holds portrait paper dimensions in inches.
type paperSize struct {
	width  float64
	height float64
}

var pageDimensions = map[string]paperSize{
	PageSizeLetter: {width: 8.5, height: 11},
	PageSizeA4:     {width: 8.27, height: 11.69},
	PageSizeLegal:  {width: 8.5, height: 14},
}

// resolvePageDimensions returns paper width, height and margin in inches.
// Nil or zero fields fall back to DefaultPageSettings.
func resolvePageDimensions(page *PageSettings) (width, height, margin float64) {
	defaults := DefaultPageSettings()
	if page == nil {
		page = defaults
	}

	size := strings.ToLower(page.Size)
	dims, ok := pageDimensions[size]
	if !ok {
		dims = pageDimensions[defaults.Size]
	}

	orientation := strings.ToLower(page.Orientation)
	if orientation == "" {
		orientation = defaults.Orientation
	}

	width, height = dims.width, dims.height
	if orientation == OrientationLandscape {
		width, height = height, width
	}

	margin = page.Margin
	if margin == 0 {
		margin = DefaultMargin
	}
	return width, height, margin
}

// slideSizeFor fits a 16:9 slide inside the printable area of the page,
// never larger than pipeline.DefaultSlideSize.
func slideSizeFor(page *PageSettings) pipeline.SlideSize {
	w, h, margin := resolvePageDimensions(page)
	printW := (w - 2*margin) * cssPixelsPerInch
	printH := (h - 2*margin) * cssPixelsPerInch

	def := pipeline.DefaultSlideSize
	width := math.Min(def.Width, printW)
	height := width * def.Height / def.Width
	if height > printH {
		height = printH
		width = height * def.Width / def.Height
	}
	return pipeline.SlideSize{Width: math.Floor(width), Height: math.Floor(height)}
}

// buildPageCSS generates the @page rule matching the capture settings so the
// markup previews with the same paper as the PDF.
func buildPageCSS(page *PageSettings) string {
	w, h, margin := resolvePageDimensions(page)
	return fmt.Sprintf(`
/* Page */
@page {
  size: %.2fin %.2fin;
  margin: %.2fin;
}
html, body {
  -webkit-print-color-adjust: exact;
  print-color-adjust: exact;
}
`, w, h, margin)
}
