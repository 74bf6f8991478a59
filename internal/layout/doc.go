// Package layout computes positioned content blocks for a single slide.
//
// Plan is a pure function of the slide, its position in the deck and the deck
// title. It returns an ordered list of Blocks, each either a *TextBlock or a
// *ShapeBlock, placed on a fixed 10 x 5.625 inch canvas. Both output
// serializers (the PPTX package writer and the HTML page renderer) consume the
// same blocks, which keeps the two formats visually aligned.
//
// Coordinates are constants keyed by slide type and row index. Nothing is
// measured: long text is not wrapped, shrunk or reflowed.
package layout
