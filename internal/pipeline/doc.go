// Package pipeline turns planned slides into a styled HTML document.
//
// It covers two stages:
//   - Page rendering: one fixed-size <section> per slide from a deck
//     template, blocks positioned absolutely from their layout rectangles
//   - CSS injection of the selected page theme
//
// PDF capture is handled separately by the root deckgen package using
// headless Chrome (go-rod). This separation keeps the pipeline focused on
// document structure, while capture handles paper size, margins and
// browser-based rendering concerns.
package pipeline
