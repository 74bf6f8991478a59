// Package deckgen generates slide decks (PPTX or PDF) from structured
// presentation descriptions.
//
// # Quick Start
//
// Create a generator, generate a deck, and close when done:
//
//	gen, err := deckgen.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, deckgen.Request{
//	    Presentation: deckgen.Presentation{
//	        Title: "Quarterly Review",
//	        Slides: []deckgen.Slide{
//	            {Title: "Quarterly Review", Content: "Q3 2024", Type: deckgen.SlideTitle},
//	            {Title: "Highlights", Content: "Revenue up\nCosts down", Type: deckgen.SlideContent},
//	        },
//	    },
//	    Format: deckgen.FormatPPTX,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.Data, 0644)
//
// Request bodies received over the wire (JSON or YAML) are decoded with
// DecodeRequest, which normalizes loosely typed slide fields and rejects
// structurally invalid input with errors wrapping ErrInvalidStructure.
//
// # Generation Pipeline
//
//  1. Structural validation (title, slides, format)
//  2. Slide planning: each slide is laid out independently into positioned
//     text and shape blocks; inline **emphasis** becomes bold runs and
//     content is split into bullets
//  3. Serialization: PPTX packages are written directly (OOXML); PDF decks
//     are rendered to one fixed-size page per slide and printed by headless
//     Chrome (go-rod)
//
// A failing slide aborts the whole request with a *SlideBuildError naming
// its 1-based index. No partial artifact is ever returned.
//
// # Configuration
//
// Use functional options to customize the generator:
//
//	gen, err := deckgen.NewGenerator(
//	    deckgen.WithTimeout(2 * time.Minute),
//	    deckgen.WithStyle("midnight"),
//	    deckgen.WithPageSettings(&deckgen.PageSettings{Size: "letter", Orientation: "landscape", Margin: 0.5}),
//	    deckgen.WithLogger(logger),
//	)
//
// # Parallel Processing
//
// Every PDF request launches its own browser. GeneratorPool bounds how many
// run at once:
//
//	pool := deckgen.NewGeneratorPool(4)
//	defer pool.Close()
//
//	gen, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(gen)
//	result, err := gen.Generate(ctx, req)
//
// # Custom Assets
//
// Override built-in themes and the page template using AssetLoader:
//
//	loader, err := deckgen.NewAssetLoader("/path/to/assets")
//	gen, err := deckgen.NewGenerator(deckgen.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── custom/
//	        └── deck.html
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package deckgen
