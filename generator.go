package deckgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-deckgen/internal/assets"
	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/pipeline"
	"github.com/alnah/go-deckgen/internal/pptx"
)

// packageWriter serializes planned slides into a deck package.
type packageWriter interface {
	Build(ctx context.Context, d pptx.Deck) ([]byte, error)
}

// Compile-time interface implementation checks.
var (
	_ packageWriter         = (*pptx.Builder)(nil)
	_ pipeline.DeckRenderer = (*pipeline.PageRenderer)(nil)
	_ pipeline.CSSInjector  = (*pipeline.CSSInjection)(nil)
	_ assets.AssetLoader    = (*publicToInternalAdapter)(nil)
)

// Generator orchestrates deck generation: validation, slide planning and
// serialization to PPTX, or page rendering and capture to PDF.
// Create with NewGenerator(), call Generate() per request, and Close() when done.
// A Generator is safe for concurrent use.
type Generator struct {
	cfg               generatorConfig
	logger            *log.Logger
	now               func() time.Time
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	packageWriter     packageWriter
	pageRenderer      pipeline.DeckRenderer
	cssInjector       pipeline.CSSInjector
	capturer          capturer
}

// plannedSlide is one slide after layout.
type plannedSlide struct {
	title  string
	typ    layout.SlideType
	blocks []layout.Block
}

// NewGenerator creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithStyle, WithAssetLoader, WithLogger).
// Returns error if asset loading, template parsing or page settings fail.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		logger:      discardLogger(),
		now:         time.Now,
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.cfg.lang == "" {
		g.cfg.lang = defaultLang
	}

	if err := g.cfg.page.Validate(); err != nil {
		return nil, err
	}

	// Handle WithAssetPath: resolve to internal loader
	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		g.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if g.publicAssetLoader != nil {
		g.assetLoader = &publicToInternalAdapter{pub: g.publicAssetLoader}
	}

	// Resolve style input (name, path, or CSS content) to CSS content
	if err := g.resolveStyle(); err != nil {
		return nil, err
	}

	if g.pageRenderer == nil {
		templateSet := g.cfg.templateSet
		if templateSet == nil {
			var err error
			templateSet, err = g.assetLoader.LoadTemplateSet(assets.DefaultTemplateSetName)
			if err != nil {
				return nil, fmt.Errorf("loading default template set: %w", convertAssetError(err))
			}
		}
		renderer, err := pipeline.NewPageRenderer(templateSet.Deck, slideSizeFor(g.cfg.page))
		if err != nil {
			return nil, fmt.Errorf("initializing page renderer: %w", err)
		}
		g.pageRenderer = renderer
	}

	// Create package writer if not injected (e.g., by tests)
	if g.packageWriter == nil {
		builder, err := pptx.NewBuilder(pptx.WithClock(g.now))
		if err != nil {
			return nil, fmt.Errorf("initializing package writer: %w", err)
		}
		g.packageWriter = builder
	}

	if g.capturer == nil {
		g.capturer = newRodCapturer(g.logger)
	}

	return g, nil
}

// Generate validates the request, plans every slide and serializes the deck
// in the requested format. Any failure aborts the request; no partial
// artifact is returned. For PDF requests with HTMLOnly set, capture is
// skipped and only Result.HTML is filled.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) Generate(ctx context.Context, req Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}

	if g.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.timeout)
		defer cancel()
	}

	start := g.now()
	slides, err := g.plan(ctx, req.Presentation)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Format:    format,
		MediaType: format.MediaType(),
		Filename:  Filename(req.Title, format),
		Slides:    len(slides),
	}

	switch format {
	case FormatPDF:
		err = g.generatePDF(ctx, req, slides, res)
	default:
		err = g.generatePPTX(ctx, req, slides, res)
	}
	if err != nil {
		return nil, err
	}

	res.Duration = g.now().Sub(start)
	g.logger.Info("deck generated",
		"format", format,
		"slides", res.Slides,
		"bytes", len(res.Data),
		"duration", res.Duration)
	return res, nil
}

// plan lays out every slide in parallel. Results keep input order; when
// several slides fail, the lowest index is reported.
func (g *Generator) plan(ctx context.Context, p Presentation) ([]plannedSlide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slides := make([]plannedSlide, len(p.Slides))
	errs := make([]error, len(p.Slides))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range p.Slides {
		eg.Go(func() error {
			data := layout.SlideData{
				Title:   s.Title,
				Content: s.Content,
				Type:    layout.SlideType(s.Type),
			}
			blocks, err := layout.Plan(data, i, p.Title)
			if err != nil {
				errs[i] = err
				return err
			}
			slides[i] = plannedSlide{title: s.Title, typ: data.Type, blocks: blocks}
			return nil
		})
	}
	_ = eg.Wait() // errors are collected per index

	for i, err := range errs {
		if err != nil {
			return nil, &SlideBuildError{Index: i + 1, Err: err}
		}
	}
	for i, s := range slides {
		g.logger.Debug("slide planned", "index", i+1, "type", s.typ, "blocks", len(s.blocks))
	}
	return slides, ctx.Err()
}

func (g *Generator) generatePPTX(ctx context.Context, req Request, slides []plannedSlide, res *Result) error {
	deck := pptx.Deck{
		Title:  req.Title,
		Author: req.Author,
		Slides: make([]pptx.Slide, len(slides)),
	}
	for i, s := range slides {
		deck.Slides[i] = pptx.Slide{Title: s.title, Type: s.typ, Blocks: s.blocks}
	}

	data, err := g.packageWriter.Build(ctx, deck)
	if err != nil {
		var slideErr *pptx.SlideError
		if errors.As(err, &slideErr) {
			return &SlideBuildError{Index: slideErr.Index, Err: slideErr.Err}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("building package: %w", err)
	}
	res.Data = data
	return nil
}

func (g *Generator) generatePDF(ctx context.Context, req Request, slides []plannedSlide, res *Result) error {
	doc := pipeline.Document{
		Title:  req.Title,
		Lang:   g.cfg.lang,
		Slides: make([]pipeline.PageSlide, len(slides)),
	}
	for i, s := range slides {
		doc.Slides[i] = pipeline.PageSlide{Type: s.typ, Blocks: s.blocks}
	}

	htmlContent, err := g.pageRenderer.Render(ctx, doc)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("rendering pages: %w", err)
	}

	// Page rules first, theme last so it can override them
	cssContent := buildPageCSS(g.cfg.page) + g.cfg.resolvedStyle
	htmlContent = g.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if err := ctx.Err(); err != nil {
		return err
	}
	res.HTML = []byte(htmlContent)

	if req.HTMLOnly {
		return nil
	}

	data, err := g.capturer.Capture(ctx, htmlContent, &captureOptions{Page: g.cfg.page})
	if err != nil {
		return fmt.Errorf("capturing PDF: %w", err)
	}
	res.Data = data
	return nil
}

// Close releases resources (running headless browsers).
func (g *Generator) Close() error {
	if g.capturer != nil {
		return g.capturer.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
// Called during NewGenerator() after options are applied and asset loader is configured.
func (g *Generator) resolveStyle() error {
	input := g.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	// File path? (contains / or \)
	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		g.cfg.resolvedStyle = string(content)
		return nil
	}

	// CSS content? (contains {)
	if fileutil.IsCSS(input) {
		g.cfg.resolvedStyle = input
		return nil
	}

	// Style name -> use asset loader
	css, err := g.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	g.cfg.resolvedStyle = css
	return nil
}
