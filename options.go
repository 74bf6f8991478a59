package deckgen

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-deckgen/internal/assets"
)

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout       time.Duration // zero means bounded only by the caller's context
	styleInput    string        // theme name, CSS file path or raw CSS
	resolvedStyle string        // CSS content after resolution
	assetPath     string
	templateSet   *assets.TemplateSet
	page          *PageSettings
	lang          string
}

// defaultLang is the markup document language.
const defaultLang = "en"

// discardLogger is used when no logger is configured.
func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// WithTimeout bounds each Generate call. Without it, only the caller's
// context bounds generation (including the browser render-ready wait).
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("deckgen: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithStyle sets the CSS theme of PDF output.
// Accepts a theme name ("midnight"), a file path ("./custom.css") or raw
// CSS content (contains "{"). Defaults to DefaultStyle.
func WithStyle(style string) Option {
	return func(g *Generator) {
		g.cfg.styleInput = style
	}
}

// WithAssetPath loads themes and templates from a directory, falling back
// to the embedded assets.
func WithAssetPath(path string) Option {
	return func(g *Generator) {
		g.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(g *Generator) {
		g.publicAssetLoader = loader
	}
}

// WithTemplateSet sets the page template directly, bypassing the loader.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(g *Generator) {
		if ts == nil {
			return
		}
		g.cfg.templateSet = &assets.TemplateSet{Name: ts.Name, Deck: ts.Deck}
	}
}

// WithPageSettings sets the PDF paper. Defaults to A4 landscape.
func WithPageSettings(p *PageSettings) Option {
	return func(g *Generator) {
		g.cfg.page = p
	}
}

// WithLang sets the lang attribute of the rendered markup.
func WithLang(lang string) Option {
	return func(g *Generator) {
		g.cfg.lang = lang
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock sets the time source for document properties and durations.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}
