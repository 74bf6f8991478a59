package pptx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"text/template"

	"github.com/alnah/go-deckgen/internal/layout"
)

// Theme holds the package-wide colors and fonts written to theme1.xml and
// the slide master. Colors are RRGGBB without a leading '#'.
type Theme struct {
	Name        string
	HeadingFont string
	BodyFont    string
	Primary     string // titles
	Body        string
	Muted       string
	Accent      string // header bar
	Surface     string // placeholder fill
	Line        string // placeholder outline
	Background  string
}

// DefaultTheme returns the palette shared with the page renderer's default style.
func DefaultTheme() Theme {
	return Theme{
		Name:        "Deck",
		HeadingFont: "Arial",
		BodyFont:    "Arial",
		Primary:     layout.ColorPrimary,
		Body:        layout.ColorBody,
		Muted:       layout.ColorMuted,
		Accent:      layout.ColorPrimary,
		Surface:     layout.ColorPlaceholderFill,
		Line:        layout.ColorPlaceholderLine,
		Background:  layout.ColorBackground,
	}
}

var hexColorPattern = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

func validColor(c string) bool { return hexColorPattern.MatchString(c) }

// Validate checks every color is a six-digit hex value and fonts are named.
func (t Theme) Validate() error {
	colors := []struct{ field, value string }{
		{"primary", t.Primary},
		{"body", t.Body},
		{"muted", t.Muted},
		{"accent", t.Accent},
		{"surface", t.Surface},
		{"line", t.Line},
		{"background", t.Background},
	}
	for _, c := range colors {
		if !validColor(c.value) {
			return fmt.Errorf("%w: %s=%q", ErrInvalidColor, c.field, c.value)
		}
	}
	if t.HeadingFont == "" || t.BodyFont == "" {
		return fmt.Errorf("%w: theme fonts must be set", ErrTemplateParse)
	}
	return nil
}

// xmlEscape escapes a string for use inside XML text or attribute values.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// themeTemplates holds the parsed theme and master templates.
type themeTemplates struct {
	theme  *template.Template
	master *template.Template
}

// masterData feeds slideMaster.xml.tmpl.
type masterData struct {
	Theme     Theme
	Width     int64
	BarHeight int64
}

func parseThemeTemplates() (*themeTemplates, error) {
	funcs := template.FuncMap{"xml": xmlEscape}

	theme, err := template.New("theme.xml.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/theme.xml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: theme: %v", ErrTemplateParse, err)
	}
	master, err := template.New("slideMaster.xml.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/slideMaster.xml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("%w: slide master: %v", ErrTemplateParse, err)
	}
	return &themeTemplates{theme: theme, master: master}, nil
}

func (tt *themeTemplates) renderTheme(t Theme) ([]byte, error) {
	var buf bytes.Buffer
	if err := tt.theme.Execute(&buf, t); err != nil {
		return nil, fmt.Errorf("%w: theme: %v", ErrPartWrite, err)
	}
	return buf.Bytes(), nil
}

func (tt *themeTemplates) renderMaster(t Theme) ([]byte, error) {
	data := masterData{
		Theme:     t,
		Width:     emu(layout.CanvasWidth),
		BarHeight: emu(layout.HeaderBarHeight),
	}
	var buf bytes.Buffer
	if err := tt.master.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: slide master: %v", ErrPartWrite, err)
	}
	return buf.Bytes(), nil
}
