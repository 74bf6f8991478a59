package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"embed"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-deckgen/internal/layout"
)

//go:embed templates/*
var templateFS embed.FS

// Deck is the serializer input: planned slides in presentation order.
type Deck struct {
	Title  string
	Author string
	Slides []Slide
}

// Slide is one planned slide.
type Slide struct {
	Title  string
	Type   layout.SlideType
	Blocks []layout.Block
}

// Option configures a Builder.
type Option func(*Builder)

// WithTheme sets the theme written to the theme part and slide master.
func WithTheme(t Theme) Option {
	return func(b *Builder) { b.theme = t }
}

// WithClock sets the time source for document properties and zip entries.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIdentifier sets the generator for the package identifier.
func WithIdentifier(fn func() string) Option {
	return func(b *Builder) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// Builder writes .pptx packages. It holds only parsed templates and
// configuration, so one Builder may serve concurrent Build calls.
type Builder struct {
	theme     Theme
	now       func() time.Time
	newID     func() string
	templates *themeTemplates
}

// NewBuilder parses the embedded templates and validates the theme.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		theme: DefaultTheme(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.theme.Validate(); err != nil {
		return nil, err
	}

	tpls, err := parseThemeTemplates()
	if err != nil {
		return nil, err
	}
	b.templates = tpls
	return b, nil
}

// Build serializes the deck into a .pptx archive. Any invalid slide aborts
// the build with a *SlideError; no partial package is returned.
func (b *Builder) Build(ctx context.Context, d Deck) ([]byte, error) {
	if len(d.Slides) == 0 {
		return nil, ErrEmptyDeck
	}

	for i, s := range d.Slides {
		if strings.TrimSpace(s.Title) == "" {
			return nil, &SlideError{Index: i + 1, Err: ErrSlideTitle}
		}
		if s.Type == "" {
			return nil, &SlideError{Index: i + 1, Err: ErrSlideType}
		}
	}

	slides := make([]*slideXML, len(d.Slides))
	for i, s := range d.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := buildSlide(s)
		if err != nil {
			return nil, &SlideError{Index: i + 1, Err: err}
		}
		slides[i] = doc
	}

	themePart, err := b.templates.renderTheme(b.theme)
	if err != nil {
		return nil, err
	}
	masterPart, err := b.templates.renderMaster(b.theme)
	if err != nil {
		return nil, err
	}

	now := b.now()
	var buf bytes.Buffer
	pw := &packageWriter{zw: zip.NewWriter(&buf), modified: now}

	n := len(slides)
	pw.writeXML("[Content_Types].xml", buildContentTypes(n))
	pw.writeXML("_rels/.rels", rootRels())
	pw.writeXML("docProps/core.xml", buildCore(d.Title, d.Author, b.newID(), now))
	pw.writeXML("docProps/app.xml", buildApp(n))
	pw.writeXML("ppt/presentation.xml", buildPresentation(n))
	pw.writeXML("ppt/_rels/presentation.xml.rels", presentationRels(n))
	pw.writeStatic("ppt/presProps.xml", "templates/presProps.xml")
	pw.writeStatic("ppt/viewProps.xml", "templates/viewProps.xml")
	pw.writeStatic("ppt/tableStyles.xml", "templates/tableStyles.xml")
	pw.writeRaw("ppt/theme/theme1.xml", themePart)
	pw.writeRaw("ppt/slideMasters/slideMaster1.xml", masterPart)
	pw.writeXML("ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels())
	pw.writeStatic("ppt/slideLayouts/slideLayout1.xml", "templates/slideLayout.xml")
	pw.writeXML("ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRels())
	for i, doc := range slides {
		pw.writeXML(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), doc)
		pw.writeXML(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRels())
	}

	if pw.err != nil {
		return nil, pw.err
	}
	if err := pw.zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPartWrite, err)
	}
	return buf.Bytes(), nil
}

// packageWriter writes zip parts and keeps the first error.
type packageWriter struct {
	zw       *zip.Writer
	modified time.Time
	err      error
}

func (pw *packageWriter) writeRaw(name string, data []byte) {
	if pw.err != nil {
		return
	}
	w, err := pw.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: pw.modified,
	})
	if err != nil {
		pw.err = fmt.Errorf("%w: %s: %v", ErrPartWrite, name, err)
		return
	}
	if _, err := w.Write(data); err != nil {
		pw.err = fmt.Errorf("%w: %s: %v", ErrPartWrite, name, err)
	}
}

func (pw *packageWriter) writeXML(name string, v any) {
	if pw.err != nil {
		return
	}
	body, err := xml.Marshal(v)
	if err != nil {
		pw.err = fmt.Errorf("%w: %s: %v", ErrPartWrite, name, err)
		return
	}
	data := make([]byte, 0, len(xml.Header)+len(body))
	data = append(data, xml.Header...)
	data = append(data, body...)
	pw.writeRaw(name, data)
}

func (pw *packageWriter) writeStatic(name, src string) {
	if pw.err != nil {
		return
	}
	data, err := templateFS.ReadFile(src)
	if err != nil {
		pw.err = fmt.Errorf("%w: %s: %v", ErrPartWrite, name, err)
		return
	}
	pw.writeRaw(name, data)
}
