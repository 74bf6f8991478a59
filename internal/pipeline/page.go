package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/markup"
)

// Sentinel errors for page rendering.
var (
	ErrPageTemplate = errors.New("page template parsing failed")
	ErrPageRender   = errors.New("page rendering failed")
)

// SlideSize is the rendered size of one slide in CSS pixels.
type SlideSize struct {
	Width  float64
	Height float64
}

// DefaultSlideSize maps the 10 x 5.625 in canvas at 96 px per inch, which
// fits inside an A4 landscape page with half-inch margins.
var DefaultSlideSize = SlideSize{Width: 960, Height: 540}

// Document is a planned deck ready for page rendering.
type Document struct {
	Title  string
	Lang   string
	Slides []PageSlide
}

// PageSlide is one planned slide.
type PageSlide struct {
	Type   layout.SlideType
	Blocks []layout.Block
}

// DeckRenderer defines the contract for rendering a deck to HTML.
type DeckRenderer interface {
	Render(ctx context.Context, doc Document) (string, error)
}

// PageRenderer renders a deck into one fixed-size <section> per slide using
// an html/template deck template. All text is escaped by the template engine.
type PageRenderer struct {
	tmpl *template.Template
	size SlideSize
}

// NewPageRenderer parses the deck template. A zero size selects DefaultSlideSize.
// The template must define a "runs" template for inline emphasis.
func NewPageRenderer(tmplContent string, size SlideSize) (*PageRenderer, error) {
	tmpl, err := template.New("deck").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplate, err)
	}
	if tmpl.Lookup("runs") == nil {
		return nil, fmt.Errorf("%w: template does not define \"runs\"", ErrPageTemplate)
	}
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSlideSize
	}
	return &PageRenderer{tmpl: tmpl, size: size}, nil
}

// deckView is the data handed to the deck template.
type deckView struct {
	Title       string
	Lang        string
	Width       int
	Height      int
	SlideStyle  template.CSS
	HeaderStyle template.CSS
	Slides      []slideView
}

type slideView struct {
	Number   int
	Type     string
	Last     bool
	Elements []elementView
}

// elementView is either a single block (Runs set) or a bullet list (Items set).
type elementView struct {
	Class string
	Style template.CSS
	Runs  []markup.Run
	Items []itemView
}

type itemView struct {
	Class string
	Style template.CSS
	Runs  []markup.Run
}

// Render produces the complete HTML document. Page breaks separate slides;
// the last slide carries none.
func (r *PageRenderer) Render(ctx context.Context, doc Document) (string, error) {
	if len(doc.Slides) == 0 {
		return "", fmt.Errorf("%w: document has no slides", ErrPageRender)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}

	view := deckView{
		Title:       markup.PlainText(markup.ParseInline(doc.Title)),
		Lang:        lang,
		Width:       int(r.size.Width),
		Height:      int(r.size.Height),
		SlideStyle:  template.CSS(fmt.Sprintf("width:%.1fpx;height:%.1fpx;", r.size.Width, r.size.Height)),
		HeaderStyle: template.CSS(fmt.Sprintf("width:%.1fpx;height:%.1fpx;", r.size.Width, layout.HeaderBarHeight*r.scaleY())),
	}

	for i, s := range doc.Slides {
		elements, err := r.elements(s.Blocks)
		if err != nil {
			return "", fmt.Errorf("%w: slide %d: %v", ErrPageRender, i+1, err)
		}
		view.Slides = append(view.Slides, slideView{
			Number:   i + 1,
			Type:     string(s.Type),
			Last:     i == len(doc.Slides)-1,
			Elements: elements,
		})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// elements converts blocks to template views. Consecutive bullets share one list.
func (r *PageRenderer) elements(blocks []layout.Block) ([]elementView, error) {
	var out []elementView
	for _, b := range blocks {
		switch v := b.(type) {
		case *layout.TextBlock:
			if v.Bullet {
				item := itemView{
					Class: roleClass(v.Kind),
					Style: r.style(v.Rect, v.Style),
					Runs:  v.Runs,
				}
				if n := len(out); n > 0 && len(out[n-1].Items) > 0 {
					out[n-1].Items = append(out[n-1].Items, item)
				} else {
					out = append(out, elementView{Items: []itemView{item}})
				}
				continue
			}
			out = append(out, elementView{
				Class: roleClass(v.Kind),
				Style: r.style(v.Rect, v.Style),
				Runs:  v.Runs,
			})
		case *layout.ShapeBlock:
			out = append(out, elementView{
				Class: roleClass(v.Kind),
				Style: r.style(v.Rect, v.LabelStyle),
				Runs:  []markup.Run{{Text: v.Label}},
			})
		default:
			return nil, fmt.Errorf("unknown block type %T", b)
		}
	}
	return out, nil
}

func (r *PageRenderer) scaleX() float64 { return r.size.Width / layout.CanvasWidth }
func (r *PageRenderer) scaleY() float64 { return r.size.Height / layout.CanvasHeight }

// style positions a block and sets its font. Colors come from the theme CSS.
func (r *PageRenderer) style(rect layout.Rect, ts layout.TextStyle) template.CSS {
	sx, sy := r.scaleX(), r.scaleY()

	var sb strings.Builder
	fmt.Fprintf(&sb, "left:%.1fpx;top:%.1fpx;width:%.1fpx;height:%.1fpx;",
		rect.X*sx, rect.Y*sy, rect.W*sx, rect.H*sy)
	// points are 1/72 in
	fmt.Fprintf(&sb, "font-size:%.1fpx;", ts.Size*sx/72)
	sb.WriteString("text-align:" + cssAlign(ts.Align) + ";")
	if ts.VAlign == layout.VAlignMiddle {
		sb.WriteString("justify-content:center;")
	} else {
		sb.WriteString("justify-content:flex-start;")
	}
	if ts.Bold {
		sb.WriteString("font-weight:700;")
	}
	return template.CSS(sb.String()) // #nosec G203 -- built from numbers and fixed keywords
}

func cssAlign(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "center"
	case layout.AlignRight:
		return "right"
	default:
		return "left"
	}
}

func roleClass(role layout.Role) string {
	return "block block-" + string(role)
}
