package pptx

// Notes:
// - Packages are read back with archive/zip and decoded with encoding/xml
//   using local element names, so prefixes written by the builder do not
//   matter to the assertions
// - A fixed clock and identifier make byte-level comparisons possible

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-deckgen/internal/layout"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()
	opts = append([]Option{
		WithClock(func() time.Time { return fixedTime }),
		WithIdentifier(func() string { return "test-id" }),
	}, opts...)
	b, err := NewBuilder(opts...)
	if err != nil {
		t.Fatalf("NewBuilder() error: %v", err)
	}
	return b
}

func plannedDeck(t *testing.T, title string, slides ...layout.SlideData) Deck {
	t.Helper()
	d := Deck{Title: title}
	for i, s := range slides {
		blocks, err := layout.Plan(s, i, title)
		if err != nil {
			t.Fatalf("Plan(%d): %v", i, err)
		}
		d.Slides = append(d.Slides, Slide{Title: s.Title, Type: s.Type, Blocks: blocks})
	}
	return d
}

func openPackage(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("package is not a valid zip: %v", err)
	}
	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = body
	}
	return parts
}

type readShape struct {
	NvPr struct {
		ID   int    `xml:"id,attr"`
		Name string `xml:"name,attr"`
	} `xml:"nvSpPr>cNvPr"`
	Off struct {
		X int64 `xml:"x,attr"`
		Y int64 `xml:"y,attr"`
	} `xml:"spPr>xfrm>off"`
	Ext struct {
		Cx int64 `xml:"cx,attr"`
		Cy int64 `xml:"cy,attr"`
	} `xml:"spPr>xfrm>ext"`
	Line *struct {
		W    int64 `xml:"w,attr"`
		Dash *struct {
			Val string `xml:"val,attr"`
		} `xml:"prstDash"`
	} `xml:"spPr>ln"`
	Anchor struct {
		Anchor string `xml:"anchor,attr"`
	} `xml:"txBody>bodyPr"`
	Paragraphs []struct {
		PPr struct {
			Algn   string `xml:"algn,attr"`
			BuChar *struct {
				Char string `xml:"char,attr"`
			} `xml:"buChar"`
		} `xml:"pPr"`
		Runs []struct {
			RPr struct {
				Sz int    `xml:"sz,attr"`
				B  string `xml:"b,attr"`
			} `xml:"rPr"`
			T string `xml:"t"`
		} `xml:"r"`
	} `xml:"txBody>p"`
}

func (s readShape) text() string {
	var lines []string
	for _, p := range s.Paragraphs {
		var sb strings.Builder
		for _, r := range p.Runs {
			sb.WriteString(r.T)
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

type readSlide struct {
	Shapes []readShape `xml:"cSld>spTree>sp"`
}

func decodeSlide(t *testing.T, data []byte) readSlide {
	t.Helper()
	var s readSlide
	if err := xml.Unmarshal(data, &s); err != nil {
		t.Fatalf("decode slide: %v", err)
	}
	return s
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestNewBuilder_InvalidTheme(t *testing.T) {
	t.Parallel()

	theme := DefaultTheme()
	theme.Accent = "#2C3E50"

	_, err := NewBuilder(WithTheme(theme))
	if !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("NewBuilder() error = %v, want ErrInvalidColor", err)
	}
}

func TestBuild_PackageParts(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	deck := plannedDeck(t, "Quarterly Review",
		layout.SlideData{Title: "Intro", Content: "Welcome", Type: layout.TypeTitle},
		layout.SlideData{Title: "Agenda", Content: "One\nTwo", Type: layout.TypeContent},
		layout.SlideData{Title: "Sales", Content: "Q1", Type: layout.TypeChart},
	)

	data, err := b.Build(context.Background(), deck)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	parts := openPackage(t, data)

	required := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/presProps.xml",
		"ppt/viewProps.xml",
		"ppt/tableStyles.xml",
		"ppt/theme/theme1.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/_rels/slideLayout1.xml.rels",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide2.xml",
		"ppt/slides/slide3.xml",
		"ppt/slides/_rels/slide3.xml.rels",
	}
	for _, name := range required {
		if _, ok := parts[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}
	if _, ok := parts["ppt/slides/slide4.xml"]; ok {
		t.Error("unexpected fourth slide")
	}

	var pres struct {
		Slides []struct{} `xml:"sldIdLst>sldId"`
		Size   struct {
			Cx int64 `xml:"cx,attr"`
			Cy int64 `xml:"cy,attr"`
		} `xml:"sldSz"`
	}
	if err := xml.Unmarshal(parts["ppt/presentation.xml"], &pres); err != nil {
		t.Fatalf("decode presentation: %v", err)
	}
	if len(pres.Slides) != 3 {
		t.Errorf("presentation lists %d slides, want 3", len(pres.Slides))
	}
	if pres.Size.Cx != 9144000 || pres.Size.Cy != 5143500 {
		t.Errorf("slide size = %dx%d, want 9144000x5143500", pres.Size.Cx, pres.Size.Cy)
	}

	types := string(parts["[Content_Types].xml"])
	for _, part := range []string{"/ppt/slides/slide1.xml", "/ppt/slides/slide3.xml", "/ppt/theme/theme1.xml"} {
		if !strings.Contains(types, part) {
			t.Errorf("content types missing override for %s", part)
		}
	}

	var rels struct {
		Rels []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(parts["ppt/_rels/presentation.xml.rels"], &rels); err != nil {
		t.Fatalf("decode presentation rels: %v", err)
	}
	seen := make(map[string]bool)
	for _, r := range rels.Rels {
		if seen[r.ID] {
			t.Errorf("duplicate relationship id %s", r.ID)
		}
		seen[r.ID] = true
	}
	if len(rels.Rels) != 1+3+4 {
		t.Errorf("presentation has %d relationships, want 8", len(rels.Rels))
	}
}

func TestBuild_ContentSlideShapes(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	deck := plannedDeck(t, "Deck",
		layout.SlideData{Title: "Cover", Type: layout.TypeTitle},
		layout.SlideData{Title: "Plan", Content: "**Steps:**\nDesign\n**Build** fast", Type: layout.TypeContent},
	)

	data, err := b.Build(context.Background(), deck)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	slide := decodeSlide(t, openPackage(t, data)["ppt/slides/slide2.xml"])

	if len(slide.Shapes) != 4 {
		t.Fatalf("shape count = %d, want 4", len(slide.Shapes))
	}

	header := slide.Shapes[0]
	if header.text() != "Plan" {
		t.Errorf("header text = %q", header.text())
	}
	if header.Off.X != 457200 || header.Off.Y != 457200 || header.Ext.Cx != 8229600 {
		t.Errorf("header geometry = %+v %+v", header.Off, header.Ext)
	}
	if header.Paragraphs[0].Runs[0].RPr.Sz != 3200 || header.Paragraphs[0].Runs[0].RPr.B != "1" {
		t.Errorf("header run props = %+v, want sz 3200 bold", header.Paragraphs[0].Runs[0].RPr)
	}
	if header.Paragraphs[0].PPr.Algn != "ctr" {
		t.Errorf("header alignment = %q, want ctr", header.Paragraphs[0].PPr.Algn)
	}

	if got := slide.Shapes[1].text(); got != "Steps" {
		t.Errorf("subheading = %q, want Steps", got)
	}

	bullet := slide.Shapes[3]
	if bullet.text() != "Build fast" {
		t.Errorf("bullet text = %q", bullet.text())
	}
	if bullet.Paragraphs[0].PPr.BuChar == nil {
		t.Fatal("bullet paragraph has no bullet character")
	}
	runs := bullet.Paragraphs[0].Runs
	if len(runs) != 2 || runs[0].RPr.B != "1" || runs[1].RPr.B != "" {
		t.Errorf("bullet runs = %+v, want emphasized then plain", runs)
	}

	// ids are unique and skip the group shape
	ids := make(map[int]bool)
	for _, s := range slide.Shapes {
		if s.NvPr.ID < 2 || ids[s.NvPr.ID] {
			t.Errorf("bad or duplicate shape id %d", s.NvPr.ID)
		}
		ids[s.NvPr.ID] = true
	}
}

func TestBuild_PlaceholderShape(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	deck := plannedDeck(t, "Deck",
		layout.SlideData{Title: "Cover", Type: layout.TypeTitle},
		layout.SlideData{Title: "Photo", Content: "A caption", Type: layout.TypeImage},
	)

	data, err := b.Build(context.Background(), deck)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	slide := decodeSlide(t, openPackage(t, data)["ppt/slides/slide2.xml"])

	if len(slide.Shapes) != 3 {
		t.Fatalf("shape count = %d, want 3", len(slide.Shapes))
	}
	box := slide.Shapes[1]
	if box.text() != layout.ImagePlaceholderLabel {
		t.Errorf("label = %q", box.text())
	}
	if box.Line == nil || box.Line.Dash == nil || box.Line.Dash.Val != "dash" {
		t.Fatalf("placeholder outline = %+v, want dashed", box.Line)
	}
	if box.Line.W != 25400 {
		t.Errorf("outline width = %d EMU, want 25400 (2pt)", box.Line.W)
	}
	if box.Anchor.Anchor != "ctr" {
		t.Errorf("label anchor = %q, want ctr", box.Anchor.Anchor)
	}
	if got := slide.Shapes[2].text(); got != "A caption" {
		t.Errorf("caption = %q", got)
	}
}

func TestBuild_SlideValidation(t *testing.T) {
	t.Parallel()

	good := Slide{Title: "Ok", Type: layout.TypeContent}

	tests := []struct {
		name      string
		deck      Deck
		wantErr   error
		wantIndex int
	}{
		{"empty deck", Deck{Title: "D"}, ErrEmptyDeck, 0},
		{"missing title", Deck{Slides: []Slide{good, {Type: layout.TypeContent}}}, ErrSlideTitle, 2},
		{"missing type", Deck{Slides: []Slide{{Title: "T"}, good}}, ErrSlideType, 1},
		{
			"invalid block color",
			Deck{Slides: []Slide{good, good, {
				Title: "Bad", Type: layout.TypeImage,
				Blocks: []layout.Block{&layout.ShapeBlock{Fill: "nope", Border: layout.Border{Color: "000000"}, LabelStyle: layout.TextStyle{Color: "000000"}}},
			}}},
			ErrInvalidColor, 3,
		},
	}

	b := newTestBuilder(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := b.Build(context.Background(), tt.deck)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
			}
			if data != nil {
				t.Error("expected no package on error")
			}
			if tt.wantIndex == 0 {
				return
			}
			var se *SlideError
			if !errors.As(err, &se) {
				t.Fatalf("error %v is not a *SlideError", err)
			}
			if se.Index != tt.wantIndex {
				t.Errorf("SlideError.Index = %d, want %d", se.Index, tt.wantIndex)
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	deck := plannedDeck(t, "Deck",
		layout.SlideData{Title: "Cover", Content: "Sub", Type: layout.TypeTitle},
		layout.SlideData{Title: "List", Content: "a, b, c", Type: layout.TypeContent},
	)

	first, err := b.Build(context.Background(), deck)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	second, err := b.Build(context.Background(), deck)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("builds with a fixed clock and identifier differ")
	}
}

func TestBuild_ContextCancelled(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	deck := plannedDeck(t, "Deck", layout.SlideData{Title: "Cover", Type: layout.TypeTitle})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := b.Build(ctx, deck); !errors.Is(err, context.Canceled) {
		t.Fatalf("Build() error = %v, want context.Canceled", err)
	}
}

func TestBuild_DocumentProperties(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	deck := plannedDeck(t, "R&D <Review>", layout.SlideData{Title: "Cover", Type: layout.TypeTitle})
	deck.Author = "Team"

	data, err := b.Build(context.Background(), deck)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	parts := openPackage(t, data)

	var core struct {
		Title      string `xml:"title"`
		Creator    string `xml:"creator"`
		Identifier string `xml:"identifier"`
		Created    string `xml:"created"`
	}
	if err := xml.Unmarshal(parts["docProps/core.xml"], &core); err != nil {
		t.Fatalf("decode core: %v", err)
	}
	if core.Title != "R&D <Review>" {
		t.Errorf("title = %q", core.Title)
	}
	if core.Creator != "Team" || core.Identifier != "test-id" {
		t.Errorf("core = %+v", core)
	}
	if core.Created != "2024-03-01T12:00:00Z" {
		t.Errorf("created = %q", core.Created)
	}

	var app struct {
		Slides int `xml:"Slides"`
	}
	if err := xml.Unmarshal(parts["docProps/app.xml"], &app); err != nil {
		t.Fatalf("decode app: %v", err)
	}
	if app.Slides != 1 {
		t.Errorf("app slide count = %d, want 1", app.Slides)
	}
}

func TestBuild_ThemeAndMaster(t *testing.T) {
	t.Parallel()

	theme := DefaultTheme()
	theme.Name = "Dark & Bold"
	theme.Accent = "E74C3C"
	b := newTestBuilder(t, WithTheme(theme))

	deck := plannedDeck(t, "Deck", layout.SlideData{Title: "Cover", Type: layout.TypeTitle})
	data, err := b.Build(context.Background(), deck)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	parts := openPackage(t, data)

	var master struct {
		Shapes []struct {
			Ext struct {
				Cx int64 `xml:"cx,attr"`
				Cy int64 `xml:"cy,attr"`
			} `xml:"spPr>xfrm>ext"`
			Fill struct {
				Val string `xml:"val,attr"`
			} `xml:"spPr>solidFill>srgbClr"`
		} `xml:"cSld>spTree>sp"`
	}
	if err := xml.Unmarshal(parts["ppt/slideMasters/slideMaster1.xml"], &master); err != nil {
		t.Fatalf("decode master: %v", err)
	}
	if len(master.Shapes) != 1 {
		t.Fatalf("master shapes = %d, want the header bar only", len(master.Shapes))
	}
	bar := master.Shapes[0]
	if bar.Ext.Cx != 9144000 || bar.Ext.Cy != 274320 {
		t.Errorf("header bar size = %dx%d, want 9144000x274320", bar.Ext.Cx, bar.Ext.Cy)
	}
	if bar.Fill.Val != "E74C3C" {
		t.Errorf("header bar fill = %q, want accent", bar.Fill.Val)
	}

	var themePart struct {
		Name string `xml:"name,attr"`
	}
	if err := xml.Unmarshal(parts["ppt/theme/theme1.xml"], &themePart); err != nil {
		t.Fatalf("theme part is not well-formed: %v", err)
	}
	if themePart.Name != "Dark & Bold" {
		t.Errorf("theme name = %q", themePart.Name)
	}
}
