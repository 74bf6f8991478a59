package pptx

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/alnah/go-deckgen/internal/layout"
	"github.com/alnah/go-deckgen/internal/markup"
)

// Unit conversions.
const (
	emuPerInch  = 914400
	emuPerPoint = 12700
)

// Bullet paragraph geometry (EMU).
const (
	bulletMargin = 285750
	bulletIndent = -285750
	bulletChar   = "•"
	bulletColor  = "3498DB"
)

// Namespaces used by slide parts.
const (
	nsDrawing      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPresentation = "http://schemas.openxmlformats.org/presentationml/2006/main"
)

// emu converts inches to English Metric Units.
func emu(inches float64) int64 {
	return int64(math.Round(inches * emuPerInch))
}

// fontSize converts points to the hundredths-of-a-point DrawingML expects.
func fontSize(pt float64) int {
	return int(math.Round(pt * 100))
}

func anchorFor(v layout.VAlign) string {
	if v == layout.VAlignMiddle {
		return "ctr"
	}
	return "t"
}

func alignFor(a layout.Align) string {
	switch a {
	case layout.AlignCenter:
		return "ctr"
	case layout.AlignRight:
		return "r"
	default:
		return "l"
	}
}

// headingRoles take the theme's major (heading) font.
var headingRoles = map[layout.Role]bool{
	layout.RoleDeckTitle:    true,
	layout.RoleSectionTitle: true,
	layout.RoleHeader:       true,
	layout.RoleSubheading:   true,
}

// slideXML is ppt/slides/slideN.xml.
type slideXML struct {
	XMLName   xml.Name  `xml:"p:sld"`
	XmlnsA    string    `xml:"xmlns:a,attr"`
	XmlnsR    string    `xml:"xmlns:r,attr"`
	XmlnsP    string    `xml:"xmlns:p,attr"`
	CSld      commonSld `xml:"p:cSld"`
	ClrMapOvr clrMapOvr `xml:"p:clrMapOvr"`
}

type commonSld struct {
	Name   string `xml:"name,attr,omitempty"`
	SpTree spTree `xml:"p:spTree"`
}

type clrMapOvr struct {
	Master struct{} `xml:"a:masterClrMapping"`
}

type spTree struct {
	NvGrpSpPr nvGrpSpPr `xml:"p:nvGrpSpPr"`
	GrpSpPr   grpSpPr   `xml:"p:grpSpPr"`
	Shapes    []shape   `xml:"p:sp"`
}

type nvGrpSpPr struct {
	CNvPr      cNvPr    `xml:"p:cNvPr"`
	CNvGrpSpPr struct{} `xml:"p:cNvGrpSpPr"`
	NvPr       struct{} `xml:"p:nvPr"`
}

type cNvPr struct {
	ID   int    `xml:"id,attr"`
	Name string `xml:"name,attr"`
}

type grpSpPr struct {
	Xfrm groupXfrm `xml:"a:xfrm"`
}

type groupXfrm struct {
	Off   point  `xml:"a:off"`
	Ext   extent `xml:"a:ext"`
	ChOff point  `xml:"a:chOff"`
	ChExt extent `xml:"a:chExt"`
}

type point struct {
	X int64 `xml:"x,attr"`
	Y int64 `xml:"y,attr"`
}

type extent struct {
	Cx int64 `xml:"cx,attr"`
	Cy int64 `xml:"cy,attr"`
}

type shape struct {
	NvSpPr nvSpPr  `xml:"p:nvSpPr"`
	SpPr   spPr    `xml:"p:spPr"`
	TxBody *txBody `xml:"p:txBody,omitempty"`
}

type nvSpPr struct {
	CNvPr   cNvPr    `xml:"p:cNvPr"`
	CNvSpPr cNvSpPr  `xml:"p:cNvSpPr"`
	NvPr    struct{} `xml:"p:nvPr"`
}

type cNvSpPr struct {
	TxBox string `xml:"txBox,attr,omitempty"`
}

type spPr struct {
	Xfrm      xfrm       `xml:"a:xfrm"`
	PrstGeom  prstGeom   `xml:"a:prstGeom"`
	SolidFill *solidFill `xml:"a:solidFill,omitempty"`
	NoFill    *struct{}  `xml:"a:noFill,omitempty"`
	Ln        *outline   `xml:"a:ln,omitempty"`
}

type xfrm struct {
	Off point  `xml:"a:off"`
	Ext extent `xml:"a:ext"`
}

type prstGeom struct {
	Prst  string   `xml:"prst,attr"`
	AvLst struct{} `xml:"a:avLst"`
}

type solidFill struct {
	SrgbClr srgbClr `xml:"a:srgbClr"`
}

type srgbClr struct {
	Val string `xml:"val,attr"`
}

type outline struct {
	W         int64      `xml:"w,attr,omitempty"`
	SolidFill *solidFill `xml:"a:solidFill,omitempty"`
	NoFill    *struct{}  `xml:"a:noFill,omitempty"`
	PrstDash  *prstDash  `xml:"a:prstDash,omitempty"`
}

type prstDash struct {
	Val string `xml:"val,attr"`
}

type txBody struct {
	BodyPr     bodyPr      `xml:"a:bodyPr"`
	LstStyle   struct{}    `xml:"a:lstStyle"`
	Paragraphs []paragraph `xml:"a:p"`
}

type bodyPr struct {
	Wrap   string `xml:"wrap,attr"`
	RtlCol string `xml:"rtlCol,attr"`
	Anchor string `xml:"anchor,attr"`
}

type paragraph struct {
	PPr        *paragraphProps `xml:"a:pPr,omitempty"`
	Runs       []textRun       `xml:"a:r"`
	EndParaRPr *runProps       `xml:"a:endParaRPr,omitempty"`
}

type paragraphProps struct {
	MarL   int64      `xml:"marL,attr,omitempty"`
	Indent int64      `xml:"indent,attr,omitempty"`
	Algn   string     `xml:"algn,attr,omitempty"`
	BuClr  *solidFill `xml:"a:buClr,omitempty"`
	BuFont *typeface  `xml:"a:buFont,omitempty"`
	BuChar *buChar    `xml:"a:buChar,omitempty"`
	BuNone *struct{}  `xml:"a:buNone,omitempty"`
}

type typeface struct {
	Typeface string `xml:"typeface,attr"`
}

type buChar struct {
	Char string `xml:"char,attr"`
}

type textRun struct {
	RPr runProps `xml:"a:rPr"`
	T   string   `xml:"a:t"`
}

type runProps struct {
	Lang      string     `xml:"lang,attr,omitempty"`
	Sz        int        `xml:"sz,attr,omitempty"`
	B         string     `xml:"b,attr,omitempty"`
	Dirty     string     `xml:"dirty,attr,omitempty"`
	SolidFill *solidFill `xml:"a:solidFill,omitempty"`
	Latin     *typeface  `xml:"a:latin,omitempty"`
}

func fill(color string) *solidFill {
	return &solidFill{SrgbClr: srgbClr{Val: strings.ToUpper(color)}}
}

// buildSlide converts planned blocks into a slide part.
func buildSlide(s Slide) (*slideXML, error) {
	doc := &slideXML{
		XmlnsA: nsDrawing,
		XmlnsR: nsRelationship,
		XmlnsP: nsPresentation,
		CSld: commonSld{
			Name: string(s.Type),
			SpTree: spTree{
				NvGrpSpPr: nvGrpSpPr{CNvPr: cNvPr{ID: 1, Name: ""}},
			},
		},
	}

	// id 1 is the group shape
	for i, b := range s.Blocks {
		sp, err := blockShape(b, i+2)
		if err != nil {
			return nil, err
		}
		doc.CSld.SpTree.Shapes = append(doc.CSld.SpTree.Shapes, sp)
	}
	return doc, nil
}

func blockShape(b layout.Block, id int) (shape, error) {
	switch v := b.(type) {
	case *layout.TextBlock:
		return textShape(v, id)
	case *layout.ShapeBlock:
		return rectShape(v, id)
	default:
		return shape{}, fmt.Errorf("%w: %T", ErrUnknownBlock, b)
	}
}

func geometry(r layout.Rect) xfrm {
	return xfrm{
		Off: point{X: emu(r.X), Y: emu(r.Y)},
		Ext: extent{Cx: emu(r.W), Cy: emu(r.H)},
	}
}

func textShape(b *layout.TextBlock, id int) (shape, error) {
	if !validColor(b.Style.Color) {
		return shape{}, fmt.Errorf("%w: %s block color %q", ErrInvalidColor, b.Kind, b.Style.Color)
	}

	font := "+mn-lt"
	if headingRoles[b.Kind] {
		font = "+mj-lt"
	}

	return shape{
		NvSpPr: nvSpPr{
			CNvPr:   cNvPr{ID: id, Name: fmt.Sprintf("%s %d", b.Kind, id)},
			CNvSpPr: cNvSpPr{TxBox: "1"},
		},
		SpPr: spPr{
			Xfrm:     geometry(b.Rect),
			PrstGeom: prstGeom{Prst: "rect"},
			NoFill:   &struct{}{},
		},
		TxBody: &txBody{
			BodyPr:     bodyPr{Wrap: "square", RtlCol: "0", Anchor: anchorFor(b.Style.VAlign)},
			Paragraphs: paragraphs(b.Runs, b.Style, b.Bullet, font),
		},
	}, nil
}

func rectShape(b *layout.ShapeBlock, id int) (shape, error) {
	for _, c := range []string{b.Fill, b.Border.Color, b.LabelStyle.Color} {
		if !validColor(c) {
			return shape{}, fmt.Errorf("%w: %s block color %q", ErrInvalidColor, b.Kind, c)
		}
	}

	ln := &outline{
		W:         int64(math.Round(b.Border.Width * emuPerPoint)),
		SolidFill: fill(b.Border.Color),
	}
	if b.Border.Dashed {
		ln.PrstDash = &prstDash{Val: "dash"}
	}

	runs := []markup.Run{{Text: b.Label}}
	return shape{
		NvSpPr: nvSpPr{
			CNvPr: cNvPr{ID: id, Name: fmt.Sprintf("%s %d", b.Kind, id)},
		},
		SpPr: spPr{
			Xfrm:      geometry(b.Rect),
			PrstGeom:  prstGeom{Prst: "rect"},
			SolidFill: fill(b.Fill),
			Ln:        ln,
		},
		TxBody: &txBody{
			BodyPr:     bodyPr{Wrap: "square", RtlCol: "0", Anchor: anchorFor(b.LabelStyle.VAlign)},
			Paragraphs: paragraphs(runs, b.LabelStyle, false, "+mn-lt"),
		},
	}, nil
}

// paragraphs splits runs on newlines; each line becomes one a:p.
func paragraphs(runs []markup.Run, style layout.TextStyle, bullet bool, font string) []paragraph {
	newPara := func() paragraph {
		pPr := &paragraphProps{Algn: alignFor(style.Align)}
		if bullet {
			pPr.MarL = bulletMargin
			pPr.Indent = bulletIndent
			pPr.BuClr = fill(bulletColor)
			pPr.BuFont = &typeface{Typeface: "Arial"}
			pPr.BuChar = &buChar{Char: bulletChar}
		} else {
			pPr.BuNone = &struct{}{}
		}
		return paragraph{
			PPr:        pPr,
			EndParaRPr: &runProps{Lang: "en-US", Sz: fontSize(style.Size), Dirty: "0"},
		}
	}

	out := []paragraph{newPara()}
	for _, r := range runs {
		for i, line := range strings.Split(r.Text, "\n") {
			if i > 0 {
				out = append(out, newPara())
			}
			if line == "" {
				continue
			}
			cur := &out[len(out)-1]
			cur.Runs = append(cur.Runs, textRun{
				RPr: runProps{
					Lang:      "en-US",
					Sz:        fontSize(style.Size),
					B:         boolAttr(style.Bold || r.Emphasized),
					Dirty:     "0",
					SolidFill: fill(style.Color),
					Latin:     &typeface{Typeface: font},
				},
				T: line,
			})
		}
	}
	return out
}

func boolAttr(v bool) string {
	if v {
		return "1"
	}
	return ""
}
