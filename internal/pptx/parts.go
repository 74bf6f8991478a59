package pptx

import (
	"encoding/xml"
	"fmt"
	"time"
)

// Content types.
const (
	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML           = "application/xml"
	ctPresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps     = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps     = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles   = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtended      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Relationship types.
const (
	relBase         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	relOfficeDoc    = relBase + "officeDocument"
	relExtended     = relBase + "extended-properties"
	relCore         = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relSlide        = relBase + "slide"
	relSlideMaster  = relBase + "slideMaster"
	relSlideLayout  = relBase + "slideLayout"
	relTheme        = relBase + "theme"
	relPresProps    = relBase + "presProps"
	relViewProps    = relBase + "viewProps"
	relTableStyles  = relBase + "tableStyles"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtendedProps = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDocPropsVT    = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
)

// Fixed identifiers. Slide master ids start above 2^31; slide ids at 256.
const (
	masterID    = 2147483648
	firstSlide  = 256
	slideWidth  = 9144000
	slideHeight = 5143500
	notesWidth  = 6858000
	notesHeight = 9144000
)

type contentTypes struct {
	XMLName   xml.Name     `xml:"Types"`
	Xmlns     string       `xml:"xmlns,attr"`
	Defaults  []ctDefault  `xml:"Default"`
	Overrides []ctOverride `xml:"Override"`
}

type ctDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type ctOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func buildContentTypes(slides int) contentTypes {
	ct := contentTypes{
		Xmlns: nsContentTypes,
		Defaults: []ctDefault{
			{Extension: "rels", ContentType: ctRelationships},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []ctOverride{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctSlideMaster},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctSlideLayout},
			{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
			{PartName: "/ppt/presProps.xml", ContentType: ctPresProps},
			{PartName: "/ppt/viewProps.xml", ContentType: ctViewProps},
			{PartName: "/ppt/tableStyles.xml", ContentType: ctTableStyles},
			{PartName: "/docProps/core.xml", ContentType: ctCore},
			{PartName: "/docProps/app.xml", ContentType: ctExtended},
		},
	}
	for i := 1; i <= slides; i++ {
		ct.Overrides = append(ct.Overrides, ctOverride{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i),
			ContentType: ctSlide,
		})
	}
	return ct
}

type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Xmlns   string         `xml:"xmlns,attr"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

func newRels(rels ...relationship) relationships {
	return relationships{Xmlns: nsPackageRels, Rels: rels}
}

func rel(n int, typ, target string) relationship {
	return relationship{ID: fmt.Sprintf("rId%d", n), Type: typ, Target: target}
}

func rootRels() relationships {
	return newRels(
		rel(1, relOfficeDoc, "ppt/presentation.xml"),
		rel(2, relCore, "docProps/core.xml"),
		rel(3, relExtended, "docProps/app.xml"),
	)
}

// presentationRels numbers the master rId1, slides rId2..N+1, then the
// shared property parts.
func presentationRels(slides int) relationships {
	r := newRels(rel(1, relSlideMaster, "slideMasters/slideMaster1.xml"))
	for i := 1; i <= slides; i++ {
		r.Rels = append(r.Rels, rel(i+1, relSlide, fmt.Sprintf("slides/slide%d.xml", i)))
	}
	n := slides + 2
	r.Rels = append(r.Rels,
		rel(n, relPresProps, "presProps.xml"),
		rel(n+1, relViewProps, "viewProps.xml"),
		rel(n+2, relTheme, "theme/theme1.xml"),
		rel(n+3, relTableStyles, "tableStyles.xml"),
	)
	return r
}

func masterRels() relationships {
	return newRels(
		rel(1, relSlideLayout, "../slideLayouts/slideLayout1.xml"),
		rel(2, relTheme, "../theme/theme1.xml"),
	)
}

func layoutRels() relationships {
	return newRels(rel(1, relSlideMaster, "../slideMasters/slideMaster1.xml"))
}

func slideRels() relationships {
	return newRels(rel(1, relSlideLayout, "../slideLayouts/slideLayout1.xml"))
}

type presentationXML struct {
	XMLName         xml.Name      `xml:"p:presentation"`
	XmlnsA          string        `xml:"xmlns:a,attr"`
	XmlnsR          string        `xml:"xmlns:r,attr"`
	XmlnsP          string        `xml:"xmlns:p,attr"`
	SaveSubsetFonts string        `xml:"saveSubsetFonts,attr"`
	SldMasterIDLst  sldMasterList `xml:"p:sldMasterIdLst"`
	SldIDLst        sldList       `xml:"p:sldIdLst"`
	SldSz           slideSize     `xml:"p:sldSz"`
	NotesSz         extent        `xml:"p:notesSz"`
}

type sldMasterList struct {
	IDs []idRef `xml:"p:sldMasterId"`
}

type sldList struct {
	IDs []idRef `xml:"p:sldId"`
}

type idRef struct {
	ID  uint32 `xml:"id,attr"`
	RID string `xml:"r:id,attr"`
}

type slideSize struct {
	Cx   int64  `xml:"cx,attr"`
	Cy   int64  `xml:"cy,attr"`
	Type string `xml:"type,attr,omitempty"`
}

func buildPresentation(slides int) presentationXML {
	p := presentationXML{
		XmlnsA:          nsDrawing,
		XmlnsR:          nsRelationship,
		XmlnsP:          nsPresentation,
		SaveSubsetFonts: "1",
		SldMasterIDLst:  sldMasterList{IDs: []idRef{{ID: masterID, RID: "rId1"}}},
		SldSz:           slideSize{Cx: slideWidth, Cy: slideHeight, Type: "screen16x9"},
		NotesSz:         extent{Cx: notesWidth, Cy: notesHeight},
	}
	for i := 0; i < slides; i++ {
		p.SldIDLst.IDs = append(p.SldIDLst.IDs, idRef{
			ID:  uint32(firstSlide + i),
			RID: fmt.Sprintf("rId%d", i+2),
		})
	}
	return p
}

type coreProperties struct {
	XMLName        xml.Name `xml:"cp:coreProperties"`
	XmlnsCP        string   `xml:"xmlns:cp,attr"`
	XmlnsDC        string   `xml:"xmlns:dc,attr"`
	XmlnsDCTerms   string   `xml:"xmlns:dcterms,attr"`
	XmlnsDCMIType  string   `xml:"xmlns:dcmitype,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	Title          string   `xml:"dc:title"`
	Creator        string   `xml:"dc:creator"`
	Identifier     string   `xml:"dc:identifier"`
	LastModifiedBy string   `xml:"cp:lastModifiedBy"`
	Revision       int      `xml:"cp:revision"`
	Created        w3cdtf   `xml:"dcterms:created"`
	Modified       w3cdtf   `xml:"dcterms:modified"`
}

type w3cdtf struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

func buildCore(title, author, id string, now time.Time) coreProperties {
	stamp := w3cdtf{Type: "dcterms:W3CDTF", Value: now.UTC().Format(time.RFC3339)}
	return coreProperties{
		XmlnsCP:        nsCoreProps,
		XmlnsDC:        "http://purl.org/dc/elements/1.1/",
		XmlnsDCTerms:   "http://purl.org/dc/terms/",
		XmlnsDCMIType:  "http://purl.org/dc/dcmitype/",
		XmlnsXSI:       "http://www.w3.org/2001/XMLSchema-instance",
		Title:          title,
		Creator:        author,
		Identifier:     id,
		LastModifiedBy: author,
		Revision:       1,
		Created:        stamp,
		Modified:       stamp,
	}
}

type appProperties struct {
	XMLName            xml.Name `xml:"Properties"`
	Xmlns              string   `xml:"xmlns,attr"`
	XmlnsVT            string   `xml:"xmlns:vt,attr"`
	Application        string   `xml:"Application"`
	PresentationFormat string   `xml:"PresentationFormat"`
	Slides             int      `xml:"Slides"`
	AppVersion         string   `xml:"AppVersion"`
}

func buildApp(slides int) appProperties {
	return appProperties{
		Xmlns:              nsExtendedProps,
		XmlnsVT:            nsDocPropsVT,
		Application:        "go-deckgen",
		PresentationFormat: "On-screen Show (16:9)",
		Slides:             slides,
		AppVersion:         "1.0000",
	}
}
