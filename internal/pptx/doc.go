// Package pptx writes PresentationML (.pptx) packages from planned slides.
//
// A package is a ZIP archive of XML parts. The Builder emits the minimal set
// PowerPoint, Keynote and LibreOffice accept:
//
//	[Content_Types].xml
//	_rels/.rels
//	docProps/core.xml, docProps/app.xml
//	ppt/presentation.xml (+ _rels)
//	ppt/presProps.xml, ppt/viewProps.xml, ppt/tableStyles.xml
//	ppt/theme/theme1.xml
//	ppt/slideMasters/slideMaster1.xml (+ _rels)   accent header bar lives here
//	ppt/slideLayouts/slideLayout1.xml (+ _rels)   a single blank layout
//	ppt/slides/slideN.xml (+ _rels)
//
// Static parts are embedded under templates/. Theme and master are rendered
// with text/template from a Theme; slides and the package manifests are
// marshaled with encoding/xml.
//
// Geometry arrives in inches from the layout package and is converted to
// EMUs (914400 per inch). Font sizes are written in hundredths of a point.
package pptx
