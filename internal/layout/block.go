package layout

import "github.com/alnah/go-deckgen/internal/markup"

// Canvas dimensions in inches (16:9).
const (
	CanvasWidth  = 10.0
	CanvasHeight = 5.625
)

// Rect is a rectangle in inches, origin at the top-left of the canvas.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Role tells serializers what a block means, independent of its geometry.
// The markup serializer maps roles to CSS classes.
type Role string

// Block roles.
const (
	RoleDeckTitle    Role = "deck-title"
	RoleSectionTitle Role = "section-title"
	RoleSubtitle     Role = "subtitle"
	RoleHeader       Role = "header"
	RoleSubheading   Role = "subheading"
	RoleBullet       Role = "bullet"
	RoleParagraph    Role = "paragraph"
	RolePlaceholder  Role = "placeholder"
	RoleCaption      Role = "caption"
)

// Align is horizontal text alignment.
type Align string

// Horizontal alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// VAlign is vertical text anchoring inside a block.
type VAlign string

// Vertical alignments.
const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
)

// TextStyle describes how a run set is drawn.
type TextStyle struct {
	Size   float64 // points
	Bold   bool
	Color  string // RRGGBB, no leading #
	Align  Align
	VAlign VAlign
}

// Border describes a shape outline.
type Border struct {
	Color  string  // RRGGBB
	Width  float64 // points
	Dashed bool
}

// Block is a positioned unit of slide content.
// The set of implementations is closed: *TextBlock and *ShapeBlock.
type Block interface {
	Bounds() Rect
	Role() Role
	block()
}

// TextBlock is a positioned set of styled runs.
type TextBlock struct {
	Rect   Rect
	Kind   Role
	Runs   []markup.Run
	Style  TextStyle
	Bullet bool // render with a list marker
}

// Bounds implements Block.
func (b *TextBlock) Bounds() Rect { return b.Rect }

// Role implements Block.
func (b *TextBlock) Role() Role { return b.Kind }

func (*TextBlock) block() {}

// Text returns the block text without markup.
func (b *TextBlock) Text() string { return markup.PlainText(b.Runs) }

// ShapeBlock is a filled, outlined rectangle with a centered label.
type ShapeBlock struct {
	Rect       Rect
	Kind       Role
	Fill       string // RRGGBB
	Border     Border
	Label      string
	LabelStyle TextStyle
}

// Bounds implements Block.
func (b *ShapeBlock) Bounds() Rect { return b.Rect }

// Role implements Block.
func (b *ShapeBlock) Role() Role { return b.Kind }

func (*ShapeBlock) block() {}

// Compile-time interface checks.
var (
	_ Block = (*TextBlock)(nil)
	_ Block = (*ShapeBlock)(nil)
)
