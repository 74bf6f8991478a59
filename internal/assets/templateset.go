package assets

// TemplateSet holds the HTML templates for page rendering.
type TemplateSet struct {
	Name string // Identifier (name or directory path)
	Deck string // deck.html content
}

// DeckTemplateFile is the file a template set directory must contain.
const DeckTemplateFile = "deck.html"

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in CSS theme.
const DefaultStyleName = "default"
