package assets

// AssetLoader defines the contract for loading CSS themes and page templates.
type AssetLoader interface {
	// LoadStyle loads a CSS theme by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the templates stored under templates/{name}/.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if deck.html is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
