package assets

// AssetLoader defines the contract for loading theme styles and template sets.
type AssetLoader interface {
	// LoadStyle loads a theme stylesheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the document and watermark templates of a set.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	// Returns ErrIncompleteTemplateSet if one of the templates is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
