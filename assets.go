package leadmagnet

import (
	"errors"
	"fmt"

	"github.com/alnah/go-leadmagnet/internal/assets"
)

// DefaultTemplateSet is the name of the built-in template set.
const DefaultTemplateSet = assets.DefaultTemplateSetName

// AssetLoader defines the contract for loading theme stylesheets and
// document templates. Implementations may read from disk, embedded files,
// object storage, and so on.
type AssetLoader interface {
	// LoadStyle loads a theme stylesheet by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the document and watermark templates by name.
	// Returns ErrTemplateSetNotFound if the set doesn't exist.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the HTML templates of an exported document.
type TemplateSet struct {
	Name      string
	Document  string // standalone page with header, badge and content block
	Watermark string // attribution footer
}

// NewAssetLoader creates an AssetLoader rooted at basePath, falling back to
// the embedded themes for anything missing there. An empty basePath uses
// embedded assets only.
//
// The basePath directory may contain:
//   - styles/{theme}.css
//   - templates/{name}/document.html and watermark.html
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{inner: resolver}, nil
}

// assetLoaderAdapter maps internal loader types and errors to public ones.
type assetLoaderAdapter struct {
	inner assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	css, err := a.inner.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return css, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.inner.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &TemplateSet{Name: ts.Name, Document: ts.Document, Watermark: ts.Watermark}, nil
}

// convertAssetError maps internal asset errors to public sentinels.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound), errors.Is(err, assets.ErrInvalidAssetName):
		return fmt.Errorf("%w: %v", ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return fmt.Errorf("%w: %v", ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return fmt.Errorf("%w: %v", ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	default:
		return err
	}
}
