package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads the built-in themes and template sets.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a built-in theme stylesheet.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// LoadTemplateSet loads a built-in template set.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("templates", name)
	document, docErr := templates.ReadFile(path.Join(dir, documentFile))
	watermark, wmErr := templates.ReadFile(path.Join(dir, watermarkFile))

	return buildTemplateSet(name, document, docErr, watermark, wmErr, func(err error) bool {
		return errors.Is(err, fs.ErrNotExist)
	})
}

// buildTemplateSet classifies the outcome of reading both templates of a set.
// Shared by the embedded and filesystem loaders.
func buildTemplateSet(name string, document []byte, docErr error, watermark []byte, wmErr error, notExist func(error) bool) (*TemplateSet, error) {
	if notExist(docErr) && notExist(wmErr) {
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	}
	if docErr != nil && !notExist(docErr) {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, documentFile, docErr)
	}
	if wmErr != nil && !notExist(wmErr) {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, watermarkFile, wmErr)
	}
	if notExist(docErr) {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, documentFile)
	}
	if notExist(wmErr) {
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, watermarkFile)
	}

	return &TemplateSet{
		Name:      name,
		Document:  string(document),
		Watermark: string(watermark),
	}, nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
