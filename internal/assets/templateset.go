package assets

// Template file names inside a template set directory.
const (
	documentFile  = "document.html"
	watermarkFile = "watermark.html"
)

// TemplateSet holds the HTML templates used to build a standalone document.
type TemplateSet struct {
	Name      string // Identifier (name or directory path)
	Document  string // Standalone document layout
	Watermark string // Attribution footer
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// DefaultStyleName is the name of the built-in default theme.
const DefaultStyleName = "modern"
