package leadmagnet

import (
	"github.com/alnah/go-leadmagnet/internal/pipeline"
)

// Compile-time interface checks.
var (
	_ pipeline.ContentFormatter = (*pipeline.Formatter)(nil)
	_ pipeline.CodeRenderer     = (*pipeline.ChromaCodeRenderer)(nil)
	_ pipeline.CodeRenderer     = pipeline.PlainCodeRenderer{}
)

// Formatter turns raw provider text into an HTML fragment.
// It is stateless and safe for concurrent use.
type Formatter struct {
	inner  *pipeline.Formatter
	chroma *pipeline.ChromaCodeRenderer // nil without highlighting
}

// FormatterOption configures a Formatter.
type FormatterOption func(*formatterConfig)

type formatterConfig struct {
	highlight bool
	style     string
}

// WithHighlighting enables class-based syntax highlighting of fenced code
// blocks with the named chroma style. An empty style uses "github".
func WithHighlighting(style string) FormatterOption {
	return func(c *formatterConfig) {
		c.highlight = true
		c.style = style
	}
}

// NewFormatter creates a Formatter. Without options, code blocks are
// escaped but not highlighted.
func NewFormatter(opts ...FormatterOption) *Formatter {
	var cfg formatterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f := &Formatter{}
	var code pipeline.CodeRenderer = pipeline.PlainCodeRenderer{}
	if cfg.highlight {
		style := cfg.style
		if style == "" {
			style = pipeline.DefaultHighlightStyle
		}
		f.chroma = pipeline.NewChromaCodeRenderer(style)
		code = f.chroma
	}
	f.inner = pipeline.NewFormatter(code)
	return f
}

// Format converts raw text into an HTML fragment. It never fails; empty or
// whitespace-only input yields "".
func (f *Formatter) Format(raw string) string {
	return f.inner.Format(raw)
}

// CodeCSS returns the stylesheet for highlighted code, or "" when
// highlighting is off.
func (f *Formatter) CodeCSS() string {
	if f.chroma == nil {
		return ""
	}
	return f.chroma.CSS()
}

var plainFormatter = NewFormatter()

// FormatContent converts raw provider text into an HTML fragment without
// syntax highlighting. Applying it to its own output returns the output
// unchanged.
func FormatContent(raw string) string {
	return plainFormatter.Format(raw)
}

// Stats describes generated content.
type Stats = pipeline.Stats

// AnalyzeContent counts words and checklist-style items in raw provider text
// and extracts its first heading.
func AnalyzeContent(raw string) Stats {
	return pipeline.Analyze(raw)
}
