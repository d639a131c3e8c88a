package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for template rendering.
var (
	ErrDocumentRender  = errors.New("document template rendering failed")
	ErrWatermarkRender = errors.New("watermark template rendering failed")
)

// DocumentData is the input of the standalone document template.
type DocumentData struct {
	Title       string
	Subtitle    string
	Badge       string
	CompanyName string
	CTAText     string
	CTAURL      string
	Content     template.HTML // formatted fragment, inserted unmodified
	CSS         template.CSS
}

// DocumentAssembler defines the contract for wrapping a content fragment in
// a standalone HTML document.
type DocumentAssembler interface {
	Assemble(ctx context.Context, data *DocumentData) (string, error)
}

// DocumentAssembly renders the standalone document template.
type DocumentAssembly struct {
	tmpl *template.Template
}

// NewDocumentAssembly creates a DocumentAssembly from template content.
// Returns error if the template cannot be parsed.
func NewDocumentAssembly(tmplContent string) (*DocumentAssembly, error) {
	tmpl, err := template.New("document").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	return &DocumentAssembly{tmpl: tmpl}, nil
}

// Assemble renders the document. Title and badge are escaped by the
// template engine; content and CSS are trusted.
func (d *DocumentAssembly) Assemble(ctx context.Context, data *DocumentData) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if data == nil {
		data = &DocumentData{}
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body>, or at the
// start of the content, in that order of preference.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + SanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// SanitizeCSS escapes </ so CSS can never close its <style> block.
func SanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// WatermarkData holds the attribution footer content.
type WatermarkData struct {
	Text string
	URL  string
}

// WatermarkInjector defines the contract for attribution footer injection.
type WatermarkInjector interface {
	InjectWatermark(ctx context.Context, htmlContent string, data *WatermarkData) (string, error)
}

// WatermarkInjection renders and injects the attribution footer.
type WatermarkInjection struct {
	tmpl *template.Template
}

// NewWatermarkInjection creates a WatermarkInjection from template content.
// Returns error if the template cannot be parsed.
func NewWatermarkInjection(tmplContent string) (*WatermarkInjection, error) {
	tmpl, err := template.New("watermark").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing watermark template: %w", err)
	}
	return &WatermarkInjection{tmpl: tmpl}, nil
}

// InjectWatermark renders the footer and inserts it before </body>.
// If data is nil, returns htmlContent unchanged.
func (w *WatermarkInjection) InjectWatermark(ctx context.Context, htmlContent string, data *WatermarkData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var buf bytes.Buffer
	if err := w.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWatermarkRender, err)
	}

	footer := buf.String()
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.LastIndex(lowerHTML, "</body>"); idx != -1 {
		return htmlContent[:idx] + footer + htmlContent[idx:], nil
	}
	return htmlContent + footer, nil
}
