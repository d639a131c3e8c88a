package leadmagnet

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"k8s.io/klog/v2"

	"github.com/alnah/go-leadmagnet/internal/pipeline"
)

// Default attribution footer.
const (
	DefaultWatermarkText = "Made with LeadMagnet AI"
)

// Compile-time interface checks.
var (
	_ pipeline.DocumentAssembler = (*pipeline.DocumentAssembly)(nil)
	_ pipeline.CSSInjector       = (*pipeline.CSSInjection)(nil)
	_ pipeline.WatermarkInjector = (*pipeline.WatermarkInjection)(nil)
)

// ExportRequest is the input of a single export.
type ExportRequest struct {
	Format   ExportFormat
	Artifact *Artifact // read-only; never mutated
	Plan     Plan
	Surface  DocumentRenderer // optional; overrides the exporter's renderer
}

// Document is a successfully exported artifact.
type Document struct {
	Data        []byte
	Filename    string
	MIMEType    string
	Format      ExportFormat
	Theme       string // theme actually rendered
	Watermarked bool
}

// ExportResult is the flat result of ExportArtifact. Either Blob and
// Filename are set, or Error is.
type ExportResult struct {
	Success  bool
	Blob     []byte
	Filename string
	MIMEType string
	Error    string
}

// Exporter turns artifacts into downloadable documents, applying plan
// gating and watermarking. Create with NewExporter and Close when done.
// Safe for concurrent use when its renderer is (see RendererPool).
type Exporter struct {
	cfg         exporterConfig
	assetLoader AssetLoader
	renderer    DocumentRenderer
	ownRenderer bool

	assembler         pipeline.DocumentAssembler
	cssInjector       pipeline.CSSInjector
	watermarkInjector pipeline.WatermarkInjector

	newSuffix func() string
}

type exporterConfig struct {
	timeout       time.Duration
	plans         PlanTable
	page          *PageSettings
	assetPath     string
	templateSet   string
	extraCSS      string
	watermarkText string
	watermarkURL  string
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithTimeout sets the timeout of the default Chrome renderer.
// Panics if d is not positive.
func WithTimeout(d time.Duration) ExporterOption {
	if d <= 0 {
		panic("leadmagnet: timeout must be positive")
	}
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithRenderer sets the rendering surface used for PDF exports.
// The exporter does not close renderers it did not create.
func WithRenderer(r DocumentRenderer) ExporterOption {
	return func(e *Exporter) {
		e.renderer = r
	}
}

// WithPlans replaces the built-in plan table.
func WithPlans(t PlanTable) ExporterOption {
	return func(e *Exporter) {
		e.cfg.plans = t
	}
}

// WithPageSettings sets paper size, orientation and margins.
func WithPageSettings(p *PageSettings) ExporterOption {
	return func(e *Exporter) {
		e.cfg.page = p
	}
}

// WithAssetLoader sets a custom loader for themes and templates.
func WithAssetLoader(l AssetLoader) ExporterOption {
	return func(e *Exporter) {
		e.assetLoader = l
	}
}

// WithAssetPath loads themes and templates from dir, falling back to the
// embedded ones. Ignored when WithAssetLoader is also given.
func WithAssetPath(dir string) ExporterOption {
	return func(e *Exporter) {
		e.cfg.assetPath = dir
	}
}

// WithTemplateSet selects the document template set by name.
func WithTemplateSet(name string) ExporterOption {
	return func(e *Exporter) {
		e.cfg.templateSet = name
	}
}

// WithExtraCSS appends css after the theme, for highlighted code or
// caller overrides.
func WithExtraCSS(css string) ExporterOption {
	return func(e *Exporter) {
		if css == "" {
			return
		}
		if e.cfg.extraCSS != "" {
			e.cfg.extraCSS += "\n"
		}
		e.cfg.extraCSS += css
	}
}

// WithWatermark overrides the attribution footer text and link.
func WithWatermark(text, url string) ExporterOption {
	return func(e *Exporter) {
		e.cfg.watermarkText = text
		e.cfg.watermarkURL = url
	}
}

// withSuffixFunc replaces the filename collision suffix (for testing).
func withSuffixFunc(f func() string) ExporterOption {
	return func(e *Exporter) {
		e.newSuffix = f
	}
}

// NewExporter creates an Exporter. Returns error if the plan table, page
// settings, assets or templates are invalid.
func NewExporter(opts ...ExporterOption) (*Exporter, error) {
	e := &Exporter{
		cfg: exporterConfig{
			timeout:       DefaultRenderTimeout,
			plans:         DefaultPlans(),
			templateSet:   DefaultTemplateSet,
			watermarkText: DefaultWatermarkText,
		},
		cssInjector: &pipeline.CSSInjection{},
		newSuffix:   newSuffix,
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.plans.Validate(); err != nil {
		return nil, err
	}
	if err := e.cfg.page.Validate(); err != nil {
		return nil, err
	}

	if e.assetLoader == nil {
		loader, err := NewAssetLoader(e.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		e.assetLoader = loader
	}

	ts, err := e.assetLoader.LoadTemplateSet(e.cfg.templateSet)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", e.cfg.templateSet, err)
	}
	if e.assembler, err = pipeline.NewDocumentAssembly(ts.Document); err != nil {
		return nil, fmt.Errorf("initializing document template: %w", err)
	}
	if e.watermarkInjector, err = pipeline.NewWatermarkInjection(ts.Watermark); err != nil {
		return nil, fmt.Errorf("initializing watermark template: %w", err)
	}

	if e.renderer == nil {
		e.renderer = NewChromeRenderer(e.cfg.timeout, WithChromePage(e.cfg.page))
		e.ownRenderer = true
	}
	return e, nil
}

// Plans returns the plan table used for gating.
func (e *Exporter) Plans() PlanTable {
	return e.cfg.plans
}

// Export renders req.Artifact in req.Format. Plan restrictions are checked
// before any rendering work. The artifact is never modified.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Exporter) Export(ctx context.Context, req ExportRequest) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := e.validateRequest(req); err != nil {
		return nil, err
	}

	a := req.Artifact
	theme := e.cfg.plans.ResolveTheme(a.Design.Template, req.Plan)
	if a.Design.Template != "" && theme != a.Design.Template {
		klog.V(4).Infof("export: theme %q requires premium templates, using %q", a.Design.Template, theme)
	}

	html, err := e.buildHTML(ctx, a, theme)
	if err != nil {
		return nil, err
	}

	watermarked := e.cfg.plans.ShouldAddWatermark(req.Plan)
	if watermarked {
		html, err = e.watermarkInjector.InjectWatermark(ctx, html, &pipeline.WatermarkData{
			Text: e.cfg.watermarkText,
			URL:  e.cfg.watermarkURL,
		})
		if err != nil {
			return nil, fmt.Errorf("injecting watermark: %w", err)
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var data []byte
	switch req.Format {
	case FormatHTML:
		data = []byte(html)
	case FormatPDF:
		data, err = e.render(ctx, req, html)
		if err != nil {
			return nil, err
		}
	}

	return &Document{
		Data:        data,
		Filename:    buildFilename(a.Title, e.newSuffix(), req.Format),
		MIMEType:    req.Format.MIMEType(),
		Format:      req.Format,
		Theme:       theme,
		Watermarked: watermarked,
	}, nil
}

// ExportArtifact runs Export and folds the outcome into an ExportResult
// whose Error is fit to show to the user.
func (e *Exporter) ExportArtifact(ctx context.Context, req ExportRequest) ExportResult {
	doc, err := e.Export(ctx, req)
	if err != nil {
		klog.V(4).Infof("export failed: format=%s plan=%s: %v", req.Format, req.Plan, err)
		return ExportResult{Error: ExportErrorMessage(req.Format, err)}
	}
	return ExportResult{
		Success:  true,
		Blob:     doc.Data,
		Filename: doc.Filename,
		MIMEType: doc.MIMEType,
	}
}

// ExportErrorMessage turns an Export error into a user-facing message.
func ExportErrorMessage(format ExportFormat, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFormatNotAllowed):
		return fmt.Sprintf("%s export is not available on your plan. Please upgrade to access this feature.", strings.ToUpper(string(format)))
	case errors.Is(err, ErrUnknownFormat):
		return "Unknown export format"
	}

	var remote *RemoteError
	switch {
	case errors.As(err, &remote):
		return remote.Message
	case format == FormatHTML:
		return "Failed to export HTML"
	default:
		return "Failed to export PDF"
	}
}

// Close releases the renderer when the exporter created it.
func (e *Exporter) Close() error {
	if e.ownRenderer && e.renderer != nil {
		return closeRenderer(e.renderer)
	}
	return nil
}

// validateRequest checks the request before any work is done. The plan
// restriction is reported ahead of design problems.
func (e *Exporter) validateRequest(req ExportRequest) error {
	if req.Artifact == nil {
		return ErrNilArtifact
	}
	switch req.Format {
	case FormatPDF, FormatHTML:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
	}
	if _, err := e.cfg.plans.Limits(req.Plan); err != nil {
		return err
	}
	if !e.cfg.plans.CanExportFormat(req.Format, req.Plan) {
		return fmt.Errorf("%w: %s on %s", ErrFormatNotAllowed, req.Format, req.Plan)
	}
	return req.Artifact.Design.Validate()
}

// buildHTML wraps the artifact content in the standalone document.
func (e *Exporter) buildHTML(ctx context.Context, a *Artifact, theme string) (string, error) {
	themeCSS, err := e.assetLoader.LoadStyle(theme)
	if err != nil {
		return "", fmt.Errorf("loading theme %q: %w", theme, err)
	}

	css := buildDesignCSS(a.Design) + buildPageCSS(e.cfg.page) + themeCSS + buildPrintCSS()

	html, err := e.assembler.Assemble(ctx, &pipeline.DocumentData{
		Title:       a.Title,
		Subtitle:    a.Subtitle,
		Badge:       a.Type.Label(),
		CompanyName: a.Design.CompanyName,
		CTAText:     a.Design.CTAText,
		CTAURL:      a.Design.CTAURL,
		Content:     template.HTML(a.Content), // #nosec G203 -- formatter output
		CSS:         template.CSS(pipeline.SanitizeCSS(css)), // #nosec G203 -- built from validated design
	})
	if err != nil {
		return "", err
	}

	html = e.cssInjector.InjectCSS(ctx, html, e.cfg.extraCSS)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return html, nil
}

// render hands the standalone HTML to the rendering surface.
func (e *Exporter) render(ctx context.Context, req ExportRequest, html string) ([]byte, error) {
	r := req.Surface
	if r == nil {
		r = e.renderer
	}

	data, err := r.RenderDocument(ctx, html, req.Artifact.Title)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	return data, nil
}
