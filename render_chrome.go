package leadmagnet

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-leadmagnet/internal/fileutil"
	"github.com/alnah/go-leadmagnet/internal/process"
)

// DefaultRenderTimeout bounds a single page load and print.
const DefaultRenderTimeout = 30 * time.Second

// fileRenderer prints a local HTML file, so ChromeRenderer can be tested
// without a browser.
type fileRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error)
	Close() error
}

// ChromeRenderer renders documents to PDF with headless Chrome through
// go-rod. The browser is launched on first use; Rod downloads Chromium when
// none is installed. Safe for sequential use; use RendererPool for
// parallelism.
type ChromeRenderer struct {
	mu    sync.Mutex
	files fileRenderer
	page  *PageSettings
}

// ChromeOption configures a ChromeRenderer.
type ChromeOption func(*ChromeRenderer)

// WithChromePage sets the paper size, orientation and margins.
func WithChromePage(p *PageSettings) ChromeOption {
	return func(r *ChromeRenderer) {
		r.page = p
	}
}

// withFileRenderer replaces the browser backend (for testing).
func withFileRenderer(f fileRenderer) ChromeOption {
	return func(r *ChromeRenderer) {
		r.files = f
	}
}

// NewChromeRenderer creates a ChromeRenderer whose page loads time out after
// timeout. A non-positive timeout uses DefaultRenderTimeout.
func NewChromeRenderer(timeout time.Duration, opts ...ChromeOption) *ChromeRenderer {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	r := &ChromeRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.files == nil {
		r.files = &rodFileRenderer{timeout: timeout}
	}
	return r
}

// RenderDocument writes html to a temp file, loads it in Chrome and prints
// it to PDF. The title is carried by the document itself.
func (r *ChromeRenderer) RenderDocument(ctx context.Context, html, _ string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	defer cleanup()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.files.RenderFromFile(ctx, tmpPath, r.page)
}

// Close releases browser resources.
func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.files != nil {
		return r.files.Close()
	}
	return nil
}

// rodFileRenderer implements fileRenderer using go-rod.
type rodFileRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodFileRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containers
	if os.Getenv("CI") == "true" || bin != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// killLauncher terminates Chrome and its helper processes. Chrome spawns
// renderer and GPU children that survive a closed CDP connection.
func (r *rodFileRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher = nil
}

// Close releases browser resources.
func (r *rodFileRenderer) Close() error {
	if r.browser == nil {
		r.killLauncher()
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	r.killLauncher()
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodFileRenderer) RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	p, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = p.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := p.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := p.PDF(buildPDFOptions(page))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// buildPDFOptions maps page settings to Chrome print options. Nil settings
// print US Letter portrait with default margins.
func buildPDFOptions(page *PageSettings) *proto.PagePrintToPDF {
	w, h := page.dimensions()
	m := page.margin()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(w),
		PaperHeight:     floatPtr(h),
		MarginTop:       floatPtr(m),
		MarginBottom:    floatPtr(m),
		MarginLeft:      floatPtr(m),
		MarginRight:     floatPtr(m),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
