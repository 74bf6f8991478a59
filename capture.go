package deckgen

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/process"
)

// capturer abstracts markup-to-PDF capture to allow different backends.
type capturer interface {
	Capture(ctx context.Context, htmlContent string, opts *captureOptions) ([]byte, error)
	Close() error
}

// fileRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type fileRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *captureOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ capturer     = (*rodCapturer)(nil)
	_ fileRenderer = (*rodRenderer)(nil)
)

// captureOptions holds options for PDF capture.
type captureOptions struct {
	Page *PageSettings
}

// Browser viewport used while the page loads.
const (
	viewportWidth  = 1920
	viewportHeight = 1080
)

// rodRenderer implements fileRenderer using go-rod. Every call launches its
// own browser process and page; nothing is shared between calls.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	logger *log.Logger

	mu     sync.Mutex
	active map[*launcher.Launcher]struct{}
	closed bool
}

func newRodRenderer(logger *log.Logger) *rodRenderer {
	return &rodRenderer{
		logger: logger,
		active: make(map[*launcher.Launcher]struct{}),
	}
}

// newLauncher configures the browser launcher from the environment.
func newLauncher() *launcher.Launcher {
	l := launcher.New().Headless(true)

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	return l
}

// track registers a running launcher. It fails once the renderer is closed.
func (r *rodRenderer) track(l *launcher.Launcher) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return false
	}
	r.active[l] = struct{}{}
	return true
}

// release kills the browser process group and removes its profile directory.
func (r *rodRenderer) release(l *launcher.Launcher) {
	r.mu.Lock()
	delete(r.active, l)
	r.mu.Unlock()

	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

// RenderFromFile opens a local HTML file in a fresh headless Chrome and
// prints it to PDF. The browser, page and process are released on every path.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *captureOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := newLauncher()
	if !r.track(l) {
		return nil, renderError(ErrBrowserConnect, "renderer is closed")
	}
	defer r.release(l)

	u, err := l.Context(ctx).Launch()
	if err != nil {
		return nil, renderError(ErrBrowserConnect, err)
	}
	r.logger.Debug("browser launched", "pid", l.PID())

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, renderError(ErrBrowserConnect, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, renderError(ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, renderError(ErrPageCreate, err)
	}

	waitIdle := page.WaitNavigation(proto.PageLifecycleEventNameNetworkIdle)
	if err := page.Navigate("file://" + filePath); err != nil {
		return nil, renderError(ErrPageLoad, err)
	}
	waitIdle()

	if err := page.WaitLoad(); err != nil {
		return nil, renderError(ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		return nil, renderError(ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, renderError(ErrPDFGeneration, "reading PDF stream: "+err.Error())
	}

	return pdfBuf, nil
}

// Close kills any browser still running and rejects new renders.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	running := make([]*launcher.Launcher, 0, len(r.active))
	for l := range r.active {
		running = append(running, l)
	}
	r.mu.Unlock()

	for _, l := range running {
		if pid := l.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		l.Kill()
	}
	return nil
}

// buildPDFOptions constructs proto.PagePrintToPDF from the page settings.
func buildPDFOptions(opts *captureOptions) *proto.PagePrintToPDF {
	var page *PageSettings
	if opts != nil {
		page = opts.Page
	}
	w, h, margin := resolvePageDimensions(page)

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(w),
		PaperHeight:     floatPtr(h),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodCapturer captures markup to PDF using headless Chrome via go-rod.
type rodCapturer struct {
	renderer fileRenderer
}

// newRodCapturer creates a rodCapturer with the production renderer.
func newRodCapturer(logger *log.Logger) *rodCapturer {
	return &rodCapturer{renderer: newRodRenderer(logger)}
}

// Capture writes the markup to a temporary file and prints it to PDF.
func (c *rodCapturer) Capture(ctx context.Context, htmlContent string, opts *captureOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodCapturer) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
