package leadmagnet

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"k8s.io/klog/v2"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned when rendering through a closed pool.
var ErrPoolClosed = errors.New("renderer pool is closed")

// RendererFactory creates one pooled renderer.
type RendererFactory func() DocumentRenderer

// RendererPool manages renderers for parallel batch export. Each renderer
// owns its own browser. Renderers are created lazily on first acquire to
// avoid startup delay.
type RendererPool struct {
	size      int
	factory   RendererFactory
	renderers []DocumentRenderer
	sem       chan DocumentRenderer
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewRendererPool creates a pool with capacity for n renderers built by
// factory. A nil factory builds ChromeRenderers with default settings.
func NewRendererPool(n int, factory RendererFactory) *RendererPool {
	if n < 1 {
		n = 1
	}
	if factory == nil {
		factory = func() DocumentRenderer { return NewChromeRenderer(DefaultRenderTimeout) }
	}
	return &RendererPool{
		size:      n,
		factory:   factory,
		renderers: make([]DocumentRenderer, 0, n),
		sem:       make(chan DocumentRenderer, n),
	}
}

// Acquire gets a renderer from the pool, creating one if needed.
// Blocks until a renderer is released or ctx is done.
func (p *RendererPool) Acquire(ctx context.Context) (DocumentRenderer, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPoolClosed
	}

	select {
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return r, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		n := p.created
		p.mu.Unlock()

		r := p.factory()
		klog.V(4).Infof("renderer pool: created renderer %d/%d", n, p.size)

		p.mu.Lock()
		p.renderers = append(p.renderers, r)
		p.mu.Unlock()
		return r, nil
	}
	p.mu.Unlock()

	select {
	case r, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a renderer to the pool. The channel holds every renderer
// the pool can create, so the send under lock never blocks.
func (p *RendererPool) Release(r DocumentRenderer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- r
}

// RenderDocument renders with a pooled renderer, so a pool can stand in for
// a single renderer shared by concurrent exports.
func (p *RendererPool) RenderDocument(ctx context.Context, html, title string) ([]byte, error) {
	r, err := p.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Release(r)
	return r.RenderDocument(ctx, html, title)
}

// Close releases all renderer resources.
// Returns an aggregated error if several renderers fail to close.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := closeRenderer(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
