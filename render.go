package leadmagnet

import "context"

// DocumentRenderer turns a standalone HTML document into a printable
// document (PDF). Implementations may render locally or call a remote
// document-generation service.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, html, title string) ([]byte, error)
}

// Compile-time interface checks.
var (
	_ DocumentRenderer = (*ChromeRenderer)(nil)
	_ DocumentRenderer = (*RemoteRenderer)(nil)
	_ DocumentRenderer = (*RendererPool)(nil)
	_ fileRenderer     = (*rodFileRenderer)(nil)
)

// closeRenderer closes r when it holds resources.
func closeRenderer(r DocumentRenderer) error {
	if c, ok := r.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
