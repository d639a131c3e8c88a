package leadmagnet

import (
	"context"
	"fmt"
	"os/exec"

	"k8s.io/klog/v2"

	"github.com/alnah/go-leadmagnet/internal/fileutil"
)

// ShareSurface hands a saved document to a native share or open facility.
type ShareSurface interface {
	// Available reports whether the surface can be used on this system.
	Available() bool
	// Share opens the share facility for the file at path.
	Share(ctx context.Context, path, title string) error
}

// Compile-time interface check.
var _ ShareSurface = (*CommandSurface)(nil)

// CommandSurface shares by running a system command with the file path as
// last argument, e.g. "xdg-open", "open" or a desktop share helper.
type CommandSurface struct {
	Command string
	Args    []string
}

// NewCommandSurface creates a CommandSurface.
func NewCommandSurface(command string, args ...string) *CommandSurface {
	return &CommandSurface{Command: command, Args: args}
}

// Available reports whether the command is on PATH.
func (c *CommandSurface) Available() bool {
	if c == nil || c.Command == "" {
		return false
	}
	_, err := exec.LookPath(c.Command)
	return err == nil
}

// Share runs the command and waits for it to exit.
func (c *CommandSurface) Share(ctx context.Context, path, _ string) error {
	args := append(append([]string{}, c.Args...), path)
	cmd := exec.CommandContext(ctx, c.Command, args...) // #nosec G204 -- command comes from user config
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %v: %s", c.Command, err, out)
	}
	return nil
}

// Sharer delivers exported documents: the file is saved to the download
// directory, then offered to the share surface when one is available.
type Sharer struct {
	surface     ShareSurface // nil: download only
	downloadDir string
}

// NewSharer creates a Sharer saving into downloadDir. A nil surface means
// direct download only.
func NewSharer(downloadDir string, surface ShareSurface) *Sharer {
	return &Sharer{surface: surface, downloadDir: downloadDir}
}

// Share saves blob as filename and offers it to the share surface. The
// returned bool reports whether the native surface was used; a missing or
// failing surface is not an error since the file is already downloaded.
func (s *Sharer) Share(ctx context.Context, blob []byte, filename string) (bool, error) {
	path, err := s.Download(blob, filename)
	if err != nil {
		return false, err
	}
	return s.Offer(ctx, path, filename)
}

// Offer hands an already saved file to the share surface and reports
// whether it was taken. Only context cancellation is an error.
func (s *Sharer) Offer(ctx context.Context, path, title string) (bool, error) {
	if s.surface == nil || !s.surface.Available() {
		klog.V(4).Infof("share: no surface available, downloaded %s", path)
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	if err := s.surface.Share(ctx, path, title); err != nil {
		klog.Warningf("share surface failed, file kept at %s: %v", path, err)
		return false, nil
	}
	return true, nil
}

// Download writes blob into the download directory and returns its path.
func (s *Sharer) Download(blob []byte, filename string) (string, error) {
	path, err := fileutil.WriteInDir(s.downloadDir, filename, blob)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrShareFailed, err)
	}
	return path, nil
}
