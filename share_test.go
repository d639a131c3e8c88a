package leadmagnet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type mockSurface struct {
	available bool
	err       error
	called    bool
	path      string
	title     string
}

func (m *mockSurface) Available() bool { return m.available }

func (m *mockSurface) Share(ctx context.Context, path, title string) error {
	m.called = true
	m.path = path
	m.title = title
	return m.err
}

func TestSharer_Share(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		surface    *mockSurface
		wantNative bool
		wantCalled bool
	}{
		{
			name:       "native surface used",
			surface:    &mockSurface{available: true},
			wantNative: true,
			wantCalled: true,
		},
		{
			name:       "surface unavailable falls back to download",
			surface:    &mockSurface{available: false},
			wantNative: false,
		},
		{
			name:       "surface failure falls back to download",
			surface:    &mockSurface{available: true, err: errors.New("dismissed")},
			wantNative: false,
			wantCalled: true,
		},
		{
			name:       "no surface",
			wantNative: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			var surface ShareSurface
			if tt.surface != nil {
				surface = tt.surface
			}
			s := NewSharer(dir, surface)

			native, err := s.Share(context.Background(), []byte("%PDF"), "guide-0123abcd.pdf")
			if err != nil {
				t.Fatalf("Share() error = %v", err)
			}
			if native != tt.wantNative {
				t.Errorf("native = %v, want %v", native, tt.wantNative)
			}

			path := filepath.Join(dir, "guide-0123abcd.pdf")
			data, err := os.ReadFile(path)
			if err != nil || string(data) != "%PDF" {
				t.Errorf("downloaded file = (%q, %v)", data, err)
			}

			if tt.surface != nil {
				if tt.surface.called != tt.wantCalled {
					t.Errorf("surface called = %v, want %v", tt.surface.called, tt.wantCalled)
				}
				if tt.wantCalled && tt.surface.path != path {
					t.Errorf("surface path = %q, want %q", tt.surface.path, path)
				}
			}
		})
	}
}

func TestSharer_UnsafeFilename(t *testing.T) {
	t.Parallel()

	s := NewSharer(t.TempDir(), nil)
	_, err := s.Share(context.Background(), []byte("x"), "../escape.pdf")
	if !errors.Is(err, ErrShareFailed) {
		t.Errorf("error = %v, want ErrShareFailed", err)
	}
}

func TestCommandSurface_Available(t *testing.T) {
	t.Parallel()

	if NewCommandSurface("leadmagnet-no-such-command-7f3a").Available() {
		t.Error("missing command reported available")
	}
	if NewCommandSurface("").Available() {
		t.Error("empty command reported available")
	}
	var nilSurface *CommandSurface
	if nilSurface.Available() {
		t.Error("nil surface reported available")
	}
}
