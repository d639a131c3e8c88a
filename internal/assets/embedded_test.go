package assets

import (
	"errors"
	"strings"
	"testing"
)

// builtinThemes lists the stylesheets shipped with the binary.
var builtinThemes = []string{"modern", "clean", "bold", "elegant"}

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range builtinThemes {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			css, err := loader.LoadStyle(name)
			if err != nil {
				t.Fatalf("LoadStyle(%q) error = %v", name, err)
			}
			for _, want := range []string{"var(--lm-primary)", ".watermark", ".badge"} {
				if !strings.Contains(css, want) {
					t.Errorf("LoadStyle(%q) missing %q", name, want)
				}
			}
		})
	}

	errTests := []struct {
		name      string
		styleName string
		wantErr   error
	}{
		{"nonexistent style", "nonexistent", ErrStyleNotFound},
		{"empty name", "", ErrInvalidAssetName},
		{"traversal with slash", "../secret", ErrInvalidAssetName},
		{"traversal with backslash", `..\secret`, ErrInvalidAssetName},
		{"dot in name", "modern.min", ErrInvalidAssetName},
	}

	for _, tt := range errTests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loader.LoadStyle(tt.styleName)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplateSet(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("default set", func(t *testing.T) {
		t.Parallel()

		ts, err := loader.LoadTemplateSet(DefaultTemplateSetName)
		if err != nil {
			t.Fatalf("LoadTemplateSet() error = %v", err)
		}
		if ts.Name != DefaultTemplateSetName {
			t.Errorf("Name = %q, want %q", ts.Name, DefaultTemplateSetName)
		}
		for _, want := range []string{"{{.Title}}", "{{.Badge}}", "{{.Content}}", "{{.CSS}}", "</body>"} {
			if !strings.Contains(ts.Document, want) {
				t.Errorf("Document missing %q", want)
			}
		}
		if !strings.Contains(ts.Watermark, "{{.Text}}") {
			t.Errorf("Watermark missing {{.Text}}: %q", ts.Watermark)
		}
	})

	t.Run("nonexistent set", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplateSet("nonexistent")
		if !errors.Is(err, ErrTemplateSetNotFound) {
			t.Errorf("error = %v, want ErrTemplateSetNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplateSet("../default")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestPackageLevelLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle(default) error = %v", err)
	}
	if _, err := LoadTemplateSet(DefaultTemplateSetName); err != nil {
		t.Errorf("LoadTemplateSet(default) error = %v", err)
	}
}
