package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "modern", false},
		{"hyphen", "my-theme", false},
		{"underscore", "my_theme", false},
		{"digits", "theme2", false},
		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot", "a.b", true},
		{"parent traversal", "..", true},
		{"absolute path", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAssetName) {
					t.Errorf("ValidateAssetName(%q) = %v, want ErrInvalidAssetName", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
