package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no escape needed", "body { color: red; }", "body { color: red; }"},
		{"escapes style close", "</style>", `<\/style>`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
		{"case variation", "</STYLE>", `<\/STYLE>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeCSS(tt.input); got != tt.expected {
				t.Errorf("SanitizeCSS(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before head close",
			html: "<html><head></head><body></body></html>",
			css:  "p{}",
			want: "<html><head><style>p{}</style></head><body></body></html>",
		},
		{
			name: "after body open without head",
			html: `<body class="x"><p>a</p></body>`,
			css:  "p{}",
			want: `<body class="x"><style>p{}</style><p>a</p></body>`,
		},
		{
			name: "prepended to fragment",
			html: "<p>a</p>",
			css:  "p{}",
			want: "<style>p{}</style><p>a</p>",
		},
		{
			name: "empty css is a no-op",
			html: "<p>a</p>",
			css:  "",
			want: "<p>a</p>",
		},
	}

	inj := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := inj.InjectCSS(context.Background(), tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWatermarkInjection - Attribution footer placement
// ---------------------------------------------------------------------------

func TestWatermarkInjection(t *testing.T) {
	t.Parallel()

	inj, err := NewWatermarkInjection(`<div class="watermark">{{.Text}}</div>`)
	if err != nil {
		t.Fatalf("NewWatermarkInjection() error = %v", err)
	}

	t.Run("inserted before body close", func(t *testing.T) {
		t.Parallel()

		got, err := inj.InjectWatermark(context.Background(), "<body><p>x</p></body>", &WatermarkData{Text: "Made with <AI>"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `<body><p>x</p><div class="watermark">Made with &lt;AI&gt;</div></body>`
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("appended without body", func(t *testing.T) {
		t.Parallel()

		got, err := inj.InjectWatermark(context.Background(), "<p>x</p>", &WatermarkData{Text: "w"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(got, `<div class="watermark">w</div>`) {
			t.Errorf("got %q", got)
		}
	})

	t.Run("nil data is a no-op", func(t *testing.T) {
		t.Parallel()

		got, err := inj.InjectWatermark(context.Background(), "<p>x</p>", nil)
		if err != nil || got != "<p>x</p>" {
			t.Errorf("got (%q, %v)", got, err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := inj.InjectWatermark(ctx, "<p>x</p>", &WatermarkData{Text: "w"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestNewWatermarkInjection_InvalidTemplate(t *testing.T) {
	t.Parallel()

	if _, err := NewWatermarkInjection("{{.Text"); err == nil {
		t.Error("expected parse error, got nil")
	}
}

func TestWatermarkInjection_RenderError(t *testing.T) {
	t.Parallel()

	inj, err := NewWatermarkInjection("{{.Missing}}")
	if err != nil {
		t.Fatalf("NewWatermarkInjection() error = %v", err)
	}
	_, err = inj.InjectWatermark(context.Background(), "<p>x</p>", &WatermarkData{Text: "w"})
	if !errors.Is(err, ErrWatermarkRender) {
		t.Errorf("error = %v, want ErrWatermarkRender", err)
	}
}

// ---------------------------------------------------------------------------
// TestDocumentAssembly - Standalone document rendering
// ---------------------------------------------------------------------------

func TestDocumentAssembly(t *testing.T) {
	t.Parallel()

	tmpl := `<html><head><title>{{.Title}}</title><style>{{.CSS}}</style></head><body><span>{{.Badge}}</span><main>{{.Content}}</main></body></html>`
	asm, err := NewDocumentAssembly(tmpl)
	if err != nil {
		t.Fatalf("NewDocumentAssembly() error = %v", err)
	}

	got, err := asm.Assemble(context.Background(), &DocumentData{
		Title:   "Tips & <Tricks>",
		Badge:   "Checklist",
		Content: "<p><strong>kept</strong></p>",
		CSS:     "body { color: #111; }",
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	for _, want := range []string{
		"<title>Tips &amp; &lt;Tricks&gt;</title>",
		"<main><p><strong>kept</strong></p></main>",
		"<span>Checklist</span>",
		"body { color: #111; }",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}
