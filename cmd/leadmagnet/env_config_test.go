package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-leadmagnet/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Variable parsing
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want envConfig
	}{
		{
			name: "empty",
			vars: map[string]string{},
			want: envConfig{},
		},
		{
			name: "all set",
			vars: map[string]string{
				"LEADMAGNET_CONFIG":            "brand",
				"LEADMAGNET_PLAN":              "pro",
				"LEADMAGNET_OUTPUT_DIR":        "out",
				"LEADMAGNET_LIBRARY_DIR":       "lib",
				"LEADMAGNET_TIMEOUT":           "45s",
				"LEADMAGNET_RENDERER_ENDPOINT": "https://render.example.com",
				"LEADMAGNET_WORKERS":           "3",
			},
			want: envConfig{
				ConfigPath: "brand",
				Plan:       "pro",
				OutputDir:  "out",
				LibraryDir: "lib",
				Timeout:    45 * time.Second,
				Endpoint:   "https://render.example.com",
				Workers:    3,
			},
		},
		{
			name: "malformed numbers ignored",
			vars: map[string]string{
				"LEADMAGNET_TIMEOUT": "soon",
				"LEADMAGNET_WORKERS": "-2",
			},
			want: envConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := loadEnvConfig(func(k string) string { return tt.vars[k] })
			if *got != tt.want {
				t.Errorf("loadEnvConfig() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"HOME=/root",
		"LEADMAGNET_PLAN=pro",
		"LEADMAGNET_PLANS=pro",
	})

	out := buf.String()
	if !strings.Contains(out, "LEADMAGNET_PLANS") {
		t.Errorf("expected warning for LEADMAGNET_PLANS, got %q", out)
	}
	if strings.Count(out, "warning:") != 1 {
		t.Errorf("expected exactly one warning, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides file values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Plan = "free"
	cfg.Library.Dir = "from-file"

	applyEnvConfig(&envConfig{
		Plan:       "unlimited",
		LibraryDir: "from-env",
		Timeout:    time.Minute,
		Endpoint:   "https://render.example.com",
	}, cfg)

	if cfg.Plan != "unlimited" {
		t.Errorf("Plan = %q, want unlimited", cfg.Plan)
	}
	if cfg.Library.Dir != "from-env" {
		t.Errorf("Library.Dir = %q, want from-env", cfg.Library.Dir)
	}
	if cfg.Renderer.Timeout != "1m0s" {
		t.Errorf("Renderer.Timeout = %q, want 1m0s", cfg.Renderer.Timeout)
	}
	if cfg.Renderer.Mode != config.RendererRemote {
		t.Errorf("Renderer.Mode = %q, endpoint should select remote", cfg.Renderer.Mode)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after env overlay = %v", err)
	}
}

func TestApplyEnvConfig_EmptyKeepsFile(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.Dir = "docs"
	applyEnvConfig(&envConfig{}, cfg)

	if cfg.Output.Dir != "docs" || cfg.Renderer.Mode != config.RendererChrome {
		t.Errorf("empty env changed config: %+v", cfg)
	}
}
