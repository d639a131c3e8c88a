package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-leadmagnet/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // LEADMAGNET_CONFIG: config file name or path
	Plan       string        // LEADMAGNET_PLAN: free, pro, unlimited
	OutputDir  string        // LEADMAGNET_OUTPUT_DIR: export directory
	LibraryDir string        // LEADMAGNET_LIBRARY_DIR: artifact directory
	Timeout    time.Duration // LEADMAGNET_TIMEOUT: render timeout
	Endpoint   string        // LEADMAGNET_RENDERER_ENDPOINT: remote renderer URL
	Workers    int           // LEADMAGNET_WORKERS: parallel renderers
}

// knownEnvVars lists valid LEADMAGNET_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"LEADMAGNET_CONFIG":            true,
	"LEADMAGNET_PLAN":              true,
	"LEADMAGNET_OUTPUT_DIR":        true,
	"LEADMAGNET_LIBRARY_DIR":       true,
	"LEADMAGNET_TIMEOUT":           true,
	"LEADMAGNET_RENDERER_ENDPOINT": true,
	"LEADMAGNET_WORKERS":           true,
}

// loadEnvConfig reads the recognized LEADMAGNET_* variables. Malformed
// durations and counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("LEADMAGNET_CONFIG"),
		Plan:       getenv("LEADMAGNET_PLAN"),
		OutputDir:  getenv("LEADMAGNET_OUTPUT_DIR"),
		LibraryDir: getenv("LEADMAGNET_LIBRARY_DIR"),
		Endpoint:   getenv("LEADMAGNET_RENDERER_ENDPOINT"),
	}

	if timeout := getenv("LEADMAGNET_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("LEADMAGNET_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized LEADMAGNET_*
// variable, e.g. LEADMAGNET_PLANS instead of LEADMAGNET_PLAN.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "LEADMAGNET_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment values onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Plan != "" {
		cfg.Plan = env.Plan
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.LibraryDir != "" {
		cfg.Library.Dir = env.LibraryDir
	}
	if env.Timeout > 0 {
		cfg.Renderer.Timeout = env.Timeout.String()
	}

	// An endpoint alone selects the remote renderer.
	if env.Endpoint != "" {
		cfg.Renderer.Endpoint = env.Endpoint
		cfg.Renderer.Mode = config.RendererRemote
	}
}
