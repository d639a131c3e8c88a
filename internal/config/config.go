// Package config loads and validates the YAML configuration of the
// leadmagnet CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-leadmagnet/internal/fileutil"
	"github.com/alnah/go-leadmagnet/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPlanLength        = 20
	MaxPathLength        = 4096
	MaxURLLength         = 2048 // Browser limit
	MaxPageSizeLength    = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxFontLength        = 100
	MaxCompanyLength     = 100
	MaxCTATextLength     = 100
	MaxModelLength       = 100
	MaxEnvNameLength     = 100
	MaxPlatformLength    = 30
	MaxCommandLength     = 255
)

// Renderer modes.
const (
	RendererChrome = "chrome"
	RendererRemote = "remote"
)

// configDirName is the directory under the user config dir searched for
// named configs.
const configDirName = "go-leadmagnet"

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config holds all configuration of the CLI.
type Config struct {
	Plan       string           `yaml:"plan"` // "free", "pro", "unlimited" (default: "free")
	Output     OutputConfig     `yaml:"output"`
	Export     ExportConfig     `yaml:"export"`
	Page       PageConfig       `yaml:"page"`
	Design     DesignConfig     `yaml:"design"`
	Renderer   RendererConfig   `yaml:"renderer"`
	Generation GenerationConfig `yaml:"generation"`
	Share      ShareConfig      `yaml:"share"`
	Assets     AssetsConfig     `yaml:"assets"`
	Library    LibraryConfig    `yaml:"library"`
}

// OutputConfig defines where exported documents are written.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = current directory
}

// ExportConfig defines export defaults.
type ExportConfig struct {
	Format         string `yaml:"format"`         // "pdf" or "html" (default: "pdf")
	Highlight      bool   `yaml:"highlight"`      // Syntax-highlight fenced code
	HighlightStyle string `yaml:"highlightStyle"` // Chroma style name (default: "github")
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches (default: 0.75)
}

// DesignConfig holds brand defaults applied to newly generated artifacts.
type DesignConfig struct {
	PrimaryColor    string `yaml:"primaryColor"`
	SecondaryColor  string `yaml:"secondaryColor"`
	BackgroundColor string `yaml:"backgroundColor"`
	TextColor       string `yaml:"textColor"`
	FontFamily      string `yaml:"fontFamily"`
	TitleSize       string `yaml:"titleSize"` // "small", "medium", "large"
	Theme           string `yaml:"theme"`
	CompanyName     string `yaml:"companyName"`
	WebsiteURL      string `yaml:"websiteUrl"`
	CTAText         string `yaml:"ctaText"`
	CTAURL          string `yaml:"ctaUrl"`
}

// RendererConfig selects and tunes the PDF rendering surface.
type RendererConfig struct {
	Mode     string `yaml:"mode"`     // "chrome" or "remote" (default: "chrome")
	Endpoint string `yaml:"endpoint"` // Remote document service URL
	Timeout  string `yaml:"timeout"`  // Go duration, e.g. "30s"
	Platform string `yaml:"platform"` // Sent to the remote service
}

// GenerationConfig configures the chat-completion provider.
type GenerationConfig struct {
	Model      string `yaml:"model"`     // default: "gpt-4o"
	BaseURL    string `yaml:"baseURL"`   // OpenAI-compatible endpoint
	APIKeyEnv  string `yaml:"apiKeyEnv"` // Env var holding the key (default: OPENAI_API_KEY)
	MaxRetries int    `yaml:"maxRetries"`
}

// ShareConfig configures the native share hand-off.
type ShareConfig struct {
	Enabled bool     `yaml:"enabled"`
	Command string   `yaml:"command"` // e.g. "xdg-open", "open"
	Args    []string `yaml:"args"`    // extra args placed before the file path
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LibraryConfig defines where artifact files are kept.
type LibraryConfig struct {
	Dir string `yaml:"dir"` // Empty = current directory
}

// Validate checks enums, durations and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"plan", c.Plan, MaxPlanLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"page.size", c.Page.Size, MaxPageSizeLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"design.fontFamily", c.Design.FontFamily, MaxFontLength},
		{"design.companyName", c.Design.CompanyName, MaxCompanyLength},
		{"design.websiteUrl", c.Design.WebsiteURL, MaxURLLength},
		{"design.ctaText", c.Design.CTAText, MaxCTATextLength},
		{"design.ctaUrl", c.Design.CTAURL, MaxURLLength},
		{"renderer.endpoint", c.Renderer.Endpoint, MaxURLLength},
		{"renderer.platform", c.Renderer.Platform, MaxPlatformLength},
		{"generation.model", c.Generation.Model, MaxModelLength},
		{"generation.baseURL", c.Generation.BaseURL, MaxURLLength},
		{"generation.apiKeyEnv", c.Generation.APIKeyEnv, MaxEnvNameLength},
		{"share.command", c.Share.Command, MaxCommandLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"library.dir", c.Library.Dir, MaxPathLength},
	}
	for _, ch := range checks {
		if err := validateFieldLength(ch.field, ch.value, ch.max); err != nil {
			return err
		}
	}

	if err := validateEnum("plan", c.Plan, "free", "pro", "unlimited"); err != nil {
		return err
	}
	if err := validateEnum("export.format", c.Export.Format, "pdf", "html"); err != nil {
		return err
	}
	if err := validateEnum("renderer.mode", c.Renderer.Mode, RendererChrome, RendererRemote); err != nil {
		return err
	}
	if err := validateEnum("design.titleSize", c.Design.TitleSize, "small", "medium", "large"); err != nil {
		return err
	}

	for field, color := range map[string]string{
		"design.primaryColor":    c.Design.PrimaryColor,
		"design.secondaryColor":  c.Design.SecondaryColor,
		"design.backgroundColor": c.Design.BackgroundColor,
		"design.textColor":       c.Design.TextColor,
	} {
		if color != "" && !hexColorPattern.MatchString(color) {
			return fmt.Errorf("%w: %s: %q (must be #RRGGBB)", ErrInvalidValue, field, color)
		}
	}

	if c.Renderer.Mode == RendererRemote && c.Renderer.Endpoint == "" {
		return fmt.Errorf("%w: renderer.endpoint: required when renderer.mode is remote", ErrInvalidValue)
	}
	if c.Renderer.Endpoint != "" && !fileutil.IsURL(c.Renderer.Endpoint) {
		return fmt.Errorf("%w: renderer.endpoint: %q is not an http(s) URL", ErrInvalidValue, c.Renderer.Endpoint)
	}
	if c.Generation.BaseURL != "" && !fileutil.IsURL(c.Generation.BaseURL) {
		return fmt.Errorf("%w: generation.baseURL: %q is not an http(s) URL", ErrInvalidValue, c.Generation.BaseURL)
	}
	if _, err := c.RendererTimeout(); err != nil {
		return err
	}
	if c.Generation.MaxRetries < 0 || c.Generation.MaxRetries > 10 {
		return fmt.Errorf("%w: generation.maxRetries: must be between 0 and 10, got %d", ErrInvalidValue, c.Generation.MaxRetries)
	}
	if c.Share.Enabled && c.Share.Command == "" {
		return fmt.Errorf("%w: share.command: required when share is enabled", ErrInvalidValue)
	}

	return nil
}

// RendererTimeout parses renderer.timeout. Zero means "use the default".
func (c *Config) RendererTimeout() (time.Duration, error) {
	if c.Renderer.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Renderer.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: renderer.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: renderer.timeout: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value (use default) or one of allowed,
// compared case-insensitively.
func validateEnum(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Plan:     "free",
		Export:   ExportConfig{Format: "pdf"},
		Renderer: RendererConfig{Mode: RendererChrome},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files tried for a config name, in order:
// ./name.yaml, ./name.yml, then the same under the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
