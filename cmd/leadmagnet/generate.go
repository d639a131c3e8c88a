package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	leadmagnet "github.com/alnah/go-leadmagnet"
	"github.com/alnah/go-leadmagnet/internal/config"
	"github.com/alnah/go-leadmagnet/internal/hints"
)

// runGenerate generates one artifact and saves it into the library.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	cfg, _, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	mergeGenerateFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	plan, err := leadmagnet.ParsePlan(cfg.Plan)
	if err != nil {
		return err
	}

	req := leadmagnet.GenerationRequest{
		Type:           leadmagnet.ArtifactType(flags.kind),
		Title:          flags.title,
		Prompt:         flags.prompt,
		TargetAudience: flags.audience,
		Niche:          flags.niche,
		Tone:           leadmagnet.Tone(flags.tone),
		Length:         leadmagnet.Length(flags.length),
		ItemCount:      flags.items,
		UserID:         flags.userID,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	library, err := loadLibrary(cfg.Library.Dir)
	if err != nil {
		return err
	}
	plans := leadmagnet.DefaultPlans()
	if owned := countOwned(library, req.UserID); !plans.CanCreateArtifact(plan, owned) {
		limits, _ := plans.Limits(plan)
		return fmt.Errorf("%w: %d of %d artifacts used on %s%s",
			leadmagnet.ErrArtifactLimit, owned, limits.MaxArtifacts, plan, hints.ForPlanRestriction(string(plan)))
	}

	completer, err := buildCompleter(cfg, env)
	if err != nil {
		return err
	}

	formatter := leadmagnet.NewFormatter()
	if cfg.Export.Highlight {
		formatter = leadmagnet.NewFormatter(leadmagnet.WithHighlighting(cfg.Export.HighlightStyle))
	}
	gen := leadmagnet.NewGenerator(completer, leadmagnet.WithFormatter(formatter))

	start := time.Now()
	if !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Generating %s %q...\n", req.Type.Label(), req.Title)
	}
	a, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}
	applyDesignConfig(&a.Design, cfg.Design)

	path, err := saveArtifact(cfg.Library.Dir, a)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		if flags.common.verbose {
			fmt.Fprintf(env.Stdout, "Created %s (%d words, %d items, %v)\n", path, a.WordCount, a.ItemCount, time.Since(start).Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", path)
		}
	}
	return nil
}

// mergeGenerateFlags applies set CLI flags over cfg (CLI wins).
func mergeGenerateFlags(f *generateFlags, cfg *config.Config) {
	if f.model != "" {
		cfg.Generation.Model = f.model
	}
	if f.output != "" {
		cfg.Library.Dir = f.output
	}
	if f.highlight {
		cfg.Export.Highlight = true
	}
}

// buildCompleter returns the injected completer or an OpenAI client keyed
// from the configured environment variable.
func buildCompleter(cfg *config.Config, env *Environment) (leadmagnet.Completer, error) {
	if env.Completer != nil {
		return env.Completer, nil
	}

	keyEnv := cfg.Generation.APIKeyEnv
	if keyEnv == "" {
		keyEnv = leadmagnet.DefaultAPIKeyEnv
	}
	key := env.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w: %s is not set%s", ErrMissingAPIKey, keyEnv, hints.ForMissingAPIKey(keyEnv))
	}

	return leadmagnet.NewOpenAIClient(leadmagnet.OpenAIConfig{
		APIKey:     key,
		BaseURL:    cfg.Generation.BaseURL,
		Model:      cfg.Generation.Model,
		MaxRetries: cfg.Generation.MaxRetries,
	}), nil
}

// applyDesignConfig overlays the configured brand defaults onto d.
func applyDesignConfig(d *leadmagnet.Design, c config.DesignConfig) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&d.PrimaryColor, c.PrimaryColor)
	set(&d.SecondaryColor, c.SecondaryColor)
	set(&d.BackgroundColor, c.BackgroundColor)
	set(&d.TextColor, c.TextColor)
	set(&d.FontFamily, c.FontFamily)
	set(&d.TitleSize, strings.ToLower(c.TitleSize))
	set(&d.Template, c.Theme)
	set(&d.CompanyName, c.CompanyName)
	set(&d.WebsiteURL, c.WebsiteURL)
	set(&d.CTAText, c.CTAText)
	set(&d.CTAURL, c.CTAURL)
}
