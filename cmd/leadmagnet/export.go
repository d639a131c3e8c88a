package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	leadmagnet "github.com/alnah/go-leadmagnet"
	"github.com/alnah/go-leadmagnet/internal/config"
	"github.com/alnah/go-leadmagnet/internal/hints"
)

// exportParams groups parameters shared across a batch export.
type exportParams struct {
	format leadmagnet.ExportFormat
	plan   leadmagnet.Plan
	theme  string
	share  bool
	record bool
	sharer *leadmagnet.Sharer
	now    func() time.Time
}

// ExportResult holds the outcome of a single artifact export.
type ExportResult struct {
	InputPath  string
	OutputPath string
	Native     bool   // handed to the share command
	Message    string // user-facing failure message
	Err        error
	Duration   time.Duration
}

// runExport orchestrates the export command.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.renderer.workers); err != nil {
		return err
	}

	cfg, envCfg, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	mergeExportFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	plan, err := leadmagnet.ParsePlan(cfg.Plan)
	if err != nil {
		return err
	}
	format, err := leadmagnet.ParseFormat(cfg.Export.Format)
	if err != nil {
		return err
	}
	if flags.theme != "" && cfg.Assets.BasePath == "" {
		if _, err := leadmagnet.LookupTheme(flags.theme); err != nil {
			return err
		}
	}

	inputs := positional
	if len(inputs) == 0 && cfg.Library.Dir != "" {
		inputs = []string{cfg.Library.Dir}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: pass artifact files or a directory", ErrNoInput)
	}
	paths, err := discoverArtifacts(inputs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: no artifact files in %s", ErrNoInput, strings.Join(inputs, ", "))
	}

	page := buildPageSettings(cfg)
	timeout, err := cfg.RendererTimeout()
	if err != nil {
		return err
	}

	workers := flags.renderer.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	pool := leadmagnet.NewRendererPool(leadmagnet.ResolvePoolSize(workers), rendererFactory(cfg, page, timeout, env))
	defer func() { _ = pool.Close() }()

	opts := []leadmagnet.ExporterOption{
		leadmagnet.WithRenderer(pool),
		leadmagnet.WithPageSettings(page),
		leadmagnet.WithAssetPath(cfg.Assets.BasePath),
	}
	if cfg.Export.Highlight {
		code := leadmagnet.NewFormatter(leadmagnet.WithHighlighting(cfg.Export.HighlightStyle)).CodeCSS()
		opts = append(opts, leadmagnet.WithExtraCSS(code))
	}
	exporter, err := leadmagnet.NewExporter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = exporter.Close() }()

	params := &exportParams{
		format: format,
		plan:   plan,
		theme:  flags.theme,
		share:  flags.share || cfg.Share.Enabled,
		record: !flags.noRecord,
		sharer: leadmagnet.NewSharer(cfg.Output.Dir, shareSurface(cfg, env)),
		now:    env.Now,
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Exporting %d artifact(s) as %s on %s (%d renderer(s))\n", len(paths), format, plan, pool.Size())
	}

	results := exportBatch(ctx, exporter, pool.Size(), paths, params)
	if firstErr := printExportResults(results, flags.common.quiet, flags.common.verbose, env); firstErr != nil {
		if len(results) > 1 {
			return fmt.Errorf("%d of %d exports failed: %w%s", countFailed(results), len(results), firstErr, planHint(firstErr, plan))
		}
		return fmt.Errorf("%w%s", firstErr, planHint(firstErr, plan))
	}
	return nil
}

// mergeExportFlags applies set CLI flags over cfg (CLI wins).
func mergeExportFlags(f *exportFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Export.Format = f.format
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.orientation != "" {
		cfg.Page.Orientation = f.page.orientation
	}
	if f.page.margin != 0 {
		cfg.Page.Margin = f.page.margin
	}
	if f.renderer.mode != "" {
		cfg.Renderer.Mode = f.renderer.mode
	}
	if f.renderer.endpoint != "" {
		cfg.Renderer.Endpoint = f.renderer.endpoint
		if f.renderer.mode == "" {
			cfg.Renderer.Mode = config.RendererRemote
		}
	}
	if f.renderer.timeout != "" {
		cfg.Renderer.Timeout = f.renderer.timeout
	}
}

// buildPageSettings fills unset page fields with defaults. Validation
// happens in NewExporter.
func buildPageSettings(cfg *config.Config) *leadmagnet.PageSettings {
	page := leadmagnet.DefaultPageSettings()
	if cfg.Page.Size != "" {
		page.Size = strings.ToLower(cfg.Page.Size)
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != 0 {
		page.Margin = cfg.Page.Margin
	}
	return page
}

// rendererFactory returns the factory that fills the renderer pool.
func rendererFactory(cfg *config.Config, page *leadmagnet.PageSettings, timeout time.Duration, env *Environment) leadmagnet.RendererFactory {
	if env.Renderers != nil {
		return env.Renderers
	}
	if strings.EqualFold(cfg.Renderer.Mode, config.RendererRemote) {
		endpoint, platform := cfg.Renderer.Endpoint, cfg.Renderer.Platform
		return func() leadmagnet.DocumentRenderer {
			return leadmagnet.NewRemoteRenderer(endpoint, timeout, leadmagnet.WithPlatform(platform))
		}
	}
	return func() leadmagnet.DocumentRenderer {
		return leadmagnet.NewChromeRenderer(timeout, leadmagnet.WithChromePage(page))
	}
}

// shareSurface returns the configured share command, if any.
func shareSurface(cfg *config.Config, env *Environment) leadmagnet.ShareSurface {
	if env.Surface != nil {
		return env.Surface
	}
	if cfg.Share.Command == "" {
		return nil
	}
	return leadmagnet.NewCommandSurface(cfg.Share.Command, cfg.Share.Args...)
}

// exportBatch exports artifact files concurrently. Rendering is bounded by
// the exporter's renderer pool; workers only overlap file I/O and HTML
// assembly with it.
func exportBatch(ctx context.Context, exporter *leadmagnet.Exporter, workers int, paths []string, params *exportParams) []ExportResult {
	if len(paths) == 0 {
		return nil
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]ExportResult, len(paths))
	jobs := make(chan int, len(paths))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ExportResult{InputPath: paths[idx], Err: err}
					continue
				}
				results[idx] = exportFile(ctx, exporter, paths[idx], params)
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// exportFile exports one artifact file and records the download on it.
func exportFile(ctx context.Context, exporter *leadmagnet.Exporter, path string, params *exportParams) ExportResult {
	start := time.Now()
	result := ExportResult{InputPath: path}
	fail := func(err error) ExportResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	a, err := loadArtifact(path)
	if err != nil {
		return fail(err)
	}
	if params.theme != "" {
		a.Design.Template = params.theme
	}

	doc, err := exporter.Export(ctx, leadmagnet.ExportRequest{
		Format:   params.format,
		Artifact: a,
		Plan:     params.plan,
	})
	if err != nil {
		result.Message = leadmagnet.ExportErrorMessage(params.format, err)
		return fail(err)
	}

	result.OutputPath, err = params.sharer.Download(doc.Data, doc.Filename)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteDocument, err))
	}
	if params.share {
		if result.Native, err = params.sharer.Offer(ctx, result.OutputPath, doc.Filename); err != nil {
			return fail(err)
		}
	}

	if params.record {
		updated := a.RecordDownload(params.format)
		updated.UpdatedAt = params.now().UTC()
		if err := writeArtifact(path, &updated); err != nil {
			return fail(err)
		}
	}

	result.Duration = time.Since(start)
	return result
}

// countFailed counts failed exports.
func countFailed(results []ExportResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// printExportResults outputs export results and returns the first error.
func printExportResults(results []ExportResult, quiet, verbose bool, env *Environment) error {
	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			if r.Message != "" {
				fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", r.InputPath, r.Message)
			} else {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}

		if quiet {
			continue
		}

		suffix := ""
		if r.Native {
			suffix = " (shared)"
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s%s (%v)\n", r.InputPath, r.OutputPath, suffix, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s%s\n", r.OutputPath, suffix)
		}
	}

	if !quiet && len(results) > 1 {
		failed := countFailed(results)
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return firstErr
}

// planHint suggests an upgrade when err is a plan restriction.
func planHint(err error, plan leadmagnet.Plan) string {
	if exitCodeFor(err) != ExitPlan {
		return ""
	}
	return hints.ForPlanRestriction(string(plan))
}
