package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	plan    string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// rendererFlags selects and tunes the PDF surface.
type rendererFlags struct {
	mode     string
	endpoint string
	timeout  string
	workers  int
}

// exportFlags holds all flags for the export command.
type exportFlags struct {
	common    commonFlags
	page      pageFlags
	renderer  rendererFlags
	format    string
	output    string
	theme     string
	assetPath string
	share     bool
	noRecord  bool
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common    commonFlags
	kind      string
	title     string
	prompt    string
	audience  string
	niche     string
	tone      string
	length    string
	items     int
	userID    string
	model     string
	output    string
	highlight bool
}

// formatFlags holds all flags for the format command.
type formatFlags struct {
	common    commonFlags
	stats     bool
	highlight bool
	style     string
}

// editFlags holds all flags for the edit command.
type editFlags struct {
	common commonFlags
	text   string
}

// listFlags holds all flags for the list command.
type listFlags struct {
	common     commonFlags
	dateFormat string
}

// plansFlags holds all flags for the plans command.
type plansFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.plan, "plan", "", "plan tier: free, pro, unlimited")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed logs and timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addRendererFlags adds renderer flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.mode, "renderer", "", "PDF renderer: chrome, remote")
	fs.StringVar(&f.endpoint, "endpoint", "", "remote renderer URL")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renderers (0 = auto)")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting and
// prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseArgs parses args, marking failures as usage errors. flag.ErrHelp is
// returned as is so -h exits cleanly.
func parseArgs(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, w io.Writer) (*exportFlags, []string, error) {
	fs := newFlagSet("export", w, printExportUsage)
	f := &exportFlags{}

	fs.StringVarP(&f.format, "format", "f", "", "export format: pdf, html")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.theme, "theme", "", "theme override for this export")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.share, "share", false, "hand the document to the share command")
	fs.BoolVar(&f.noRecord, "no-record", false, "do not update download counts in artifact files")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addRendererFlags(fs, &f.renderer)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseGenerateFlags parses generate command flags.
func parseGenerateFlags(args []string, w io.Writer) (*generateFlags, []string, error) {
	fs := newFlagSet("generate", w, printGenerateUsage)
	f := &generateFlags{}

	fs.StringVar(&f.kind, "type", "", "lead magnet type (required)")
	fs.StringVar(&f.title, "title", "", "title (required)")
	fs.StringVar(&f.prompt, "prompt", "", "what the content should cover (required)")
	fs.StringVar(&f.audience, "audience", "", "target audience")
	fs.StringVar(&f.niche, "niche", "", "niche or industry")
	fs.StringVar(&f.tone, "tone", "", "tone: professional, friendly, educational, persuasive")
	fs.StringVar(&f.length, "length", "", "length: short, standard, detailed")
	fs.IntVar(&f.items, "items", 0, "number of items (checklists and resource lists)")
	fs.StringVar(&f.userID, "user", "", "owner ID stored on the artifact")
	fs.StringVar(&f.model, "model", "", "chat model (default: gpt-4o)")
	fs.StringVarP(&f.output, "output", "o", "", "library directory for the artifact file")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code")

	addCommonFlags(fs, &f.common)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseFormatFlags parses format command flags.
func parseFormatFlags(args []string, w io.Writer) (*formatFlags, []string, error) {
	fs := newFlagSet("format", w, printFormatUsage)
	f := &formatFlags{}

	fs.BoolVar(&f.stats, "stats", false, "print word and item counts instead of HTML")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight fenced code")
	fs.StringVar(&f.style, "style", "", "highlight style (default: github)")

	addCommonFlags(fs, &f.common)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseEditFlags parses edit command flags.
func parseEditFlags(args []string, w io.Writer) (*editFlags, []string, error) {
	fs := newFlagSet("edit", w, printEditUsage)
	f := &editFlags{}

	fs.StringVar(&f.text, "text", "", "file with the edited plain text (- for stdin)")

	addCommonFlags(fs, &f.common)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseListFlags parses list command flags.
func parseListFlags(args []string, w io.Writer) (*listFlags, []string, error) {
	fs := newFlagSet("list", w, printListUsage)
	f := &listFlags{}

	fs.StringVar(&f.dateFormat, "date-format", "", "date format or preset: iso, european, us, long, stamp")

	addCommonFlags(fs, &f.common)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePlansFlags parses plans command flags.
func parsePlansFlags(args []string, w io.Writer) (*plansFlags, []string, error) {
	fs := newFlagSet("plans", w, printPlansUsage)
	f := &plansFlags{}

	fs.BoolVar(&f.json, "json", false, "print the plan table as JSON")

	addCommonFlags(fs, &f.common)

	if err := parseArgs(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
