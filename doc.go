// Package leadmagnet formats AI-generated marketing content and exports it
// as PDF or standalone HTML, gated by subscription plan.
//
// # Formatting
//
// FormatContent converts the loose markdown dialect returned by generation
// providers into an HTML fragment. It never fails and is idempotent on its
// own output:
//
//	html := leadmagnet.FormatContent("## Steps\n\n- Pick a niche\n- Write the hook")
//
// Use NewFormatter(WithHighlighting("github")) for class-based syntax
// highlighting of fenced code; pass Formatter.CodeCSS to WithExtraCSS so the
// exported document carries the matching stylesheet.
//
// # Exporting
//
// An Exporter wraps artifact content in a themed document, adds the
// attribution footer on plans without watermark removal, and renders PDF
// through a DocumentRenderer:
//
//	exp, err := leadmagnet.NewExporter(leadmagnet.WithTimeout(time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exp.Close()
//
//	doc, err := exp.Export(ctx, leadmagnet.ExportRequest{
//	    Format:   leadmagnet.FormatPDF,
//	    Artifact: &artifact,
//	    Plan:     leadmagnet.PlanFree,
//	})
//
// Plan restrictions are checked before any rendering: a free plan asking
// for HTML gets ErrFormatNotAllowed and the renderer is never called.
//
// # Rendering Surfaces
//
// ChromeRenderer prints with headless Chrome (go-rod), RemoteRenderer posts
// the document to an HTTP generation service, and RendererPool spreads
// batch exports over several Chrome instances.
//
// PDF generation with ChromeRenderer requires Chrome/Chromium. go-rod
// downloads a managed Chromium on first run (~/.cache/rod/browser/). Set
// ROD_BROWSER_BIN to use a pre-installed binary; the sandbox is disabled in
// that case and when CI=true.
//
// # Generation
//
// Generator builds prompts from a GenerationRequest, calls a Completer
// (OpenAIClient for OpenAI-compatible APIs), formats the completion and
// returns a complete Artifact.
package leadmagnet
