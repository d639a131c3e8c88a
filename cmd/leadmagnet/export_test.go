package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// Notes:
// - Exports run through runMain with a fake renderer factory, so no browser
//   is launched. Real Chrome runs are covered by the root integration tests.
// - Output names carry a random suffix; tests glob the output directory.

// exportedFiles returns the files in dir matching pattern.
func exportedFiles(t *testing.T, dir, pattern string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

// ---------------------------------------------------------------------------
// TestRunExport - End-to-end command behavior
// ---------------------------------------------------------------------------

func TestRunExport_HTMLOnPro(t *testing.T) {
	t.Parallel()

	dir, out := t.TempDir(), t.TempDir()
	path := writeTestArtifact(t, dir, "launch.yaml", testArtifact("Launch Checklist"))

	renderer := &fakeRenderer{}
	env := newTestEnv(nil)
	env.Renderers = factoryFor(renderer)

	code := runMain([]string{"export", "--plan", "pro", "-f", "html", "-o", out, path}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, env.stderr.String())
	}

	files := exportedFiles(t, out, "launch-checklist-*.html")
	if len(files) != 1 {
		t.Fatalf("exported files = %v, want one html", files)
	}
	html, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "Buy a mic") {
		t.Error("exported HTML should contain the artifact content")
	}
	if renderer.callCount() != 0 {
		t.Errorf("renderer calls = %d, HTML export should not render", renderer.callCount())
	}
	if !strings.Contains(env.stdout.String(), "Created "+files[0]) {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	updated, err := loadArtifact(path)
	if err != nil {
		t.Fatal(err)
	}
	if updated.DownloadCount != 1 {
		t.Errorf("DownloadCount = %d, want 1", updated.DownloadCount)
	}
	if len(updated.ExportedFormats) != 1 || updated.ExportedFormats[0] != leadmagnet.FormatHTML {
		t.Errorf("ExportedFormats = %v, want [html]", updated.ExportedFormats)
	}
	if !updated.UpdatedAt.Equal(testNow) {
		t.Errorf("UpdatedAt = %v, want %v", updated.UpdatedAt, testNow)
	}
}

func TestRunExport_PDFBatchFromDirectory(t *testing.T) {
	t.Parallel()

	dir, out := t.TempDir(), t.TempDir()
	writeTestArtifact(t, dir, "a.yaml", testArtifact("Alpha"))
	writeTestArtifact(t, dir, "b.yaml", testArtifact("Beta"))

	renderer := &fakeRenderer{}
	env := newTestEnv(map[string]string{"LEADMAGNET_OUTPUT_DIR": out})
	env.Renderers = factoryFor(renderer)

	code := runMain([]string{"export", "-w", "2", "--no-record", dir}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, env.stderr.String())
	}

	if n := len(exportedFiles(t, out, "*.pdf")); n != 2 {
		t.Errorf("exported %d PDFs, want 2", n)
	}
	if renderer.callCount() != 2 {
		t.Errorf("renderer calls = %d, want 2", renderer.callCount())
	}
	if !strings.Contains(env.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	a, err := loadArtifact(filepath.Join(dir, "a.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if a.DownloadCount != 0 {
		t.Errorf("DownloadCount = %d, --no-record should leave it", a.DownloadCount)
	}
}

func TestRunExport_Share(t *testing.T) {
	t.Parallel()

	dir, out := t.TempDir(), t.TempDir()
	path := writeTestArtifact(t, dir, "launch.yaml", testArtifact("Launch"))

	surface := &fakeSurface{}
	env := newTestEnv(nil)
	env.Renderers = factoryFor(&fakeRenderer{})
	env.Surface = surface

	code := runMain([]string{"export", "--share", "-o", out, path}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, env.stderr.String())
	}
	if len(surface.paths) != 1 || filepath.Dir(surface.paths[0]) != out {
		t.Errorf("shared paths = %v, want one file in %s", surface.paths, out)
	}
	if !strings.Contains(env.stdout.String(), "(shared)") {
		t.Errorf("stdout = %q, want shared marker", env.stdout.String())
	}
}

func TestRunExport_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTestArtifact(t, dir, "launch.yaml", testArtifact("Launch"))

	tests := []struct {
		name       string
		args       []string
		renderErr  error
		wantCode   int
		wantStderr string
	}{
		{
			name:       "html on free plan",
			args:       []string{"export", "-f", "html", path},
			wantCode:   ExitPlan,
			wantStderr: "HTML export is not available on your plan",
		},
		{
			name:     "unknown format",
			args:     []string{"export", "-f", "docx", path},
			wantCode: ExitUsage,
		},
		{
			name:     "unknown theme",
			args:     []string{"export", "--theme", "neon", path},
			wantCode: ExitUsage,
		},
		{
			name:     "too many workers",
			args:     []string{"export", "-w", "64", path},
			wantCode: ExitUsage,
		},
		{
			name:     "missing input",
			args:     []string{"export", filepath.Join(dir, "missing.yaml")},
			wantCode: ExitIO,
		},
		{
			name:      "renderer failure",
			args:      []string{"export", path},
			renderErr: leadmagnet.ErrBrowserConnect,
			wantCode:  ExitRenderer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			env.Renderers = factoryFor(&fakeRenderer{err: tt.renderErr})
			args := append(tt.args, "--no-record", "-o", t.TempDir())

			code := runMain(args, env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr.String())
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestExportBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{
		writeTestArtifact(t, dir, "a.yaml", testArtifact("A")),
		writeTestArtifact(t, dir, "b.yaml", testArtifact("B")),
	}

	exporter, err := leadmagnet.NewExporter(leadmagnet.WithRenderer(&fakeRenderer{}))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = exporter.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := exportBatch(ctx, exporter, 2, paths, &exportParams{
		format: leadmagnet.FormatPDF,
		plan:   leadmagnet.PlanFree,
		sharer: leadmagnet.NewSharer(t.TempDir(), nil),
		now:    func() time.Time { return testNow },
	})
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: err = %v, want context.Canceled", r.InputPath, r.Err)
		}
	}
	if countFailed(results) != 2 {
		t.Errorf("countFailed = %d, want 2", countFailed(results))
	}
}
