package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment, fakes and fixtures
// ---------------------------------------------------------------------------

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testEnv is an Environment writing to buffers and reading variables from
// a map.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	vars   map[string]string
}

func newTestEnv(vars map[string]string) *testEnv {
	if vars == nil {
		vars = map[string]string{}
	}
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		vars:   vars,
	}
	te.Environment = &Environment{
		Now:    func() time.Time { return testNow },
		Stdin:  strings.NewReader(""),
		Stdout: te.stdout,
		Stderr: te.stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return te
}

// fakeRenderer returns a fixed PDF and counts calls.
type fakeRenderer struct {
	mu     sync.Mutex
	calls  int
	closed bool
	err    error
}

func (f *fakeRenderer) RenderDocument(_ context.Context, _, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (f *fakeRenderer) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeRenderer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// factoryFor returns a RendererFactory handing out r every time.
func factoryFor(r *fakeRenderer) leadmagnet.RendererFactory {
	return func() leadmagnet.DocumentRenderer { return r }
}

// fakeCompleter returns a canned completion.
type fakeCompleter struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, _ leadmagnet.CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.response, f.err
}

// fakeSurface records share hand-offs.
type fakeSurface struct {
	mu     sync.Mutex
	paths  []string
	absent bool
}

func (f *fakeSurface) Available() bool { return !f.absent }

func (f *fakeSurface) Share(_ context.Context, path, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
	return nil
}

// testArtifact returns a complete checklist artifact.
func testArtifact(title string) *leadmagnet.Artifact {
	return &leadmagnet.Artifact{
		ID:        "1a2b3c4d-0000-4000-8000-000000000000",
		Title:     title,
		Type:      leadmagnet.TypeChecklist,
		Content:   "<h2>Steps</h2>\n<ul><li>Buy a mic</li><li>Record</li></ul>",
		Design:    leadmagnet.DefaultDesign(),
		Status:    leadmagnet.StatusComplete,
		WordCount: 5,
		ItemCount: 2,
		CreatedAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC),
	}
}

// writeTestArtifact saves a into dir under name and returns the path.
func writeTestArtifact(t *testing.T, dir, name string, a *leadmagnet.Artifact) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := writeArtifact(path, a); err != nil {
		t.Fatalf("writeArtifact(%s): %v", path, err)
	}
	return path
}
