package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// Notes:
// - The provider is replaced by fakeCompleter through Environment.Completer;
//   the OpenAI wire format is tested in the root package.

const fakeCompletion = "```html\n## Steps\n\n- Buy a mic\n- Record\n```"

func generateArgs(libDir string, extra ...string) []string {
	args := []string{
		"generate",
		"--type", "checklist",
		"--title", "Launch Checklist",
		"--prompt", "Steps to launch a podcast",
		"-o", libDir,
	}
	return append(args, extra...)
}

func TestRunGenerate_SavesArtifact(t *testing.T) {
	t.Parallel()

	lib := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "brand.yaml")
	brand := "design:\n  primaryColor: \"#0EA5E9\"\n  titleSize: Medium\n  theme: clean\n  companyName: Acme\n"
	if err := os.WriteFile(cfgPath, []byte(brand), 0o644); err != nil {
		t.Fatal(err)
	}

	completer := &fakeCompleter{response: fakeCompletion}
	env := newTestEnv(nil)
	env.Completer = completer

	code := runMain(generateArgs(lib, "--config", cfgPath, "--user", "u1"), env.Environment)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, env.stderr.String())
	}
	if completer.calls != 1 {
		t.Errorf("completer calls = %d, want 1", completer.calls)
	}

	entries, err := loadLibrary(lib)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("library has %d artifacts, want 1", len(entries))
	}
	e := entries[0]
	if !strings.HasPrefix(filepath.Base(e.Path), "launch-checklist-") {
		t.Errorf("file name = %s", e.Path)
	}
	if !strings.Contains(env.stdout.String(), "Created "+e.Path) {
		t.Errorf("stdout = %q", env.stdout.String())
	}

	a := e.Artifact
	if a.Title != "Launch Checklist" || a.UserID != "u1" || a.Status != leadmagnet.StatusComplete {
		t.Errorf("artifact = %+v", a)
	}
	if !strings.Contains(a.Content, "<li>Buy a mic</li>") || a.ItemCount != 2 {
		t.Errorf("Content = %q, ItemCount = %d", a.Content, a.ItemCount)
	}
	if a.Design.PrimaryColor != "#0EA5E9" || a.Design.Template != "clean" || a.Design.CompanyName != "Acme" {
		t.Errorf("brand design not applied: %+v", a.Design)
	}
	if a.Design.TitleSize != leadmagnet.TitleMedium {
		t.Errorf("TitleSize = %q, want medium", a.Design.TitleSize)
	}
	if a.Design.SecondaryColor != leadmagnet.DefaultDesign().SecondaryColor {
		t.Errorf("unset brand fields should keep defaults, got %q", a.Design.SecondaryColor)
	}
}

func TestRunGenerate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		existing   int
		args       func(lib string) []string
		completer  *fakeCompleter
		wantCode   int
		wantCalls  int
		wantStderr string
	}{
		{
			name:       "free plan limit",
			existing:   1,
			args:       func(lib string) []string { return generateArgs(lib) },
			completer:  &fakeCompleter{response: fakeCompletion},
			wantCode:   ExitPlan,
			wantStderr: "artifact limit reached",
		},
		{
			name:      "pro plan has room",
			existing:  1,
			args:      func(lib string) []string { return generateArgs(lib, "--plan", "pro") },
			completer: &fakeCompleter{response: fakeCompletion},
			wantCode:  ExitSuccess,
			wantCalls: 1,
		},
		{
			name:      "other users do not count",
			existing:  1,
			args:      func(lib string) []string { return generateArgs(lib, "--user", "someone-else") },
			completer: &fakeCompleter{response: fakeCompletion},
			wantCode:  ExitSuccess,
			wantCalls: 1,
		},
		{
			name: "missing prompt",
			args: func(lib string) []string {
				return []string{"generate", "--type", "checklist", "--title", "T", "-o", lib}
			},
			completer:  &fakeCompleter{},
			wantCode:   ExitUsage,
			wantStderr: "prompt",
		},
		{
			name:       "unknown type",
			args:       func(lib string) []string { return generateArgs(lib, "--type", "ebook") },
			completer:  &fakeCompleter{},
			wantCode:   ExitUsage,
			wantStderr: "ebook",
		},
		{
			name:       "missing api key",
			args:       func(lib string) []string { return generateArgs(lib) },
			wantCode:   ExitUsage,
			wantStderr: "OPENAI_API_KEY is not set",
		},
		{
			name:      "provider rate limit",
			args:      func(lib string) []string { return generateArgs(lib) },
			completer: &fakeCompleter{err: fmt.Errorf("%w: 429", leadmagnet.ErrGenerationLimit)},
			wantCode:  ExitPlan,
			wantCalls: 1,
		},
		{
			name:       "empty completion",
			args:       func(lib string) []string { return generateArgs(lib) },
			completer:  &fakeCompleter{response: "```html\n```"},
			wantCode:   ExitGeneral,
			wantCalls:  1,
			wantStderr: "no content",
		},
		{
			name:     "positional argument",
			args:     func(lib string) []string { return generateArgs(lib, "extra") },
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lib := t.TempDir()
			for i := range tt.existing {
				a := testArtifact(fmt.Sprintf("Existing %d", i))
				writeTestArtifact(t, lib, fmt.Sprintf("existing-%d.yaml", i), a)
			}

			env := newTestEnv(nil)
			if tt.completer != nil {
				env.Completer = tt.completer
			}

			code := runMain(tt.args(lib), env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr.String())
			}
			if tt.completer != nil && tt.completer.calls != tt.wantCalls {
				t.Errorf("completer calls = %d, want %d", tt.completer.calls, tt.wantCalls)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", env.stderr.String(), tt.wantStderr)
			}
		})
	}
}
