package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, s := range []string{"Usage: leadmagnet", "generate", "format", "export", "edit", "list", "plans", "doctor"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("usage should mention %q", s)
		}
	}
}

func TestPrintExportUsage_ListsThemes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printExportUsage(&buf)

	for _, s := range []string{"modern", "clean", "bold", "elegant", "--share", "--page-size"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("export usage should mention %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic string
		want  string
	}{
		{"", "Commands:"},
		{"generate", "Usage: leadmagnet generate"},
		{"export", "Usage: leadmagnet export"},
		{"edit", "Usage: leadmagnet edit"},
		{"list", "Usage: leadmagnet list"},
		{"plans", "Usage: leadmagnet plans"},
		{"doctor", "Usage: leadmagnet doctor"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			var args []string
			if tt.topic != "" {
				args = []string{tt.topic}
			}
			if err := runHelp(args, env.Environment); err != nil {
				t.Fatalf("runHelp(%v) error = %v", args, err)
			}
			if !strings.Contains(env.stdout.String(), tt.want) {
				t.Errorf("help %q output missing %q:\n%s", tt.topic, tt.want, env.stdout.String())
			}
		})
	}
}

func TestRunHelp_UnknownTopic(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	err := runHelp([]string{"publish"}, env.Environment)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("error = %v, want ErrUnknownCommand", err)
	}
}
