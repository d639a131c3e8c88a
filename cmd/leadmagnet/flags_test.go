package main

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseExportFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseExportFlags([]string{
		"-f", "html", "-o", "out", "--theme", "bold", "--plan", "pro",
		"-p", "a4", "--margin", "1.5", "-w", "2", "--share", "--no-record",
		"a.yaml", "lib/",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseExportFlags() error = %v", err)
	}

	if f.format != "html" || f.output != "out" || f.theme != "bold" {
		t.Errorf("output flags = %+v", f)
	}
	if f.common.plan != "pro" {
		t.Errorf("plan = %q, want pro", f.common.plan)
	}
	if f.page.size != "a4" || f.page.margin != 1.5 {
		t.Errorf("page flags = %+v", f.page)
	}
	if f.renderer.workers != 2 {
		t.Errorf("workers = %d, want 2", f.renderer.workers)
	}
	if !f.share || !f.noRecord {
		t.Errorf("share = %v, noRecord = %v", f.share, f.noRecord)
	}
	if len(positional) != 2 || positional[0] != "a.yaml" || positional[1] != "lib/" {
		t.Errorf("positional = %v", positional)
	}
}

func TestParseGenerateFlags(t *testing.T) {
	t.Parallel()

	f, _, err := parseGenerateFlags([]string{
		"--type", "checklist", "--title", "Launch", "--prompt", "podcast",
		"--tone", "educational", "--items", "12", "--user", "u1", "-q",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseGenerateFlags() error = %v", err)
	}
	if f.kind != "checklist" || f.title != "Launch" || f.prompt != "podcast" {
		t.Errorf("required flags = %+v", f)
	}
	if f.tone != "educational" || f.items != 12 || f.userID != "u1" || !f.common.quiet {
		t.Errorf("optional flags = %+v", f)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown flag", []string{"--bogus"}, ErrUsage},
		{"bad int", []string{"--items", "many"}, ErrUsage},
		{"help", []string{"--help"}, flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := parseGenerateFlags(tt.args, io.Discard)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
