package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	leadmagnet "github.com/alnah/go-leadmagnet"
)

// Notes:
// - Library tests work on t.TempDir(); artifact files go through the same
//   writeArtifact/loadArtifact pair the commands use.

func TestArtifactFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"uuid id shortened", "1a2b3c4d-5e6f-4000-8000-000000000000", "launch-checklist-1a2b3c4d.yaml"},
		{"short id kept", "ab12", "launch-checklist-ab12.yaml"},
		{"no id", "", "launch-checklist.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := testArtifact("Launch Checklist!")
			a.ID = tt.id
			if got := artifactFilename(a); got != tt.want {
				t.Errorf("artifactFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveAndLoadArtifact(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := testArtifact("Launch Checklist")
	a.UserID = "u1"

	path, err := saveArtifact(filepath.Join(dir, "lib"), a)
	if err != nil {
		t.Fatalf("saveArtifact() error = %v", err)
	}
	if filepath.Base(path) != "launch-checklist-1a2b3c4d.yaml" {
		t.Errorf("path = %s", path)
	}

	got, err := loadArtifact(path)
	if err != nil {
		t.Fatalf("loadArtifact() error = %v", err)
	}
	if got.Title != a.Title || got.Content != a.Content || got.UserID != "u1" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, a.CreatedAt)
	}
}

func TestLoadArtifact_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", filepath.Join(dir, "missing.yaml"), os.ErrNotExist},
		{"unknown field", write("typo.yaml", "title: A\ntitel: B\n"), ErrReadArtifact},
		{"empty title", write("untitled.yaml", "type: checklist\n"), leadmagnet.ErrEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := loadArtifact(tt.path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("loadArtifact() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverArtifacts - Directory expansion and deduplication
// ---------------------------------------------------------------------------

func TestDiscoverArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := writeTestArtifact(t, dir, "b.yaml", testArtifact("B"))
	a := writeTestArtifact(t, dir, "a.yml", testArtifact("A"))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := discoverArtifacts([]string{dir, b})
	if err != nil {
		t.Fatalf("discoverArtifacts() error = %v", err)
	}
	if len(paths) != 2 || paths[0] != a || paths[1] != b {
		t.Errorf("paths = %v, want [%s %s]", paths, a, b)
	}

	if _, err := discoverArtifacts([]string{filepath.Join(dir, "notes.txt")}); !errors.Is(err, ErrReadArtifact) {
		t.Errorf("non-artifact file error = %v, want ErrReadArtifact", err)
	}
	if _, err := discoverArtifacts([]string{filepath.Join(dir, "gone")}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing input error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadLibrary(t *testing.T) {
	t.Parallel()

	t.Run("missing directory is empty", func(t *testing.T) {
		t.Parallel()

		entries, err := loadLibrary(filepath.Join(t.TempDir(), "nope"))
		if err != nil || len(entries) != 0 {
			t.Errorf("loadLibrary() = (%v, %v), want empty", entries, err)
		}
	})

	t.Run("skips files that are not artifacts", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		mine := testArtifact("Mine")
		mine.UserID = "u1"
		writeTestArtifact(t, dir, "mine.yaml", mine)
		writeTestArtifact(t, dir, "theirs.yaml", testArtifact("Theirs"))
		if err := os.WriteFile(filepath.Join(dir, "brand.yaml"), []byte("plan: pro\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		entries, err := loadLibrary(dir)
		if err != nil {
			t.Fatalf("loadLibrary() error = %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("len(entries) = %d, want 2", len(entries))
		}
		if n := countOwned(entries, "u1"); n != 1 {
			t.Errorf("countOwned(u1) = %d, want 1", n)
		}
		if n := countOwned(entries, ""); n != 1 {
			t.Errorf("countOwned(\"\") = %d, want 1", n)
		}
	})
}
