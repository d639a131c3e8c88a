package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"k8s.io/klog/v2"

	leadmagnet "github.com/alnah/go-leadmagnet"
	"github.com/alnah/go-leadmagnet/internal/fileutil"
	"github.com/alnah/go-leadmagnet/internal/yamlutil"
)

// Artifact files are YAML documents, one artifact per file.
var artifactExtensions = []string{".yaml", ".yml"}

// shortIDLength is the ID prefix kept in artifact file names.
const shortIDLength = 8

// libraryEntry is an artifact file loaded from disk.
type libraryEntry struct {
	Path     string
	Artifact *leadmagnet.Artifact
}

// loadArtifact reads and decodes an artifact file. Unknown fields are
// rejected so typos in hand-edited files surface early.
func loadArtifact(path string) (*leadmagnet.Artifact, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided artifact path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadArtifact, err)
	}

	var a leadmagnet.Artifact
	if err := yamlutil.UnmarshalStrict(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadArtifact, path, err)
	}
	if strings.TrimSpace(a.Title) == "" {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadArtifact, path, leadmagnet.ErrEmptyTitle)
	}
	return &a, nil
}

// writeArtifact encodes a and writes it to path.
func writeArtifact(path string, a *leadmagnet.Artifact) error {
	data, err := yamlutil.Marshal(a)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	if _, err := fileutil.WriteInDir(filepath.Dir(path), filepath.Base(path), data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteArtifact, err)
	}
	return nil
}

// saveArtifact writes a new artifact into dir and returns its path.
func saveArtifact(dir string, a *leadmagnet.Artifact) (string, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, artifactFilename(a))
	if err := writeArtifact(path, a); err != nil {
		return "", err
	}
	return path, nil
}

// artifactFilename derives a stable file name from the title and ID:
// "launch-checklist-1a2b3c4d.yaml".
func artifactFilename(a *leadmagnet.Artifact) string {
	id := strings.ReplaceAll(a.ID, "-", "")
	if len(id) > shortIDLength {
		id = id[:shortIDLength]
	}
	name := leadmagnet.Slugify(a.Title)
	if id != "" {
		name += "-" + id
	}
	return name + artifactExtensions[0]
}

// isArtifactFile reports whether path has an artifact extension.
func isArtifactFile(path string) bool {
	return slices.Contains(artifactExtensions, strings.ToLower(filepath.Ext(path)))
}

// discoverArtifacts expands inputs into artifact file paths. Directories
// contribute their artifact files (not recursive), sorted by name; files
// are taken as given. Duplicates are dropped.
func discoverArtifacts(inputs []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadArtifact, err)
		}
		if !info.IsDir() {
			if !isArtifactFile(input) {
				return nil, fmt.Errorf("%w: %s: artifact files must end in .yaml or .yml", ErrReadArtifact, input)
			}
			add(input)
			continue
		}

		entries, err := os.ReadDir(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadArtifact, err)
		}
		for _, e := range entries {
			if !e.IsDir() && isArtifactFile(e.Name()) {
				add(filepath.Join(input, e.Name()))
			}
		}
	}
	return paths, nil
}

// loadLibrary loads every artifact file in dir. A missing directory is an
// empty library. YAML files that are not artifacts (a config next to the
// library, say) are skipped with a warning.
func loadLibrary(dir string) ([]libraryEntry, error) {
	if dir == "" {
		dir = "."
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}

	paths, err := discoverArtifacts([]string{dir})
	if err != nil {
		return nil, err
	}

	entries := make([]libraryEntry, 0, len(paths))
	for _, p := range paths {
		a, err := loadArtifact(p)
		if err != nil {
			klog.Warningf("library: skipping %s: %v", p, err)
			continue
		}
		entries = append(entries, libraryEntry{Path: p, Artifact: a})
	}
	return entries, nil
}

// countOwned returns how many artifacts in entries belong to userID.
func countOwned(entries []libraryEntry, userID string) int {
	n := 0
	for _, e := range entries {
		if e.Artifact.UserID == userID {
			n++
		}
	}
	return n
}
