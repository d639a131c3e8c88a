package leadmagnet

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Filename rules.
const (
	maxSlugLength   = 60
	fallbackSlug    = "lead-magnet"
	suffixLength    = 8
	nonSlugSequence = `[^a-z0-9]+`
)

var nonSlugPattern = regexp.MustCompile(nonSlugSequence)

// Slugify lowercases title, collapses runs of non-alphanumerics into a
// single hyphen, trims hyphens and caps the result at 60 characters.
// Titles without any alphanumeric character yield "lead-magnet".
func Slugify(title string) string {
	slug := nonSlugPattern.ReplaceAllString(strings.ToLower(title), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// newSuffix returns 8 lowercase hex characters from a random UUID.
func newSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLength]
}

// buildFilename joins the slug of title, a collision suffix and the format
// extension: "my-awesome-checklist-1a2b3c4d.pdf".
func buildFilename(title, suffix string, format ExportFormat) string {
	return Slugify(title) + "-" + suffix + "." + format.Extension()
}
