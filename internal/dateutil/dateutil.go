// Package dateutil turns user date patterns such as "DD/MM/YYYY" into Go
// time layouts for library listings.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when no format is given.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps pattern tokens to layout components, longest first.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common patterns.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"stamp":    "YYYY-MM-DD HH:mm",
}

// ParseDateFormat converts a pattern into a Go layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm.
// Text in brackets is kept literally: "[Created] YYYY" keeps "Created".
// Other characters pass through.
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	b.Grow(len(format) + 10)

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := matchToken(format[i:], &b)
		if n == 0 {
			b.WriteByte(format[i])
			n = 1
		}
		i += n
	}

	return b.String(), nil
}

// matchToken writes the layout of the token at the start of s and returns
// its length, or 0 when s starts with no token.
func matchToken(s string, b *strings.Builder) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.layout)
			return len(t.token)
		}
	}
	return 0
}

// ResolveLayout accepts a preset name (case-insensitive) or a pattern and
// returns the Go layout. Empty means DefaultDateFormat.
func ResolveLayout(format string) (string, error) {
	format = strings.TrimSpace(format)
	if format == "" {
		format = DefaultDateFormat
	}
	if preset, ok := DatePresets[strings.ToLower(format)]; ok {
		format = preset
	}
	return ParseDateFormat(format)
}

// FormatDate renders t with a preset or pattern. The zero time renders as
// "-".
func FormatDate(t time.Time, format string) (string, error) {
	layout, err := ResolveLayout(format)
	if err != nil {
		return "", err
	}
	if t.IsZero() {
		return "-", nil
	}
	return t.Format(layout), nil
}
