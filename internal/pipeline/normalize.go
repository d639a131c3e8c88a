package pipeline

import (
	"regexp"
	"strings"
)

// Placeholders use Unicode Private Use Area characters so they can never
// collide with provider text. Any PUA characters already present in the input
// are stripped during normalization.
const (
	blockPlaceholderStart  = "\uE000"
	blockPlaceholderEnd    = "\uE001"
	inlinePlaceholderStart = "\uE002"
	inlinePlaceholderEnd   = "\uE003"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress runs of blank lines to a single blank line
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Em-dash variants: the character itself and both entity encodings
	emDashPattern = regexp.MustCompile(`\x{2014}|&mdash;|&#8212;`)

	// Tags that must never reach a display surface as live markup
	unsafeTagPattern = regexp.MustCompile(`(?i)<(/?)(script|style|iframe|object|embed)\b`)
)

// placeholderStripper removes reserved characters from untrusted input.
var placeholderStripper = strings.NewReplacer(
	blockPlaceholderStart, "",
	blockPlaceholderEnd, "",
	inlinePlaceholderStart, "",
	inlinePlaceholderEnd, "",
)

// codeEscaper escapes the three characters that could turn code into markup.
var codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// replaceEmDashes rewrites every em-dash variant as " - ".
func replaceEmDashes(content string) string {
	return emDashPattern.ReplaceAllString(content, " - ")
}

// neutralizeUnsafeTags escapes the opening bracket of script-capable tags.
func neutralizeUnsafeTags(content string) string {
	return unsafeTagPattern.ReplaceAllString(content, "&lt;$1$2")
}

// normalize prepares raw provider text for the block stages.
func normalize(content string) string {
	content = normalizeLineEndings(content)
	content = placeholderStripper.Replace(content)
	content = strings.TrimSpace(content)
	return replaceEmDashes(content)
}

// EscapeCode escapes &, < and > so code renders as text.
func EscapeCode(code string) string {
	return codeEscaper.Replace(code)
}
