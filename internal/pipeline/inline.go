package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	inlineCodePattern = regexp.MustCompile("`([^`\\n]+)`")
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*(.+?)\*`)
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	inlineSlotPattern = regexp.MustCompile(`\x{E002}(\d+)\x{E003}`)
)

// unsafeSchemes are URL schemes rendered as plain text instead of links.
var unsafeSchemes = []string{"javascript:", "vbscript:", "data:"}

// formatInline applies the inline rules to one line of text, in order:
// code spans, bold, italic, links. Code spans are protected by placeholders
// so neither tag neutralizing nor emphasis and link rules touch them.
func formatInline(line string) string {
	var spans []string
	line = inlineCodePattern.ReplaceAllStringFunc(line, func(match string) string {
		code := inlineCodePattern.FindStringSubmatch(match)[1]
		spans = append(spans, "<code>"+EscapeCode(code)+"</code>")
		return inlinePlaceholderStart + strconv.Itoa(len(spans)-1) + inlinePlaceholderEnd
	})

	line = neutralizeUnsafeTags(line)
	line = boldPattern.ReplaceAllString(line, "<strong>$1</strong>")
	line = italicPattern.ReplaceAllString(line, "<em>$1</em>")
	line = linkPattern.ReplaceAllStringFunc(line, renderLink)

	if len(spans) == 0 {
		return line
	}
	return inlineSlotPattern.ReplaceAllStringFunc(line, func(match string) string {
		idx, err := strconv.Atoi(inlineSlotPattern.FindStringSubmatch(match)[1])
		if err != nil || idx >= len(spans) {
			return ""
		}
		return spans[idx]
	})
}

// renderLink converts one [text](url) match into an anchor.
func renderLink(match string) string {
	m := linkPattern.FindStringSubmatch(match)
	text, href := m[1], strings.TrimSpace(m[2])

	lower := strings.ToLower(href)
	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(lower, scheme) {
			return text
		}
	}
	return `<a href="` + html.EscapeString(href) + `">` + text + "</a>"
}
