package pipeline

import (
	"html"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	paragraphBreak  = regexp.MustCompile(`\n[ \t]*\n\s*`)
	trailingSpaces  = regexp.MustCompile(`[ \t]+\n`)
	leadingSpaces   = regexp.MustCompile(`\n[ \t]+`)
	horizontalSpace = regexp.MustCompile(`[ \t]{2,}`)
)

// blockAtoms end with a paragraph break when converted to plain text.
var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Blockquote: true, atom.Pre: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Table: true, atom.Hr: true,
	atom.Section: true, atom.Article: true, atom.Header: true, atom.Footer: true,
}

// lineAtoms end with a single newline.
var lineAtoms = map[atom.Atom]bool{
	atom.Li: true, atom.Tr: true, atom.Dt: true, atom.Dd: true,
}

// HTMLToPlainText flattens an HTML fragment for editing. Block elements
// expand to blank lines, list items and table rows to single lines, <br> to
// a newline. Entities are decoded.
func HTMLToPlainText(fragment string) string {
	var buf strings.Builder
	inPre := false

	z := nethtml.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			return tidyPlainText(buf.String())

		case nethtml.TextToken:
			t := string(z.Text())
			if !inPre {
				t = strings.ReplaceAll(t, "\n", " ")
			}
			buf.WriteString(t)

		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			tok := z.Token()
			switch {
			case tok.DataAtom == atom.Br:
				buf.WriteByte('\n')
			case tok.DataAtom == atom.Hr:
				buf.WriteString("\n\n")
			case tok.DataAtom == atom.Pre:
				inPre = true
				buf.WriteString("\n\n")
			case tok.DataAtom == atom.Td || tok.DataAtom == atom.Th:
				buf.WriteByte('\t')
			case blockAtoms[tok.DataAtom]:
				buf.WriteByte('\n')
			}

		case nethtml.EndTagToken:
			tok := z.Token()
			switch {
			case tok.DataAtom == atom.Pre:
				inPre = false
				buf.WriteString("\n\n")
			case blockAtoms[tok.DataAtom]:
				buf.WriteString("\n\n")
			case lineAtoms[tok.DataAtom]:
				buf.WriteByte('\n')
			}
		}
	}
}

// tidyPlainText trims each line and collapses blank-line runs.
func tidyPlainText(text string) string {
	text = strings.ReplaceAll(text, "\t", " ")
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = trailingSpaces.ReplaceAllString(text, "\n")
	text = leadingSpaces.ReplaceAllString(text, "\n")
	text = compressBlankLines(text)
	return strings.TrimSpace(text)
}

// PlainTextToHTML re-wraps edited plain text: blank-line separated blocks
// become paragraphs, single newlines become <br />. Text is escaped.
func PlainTextToHTML(text string) string {
	text = strings.TrimSpace(normalizeLineEndings(text))
	if text == "" {
		return ""
	}

	blocks := paragraphBreak.Split(text, -1)
	out := make([]string, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		kept := lines[:0]
		for _, l := range lines {
			if l = strings.TrimSpace(l); l != "" {
				kept = append(kept, html.EscapeString(l))
			}
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, "<p>"+strings.Join(kept, "<br />")+"</p>")
	}
	return strings.Join(out, "\n")
}
