package pipeline

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Stats summarizes generated content.
type Stats struct {
	Words    int    // whitespace-separated words of visible text
	Items    int    // list entries
	Headline string // text of the first heading, if any
}

// markdownParser parses the provider dialect. GFM covers pipe tables.
var markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Analyze computes stats from raw provider text by walking its markdown AST.
// Raw HTML embedded in the text is tokenized so tags never count as words.
func Analyze(raw string) Stats {
	src := []byte(normalizeLineEndings(raw))
	doc := markdownParser.Parse(text.NewReader(src))

	var stats Stats
	var words strings.Builder
	headlineDone := false

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				words.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.ListItem:
			stats.Items++
		case *ast.Heading:
			if !headlineDone {
				stats.Headline = strings.TrimSpace(nodeText(node, src))
				headlineDone = true
			}
		case *ast.Text:
			words.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				words.WriteByte(' ')
			}
		case *ast.String:
			words.Write(node.Value)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			writeLines(&words, n, src)
		case *ast.HTMLBlock:
			var buf strings.Builder
			writeLines(&buf, n, src)
			htmlStats := AnalyzeHTML(buf.String())
			stats.Items += htmlStats.Items
			words.WriteString(htmlText(buf.String()))
			words.WriteByte(' ')
		case *ast.RawHTML:
			var buf strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				buf.Write(seg.Value(src))
			}
			stats.Items += AnalyzeHTML(buf.String()).Items
		}
		return ast.WalkContinue, nil
	})

	stats.Words = len(strings.Fields(words.String()))
	return stats
}

// AnalyzeHTML computes stats from an HTML fragment: words of text content
// and the number of <li> elements.
func AnalyzeHTML(fragment string) Stats {
	var stats Stats
	var words strings.Builder
	inHeading := false
	headlineDone := false

	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return stats
			}
			stats.Words = len(strings.Fields(words.String()))
			stats.Headline = strings.TrimSpace(stats.Headline)
			return stats

		case html.StartTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Li:
				stats.Items++
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				inHeading = !headlineDone
			}
			words.WriteByte(' ')

		case html.EndTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				if inHeading {
					headlineDone = true
					inHeading = false
				}
			}
			words.WriteByte(' ')

		case html.TextToken:
			t := string(z.Text())
			words.WriteString(t)
			if inHeading {
				stats.Headline += t
			}

		default:
			words.WriteByte(' ')
		}
	}
}

// nodeText concatenates the text segments under n.
func nodeText(n ast.Node, src []byte) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// writeLines copies the raw lines of a block node.
func writeLines(w *strings.Builder, n ast.Node, src []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		w.Write(seg.Value(src))
	}
	w.WriteByte(' ')
}

// htmlText returns the visible text of an HTML fragment.
func htmlText(fragment string) string {
	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return buf.String()
		case html.TextToken:
			buf.Write(z.Text())
		default:
			buf.WriteByte(' ')
		}
	}
}
