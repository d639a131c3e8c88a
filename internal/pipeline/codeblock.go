package pipeline

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used for highlighted code blocks.
const DefaultHighlightStyle = "github"

// fencedCodePattern matches ```lang\ncode``` spans, including unterminated
// language tags such as c++ or objective-c.
var fencedCodePattern = regexp.MustCompile("(?s)```([\\w+#.-]*)[ \\t]*\\n?(.*?)```")

// CodeRenderer turns a fenced code block into a <pre><code> element.
type CodeRenderer interface {
	RenderCode(lang, code string) string
}

// Compile-time interface checks.
var (
	_ CodeRenderer = (*PlainCodeRenderer)(nil)
	_ CodeRenderer = (*ChromaCodeRenderer)(nil)
)

// PlainCodeRenderer escapes code without any highlighting.
type PlainCodeRenderer struct{}

// RenderCode emits <pre><code class="language-LANG">, omitting the class
// when no language was given.
func (PlainCodeRenderer) RenderCode(lang, code string) string {
	return openCodeTag(lang) + EscapeCode(code) + "</code></pre>"
}

// ChromaCodeRenderer highlights code with chroma using CSS classes, so the
// matching stylesheet must be embedded in the exported document.
type ChromaCodeRenderer struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaCodeRenderer creates a renderer for the named chroma style.
// Unknown style names fall back to chroma's default style.
func NewChromaCodeRenderer(styleName string) *ChromaCodeRenderer {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaCodeRenderer{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style: styles.Get(styleName),
	}
}

// RenderCode highlights code when a lexer exists for lang and falls back to
// plain escaping otherwise. Highlighting failures never surface as errors.
func (r *ChromaCodeRenderer) RenderCode(lang, code string) string {
	lexer := lexers.Get(lang)
	if lang == "" || lexer == nil {
		return PlainCodeRenderer{}.RenderCode(lang, code)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return PlainCodeRenderer{}.RenderCode(lang, code)
	}

	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, iterator); err != nil {
		return PlainCodeRenderer{}.RenderCode(lang, code)
	}
	return openCodeTag(lang) + strings.TrimRight(buf.String(), "\n") + "</code></pre>"
}

// CSS returns the stylesheet matching the classes emitted by RenderCode.
func (r *ChromaCodeRenderer) CSS() string {
	var buf bytes.Buffer
	if err := r.formatter.WriteCSS(&buf, r.style); err != nil {
		return ""
	}
	return buf.String()
}

func openCodeTag(lang string) string {
	if lang == "" {
		return "<pre><code>"
	}
	return `<pre><code class="language-` + lang + `">`
}

// codeStore holds rendered code blocks behind placeholders until the final
// stage, so no later rule can touch their contents.
type codeStore struct {
	blocks []string
}

// add stores rendered HTML and returns its placeholder.
func (s *codeStore) add(rendered string) string {
	s.blocks = append(s.blocks, rendered)
	return blockPlaceholderStart + strconv.Itoa(len(s.blocks)-1) + blockPlaceholderEnd
}

// restore replaces every placeholder with its stored block.
func (s *codeStore) restore(content string) string {
	if len(s.blocks) == 0 {
		return content
	}
	pairs := make([]string, 0, len(s.blocks)*2)
	for i, b := range s.blocks {
		pairs = append(pairs, blockPlaceholderStart+strconv.Itoa(i)+blockPlaceholderEnd, b)
	}
	return strings.NewReplacer(pairs...).Replace(content)
}

// isPlaceholderLine reports whether a trimmed line is exactly one placeholder.
func isPlaceholderLine(line string) bool {
	if !strings.HasPrefix(line, blockPlaceholderStart) || !strings.HasSuffix(line, blockPlaceholderEnd) {
		return false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(line, blockPlaceholderStart), blockPlaceholderEnd)
	_, err := strconv.Atoi(inner)
	return err == nil
}

// extractFencedCode replaces fenced code blocks with placeholders isolated
// on their own lines. Unterminated fences are left as text.
func extractFencedCode(content string, store *codeStore, renderer CodeRenderer) string {
	return fencedCodePattern.ReplaceAllStringFunc(content, func(match string) string {
		m := fencedCodePattern.FindStringSubmatch(match)
		lang, code := m[1], trimCode(m[2])
		return "\n\n" + store.add(renderer.RenderCode(lang, code)) + "\n\n"
	})
}

// trimCode drops surrounding blank lines and trailing whitespace while
// keeping the first line's indentation.
func trimCode(code string) string {
	code = strings.TrimRight(code, " \t\n")
	for {
		idx := strings.IndexByte(code, '\n')
		if idx == -1 || strings.TrimSpace(code[:idx]) != "" {
			return code
		}
		code = code[idx+1:]
	}
}
