package pipeline

import (
	"regexp"
	"strings"
)

// emptyParagraphPattern matches paragraphs holding nothing but whitespace or
// line breaks.
var emptyParagraphPattern = regexp.MustCompile(`^<p>(\s|<br\s*/?>)*</p>$`)

// ContentFormatter defines the contract for turning raw provider text into
// an HTML fragment.
type ContentFormatter interface {
	Format(raw string) string
}

// Compile-time interface check.
var _ ContentFormatter = (*Formatter)(nil)

// Formatter converts the markdown dialect produced by generation providers
// into an HTML fragment. It is stateless and safe for concurrent use.
type Formatter struct {
	code CodeRenderer
}

// NewFormatter creates a Formatter. A nil renderer means plain escaped code.
func NewFormatter(code CodeRenderer) *Formatter {
	if code == nil {
		code = PlainCodeRenderer{}
	}
	return &Formatter{code: code}
}

// Format converts raw text into an HTML fragment. Empty or whitespace-only
// input yields "". Format never fails: malformed markdown degrades into
// best-effort paragraphs.
func (f *Formatter) Format(raw string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = PlainTextToHTML(raw)
		}
	}()

	content := normalize(raw)
	if content == "" {
		return ""
	}

	store := &codeStore{}
	content = extractFencedCode(content, store, f.code)

	blocks := buildBlocks(content, store)

	kept := blocks[:0]
	for _, block := range blocks {
		if emptyParagraphPattern.MatchString(block) {
			continue
		}
		kept = append(kept, block)
	}

	return strings.TrimSpace(store.restore(strings.Join(kept, "\n")))
}
