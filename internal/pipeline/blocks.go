package pipeline

import (
	"regexp"
	"strings"
)

var (
	headingPattern   = regexp.MustCompile(`^(#{1,6})\s*(.+)$`)
	quotePattern     = regexp.MustCompile(`^>\s*(.+)$`)
	unorderedPattern = regexp.MustCompile(`^[-*]\s+(.+)$`)
	orderedPattern   = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	rulePattern      = regexp.MustCompile(`^---+$`)

	// blockTagPattern matches lines that already start with block-level markup.
	// Such lines pass through verbatim, which keeps formatting idempotent.
	blockTagPattern = regexp.MustCompile(`(?i)^</?(h[1-6]|p|ul|ol|li|dl|dt|dd|blockquote|pre|table|thead|tbody|tfoot|tr|th|td|hr|div|section|article|header|footer|nav|aside|figure|figcaption)\b`)
	preOpenPattern  = regexp.MustCompile(`(?i)^<pre\b`)
	preClosePattern = regexp.MustCompile(`(?i)</pre>`)
)

// lineKind classifies a single trimmed line.
type lineKind int

const (
	kindBlank lineKind = iota
	kindText
	kindPlaceholder
	kindRawHTML
	kindHeading
	kindRule
	kindQuote
	kindUnordered
	kindOrdered
	kindTableRow
)

// classify determines the kind of a trimmed line. Order matters: raw HTML is
// recognized before any markdown rule so formatted output is never re-wrapped.
func classify(line string) lineKind {
	switch {
	case line == "":
		return kindBlank
	case isPlaceholderLine(line):
		return kindPlaceholder
	case blockTagPattern.MatchString(line):
		return kindRawHTML
	case headingPattern.MatchString(line):
		return kindHeading
	case rulePattern.MatchString(line):
		return kindRule
	case quotePattern.MatchString(line):
		return kindQuote
	case unorderedPattern.MatchString(line):
		return kindUnordered
	case orderedPattern.MatchString(line):
		return kindOrdered
	case isTableRow(line):
		return kindTableRow
	default:
		return kindText
	}
}

// blockBuilder accumulates rendered blocks and the paragraph in progress.
type blockBuilder struct {
	blocks    []string
	paragraph []string
}

func (b *blockBuilder) addBlock(block string) {
	b.flush()
	b.blocks = append(b.blocks, block)
}

func (b *blockBuilder) addText(line string) {
	b.paragraph = append(b.paragraph, line)
}

// flush closes the current paragraph, turning single newlines into <br />.
func (b *blockBuilder) flush() {
	if len(b.paragraph) == 0 {
		return
	}
	b.blocks = append(b.blocks, "<p>"+strings.Join(b.paragraph, "<br />")+"</p>")
	b.paragraph = nil
}

// buildBlocks runs the line pass over normalized text whose fenced code has
// already been replaced by placeholders. Verbatim <pre> regions found in the
// input are moved into the code store as well.
func buildBlocks(content string, store *codeStore) []string {
	lines := strings.Split(content, "\n")
	b := &blockBuilder{}

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])

		switch classify(line) {
		case kindBlank:
			b.flush()
			i++

		case kindPlaceholder:
			b.addBlock(line)
			i++

		case kindRawHTML:
			if preOpenPattern.MatchString(line) {
				region, next := collectPreRegion(lines, i)
				b.addBlock(store.add(neutralizeUnsafeTags(region)))
				i = next
				continue
			}
			b.addBlock(neutralizeUnsafeTags(line))
			i++

		case kindHeading:
			m := headingPattern.FindStringSubmatch(line)
			level := string(rune('0' + len(m[1])))
			b.addBlock("<h" + level + ">" + formatInline(strings.TrimSpace(m[2])) + "</h" + level + ">")
			i++

		case kindRule:
			b.addBlock("<hr />")
			i++

		case kindQuote:
			block, next := collectQuote(lines, i)
			b.addBlock(block)
			i = next

		case kindUnordered:
			block, next := collectList(lines, i, kindUnordered, unorderedPattern, "ul")
			b.addBlock(block)
			i = next

		case kindOrdered:
			block, next := collectList(lines, i, kindOrdered, orderedPattern, "ol")
			b.addBlock(block)
			i = next

		case kindTableRow:
			block, next := collectTable(lines, i)
			b.addBlock(block)
			i = next

		default:
			b.addText(formatInline(line))
			i++
		}
	}

	b.flush()
	return b.blocks
}

// collectPreRegion gathers lines from an opening <pre through the line that
// closes it. An unclosed region runs to the end of the input and gets a
// closing </pre> appended.
func collectPreRegion(lines []string, start int) (string, int) {
	end := start
	for end < len(lines) && !preClosePattern.MatchString(lines[end]) {
		end++
	}
	closed := end < len(lines)
	if !closed {
		end--
	}
	region := append([]string{strings.TrimLeft(lines[start], " \t")}, lines[start+1:end+1]...)
	text := strings.TrimRight(strings.Join(region, "\n"), " \t")
	if !closed {
		text += "</pre>"
	}
	return text, end + 1
}

// collectQuote merges consecutive quote lines into one blockquote. Blank
// lines between quote lines do not split the quote.
func collectQuote(lines []string, start int) (string, int) {
	var buf strings.Builder
	buf.WriteString("<blockquote>")

	i := start
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		kind := classify(line)
		if kind == kindBlank {
			next := nextNonBlank(lines, i)
			if next < len(lines) && classify(strings.TrimSpace(lines[next])) == kindQuote {
				i = next
				continue
			}
			break
		}
		if kind != kindQuote {
			break
		}
		m := quotePattern.FindStringSubmatch(line)
		buf.WriteString("<p>" + formatInline(strings.TrimSpace(m[1])) + "</p>")
		i++
	}

	buf.WriteString("</blockquote>")
	return buf.String(), i
}

// collectList wraps a run of contiguous list lines of the same kind.
func collectList(lines []string, start int, kind lineKind, pattern *regexp.Regexp, tag string) (string, int) {
	var buf strings.Builder
	buf.WriteString("<" + tag + ">")

	i := start
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if classify(line) != kind {
			break
		}
		m := pattern.FindStringSubmatch(line)
		buf.WriteString("<li>" + formatInline(strings.TrimSpace(m[1])) + "</li>")
	}

	buf.WriteString("</" + tag + ">")
	return buf.String(), i
}

func nextNonBlank(lines []string, from int) int {
	for from < len(lines) && strings.TrimSpace(lines[from]) == "" {
		from++
	}
	return from
}
