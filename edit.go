package leadmagnet

import (
	"time"

	"github.com/alnah/go-leadmagnet/internal/pipeline"
)

// EditableText returns the artifact content as plain text for editing.
func EditableText(a Artifact) string {
	return pipeline.HTMLToPlainText(a.Content)
}

// ApplyEdit returns a copy of a whose content is replaced by the edited
// plain text: paragraphs are re-wrapped, counts recomputed and UpdatedAt
// set to now. The original is left untouched.
func ApplyEdit(a Artifact, text string, now time.Time) Artifact {
	content := pipeline.PlainTextToHTML(text)
	stats := pipeline.AnalyzeHTML(content)

	a.Content = content
	a.RawContent = pipeline.HTMLToPlainText(content)
	a.WordCount = stats.Words
	a.ItemCount = stats.Items
	a.UpdatedAt = now.UTC()
	return a
}
