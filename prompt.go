package leadmagnet

import (
	"fmt"
	"strings"
)

var toneInstructions = map[Tone]string{
	ToneProfessional: "Use a polished, authoritative tone. Sound confident and expert.",
	ToneFriendly:     "Use a warm, conversational tone. Be approachable and relatable.",
	ToneEducational:  "Use a clear, instructive tone. Focus on teaching and explaining.",
	TonePersuasive:   "Use compelling, action-oriented language. Focus on benefits and outcomes.",
}

var lengthGuides = map[Length]string{
	LengthShort:    "500-800 words, focused and concise",
	LengthStandard: "1000-1500 words, comprehensive and detailed",
	LengthDetailed: "2000-3000 words, thorough and in-depth",
}

// Completion token budgets per length.
var maxTokens = map[Length]int64{
	LengthShort:    1500,
	LengthStandard: 3000,
	LengthDetailed: 6000,
}

const systemPromptTemplate = `You are an expert copywriter specializing in high-converting lead magnets.

You are creating a %s: %s

TONE: %s

FORMAT GUIDELINES:
- Use clear, scannable formatting
- Include actionable, specific content
- Make it immediately valuable
- Keep paragraphs short (2-3 sentences max)
- Use bullet points and numbered lists where appropriate
- Include a compelling introduction
- End with a clear next step or CTA

OUTPUT FORMAT:
Return well-structured HTML content with appropriate headings (h2, h3), paragraphs, lists (ul/ol), and emphasis (strong, em) tags.
Do not include <html>, <head>, or <body> tags - just the content HTML.
Do not wrap in code blocks or markdown.`

// BuildSystemPrompt returns the system message for an artifact type and
// tone. Unknown tones use the friendly voice.
func BuildSystemPrompt(t ArtifactType, tone Tone) string {
	instruction, ok := toneInstructions[tone]
	if !ok {
		instruction = toneInstructions[ToneFriendly]
	}
	return fmt.Sprintf(systemPromptTemplate, t.Label(), t.Description(), instruction)
}

// BuildUserPrompt returns the user message describing the requested
// content. Audience, niche and item count are only included when set; the
// item count only applies to checklists and resource lists.
func BuildUserPrompt(req GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s about: %s\n\n%s\n\nTARGET LENGTH: %s",
		req.Type.Label(), req.Title, req.Prompt, lengthGuides[req.length()])

	if req.TargetAudience != "" {
		fmt.Fprintf(&b, "\n\nTARGET AUDIENCE: %s", req.TargetAudience)
	}
	if req.Niche != "" {
		fmt.Fprintf(&b, "\n\nNICHE/INDUSTRY: %s", req.Niche)
	}
	if req.ItemCount > 0 && (req.Type == TypeChecklist || req.Type == TypeResourceList) {
		fmt.Fprintf(&b, "\n\nNUMBER OF ITEMS: %d", req.ItemCount)
	}
	return b.String()
}
