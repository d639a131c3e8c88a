package leadmagnet

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/alnah/go-leadmagnet/internal/pipeline"
)

// GenerationRequest describes the content to generate.
type GenerationRequest struct {
	Type           ArtifactType
	Title          string
	Prompt         string
	TargetAudience string
	Niche          string
	Tone           Tone   // empty: friendly
	Length         Length // empty: standard
	ItemCount      int    // checklists and resource lists only
	UserID         string
}

// Validate checks required fields and enum values.
func (r *GenerationRequest) Validate() error {
	var missing []string
	if r.Type == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(r.Prompt) == "" {
		missing = append(missing, "prompt")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}

	if !r.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRequest, r.Type)
	}
	if _, ok := toneInstructions[r.Tone]; r.Tone != "" && !ok {
		return fmt.Errorf("%w: unknown tone %q", ErrInvalidRequest, r.Tone)
	}
	if _, ok := lengthGuides[r.Length]; r.Length != "" && !ok {
		return fmt.Errorf("%w: unknown length %q", ErrInvalidRequest, r.Length)
	}
	if r.ItemCount < 0 {
		return fmt.Errorf("%w: negative item count %d", ErrInvalidRequest, r.ItemCount)
	}
	return nil
}

func (r *GenerationRequest) tone() Tone {
	if r.Tone == "" {
		return ToneFriendly
	}
	return r.Tone
}

func (r *GenerationRequest) length() Length {
	if r.Length == "" {
		return LengthStandard
	}
	return r.Length
}

var (
	openingFence = regexp.MustCompile("(?i)^```html\\n?")
	closingFence = regexp.MustCompile("\\n?```$")
)

// StripCodeFence removes a ```html fence wrapping the whole completion.
func StripCodeFence(content string) string {
	content = openingFence.ReplaceAllString(content, "")
	content = closingFence.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// Generator produces complete artifacts from generation requests.
type Generator struct {
	client    Completer
	formatter *Formatter
	now       func() time.Time
	newID     func() string
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithFormatter sets the formatter applied to completions.
func WithFormatter(f *Formatter) GeneratorOption {
	return func(g *Generator) {
		if f != nil {
			g.formatter = f
		}
	}
}

// withClock replaces time and ID sources (for testing).
func withClock(now func() time.Time, newID func() string) GeneratorOption {
	return func(g *Generator) {
		g.now = now
		g.newID = newID
	}
}

// NewGenerator creates a Generator calling client.
func NewGenerator(client Completer, opts ...GeneratorOption) *Generator {
	g := &Generator{
		client:    client,
		formatter: plainFormatter,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate calls the provider and returns a complete artifact with default
// design. Returns ErrGenerationLimit when the provider rate limits.
func (g *Generator) Generate(ctx context.Context, req GenerationRequest) (*Artifact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, err := g.client.Complete(ctx, CompletionRequest{
		System:    BuildSystemPrompt(req.Type, req.tone()),
		User:      BuildUserPrompt(req),
		MaxTokens: maxTokens[req.length()],
	})
	if err != nil {
		return nil, err
	}

	raw = StripCodeFence(raw)
	if raw == "" {
		return nil, ErrEmptyCompletion
	}

	content := g.formatter.Format(raw)
	stats := pipeline.AnalyzeHTML(content)
	now := g.now().UTC()

	klog.V(4).Infof("generation: %q produced %d words, %d items", req.Title, stats.Words, stats.Items)

	return &Artifact{
		ID:             g.newID(),
		UserID:         req.UserID,
		Title:          strings.TrimSpace(req.Title),
		Type:           req.Type,
		Content:        content,
		RawContent:     pipeline.HTMLToPlainText(content),
		TargetAudience: req.TargetAudience,
		Niche:          req.Niche,
		Tone:           req.tone(),
		Length:         req.length(),
		Prompt:         req.Prompt,
		Design:         DefaultDesign(),
		Status:         StatusComplete,
		WordCount:      stats.Words,
		ItemCount:      stats.Items,
		CreatedAt:      now,
		UpdatedAt:      now,
		GeneratedAt:    &now,
	}, nil
}
