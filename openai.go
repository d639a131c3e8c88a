package leadmagnet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"k8s.io/klog/v2"
)

// Generation defaults.
const (
	DefaultModel       = "gpt-4o"
	DefaultTemperature = 0.7
	DefaultAPIKeyEnv   = "OPENAI_API_KEY"
)

// CompletionRequest is one chat completion call.
type CompletionRequest struct {
	System    string
	User      string
	MaxTokens int64
}

// Completer abstracts the text-generation provider.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Compile-time interface check.
var _ Completer = (*OpenAIClient)(nil)

// OpenAIConfig configures an OpenAIClient.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string // empty: api.openai.com
	Model      string // empty: DefaultModel
	MaxRetries int
	Timeout    time.Duration // per request; zero means no extra limit
	HTTPClient *http.Client
}

// OpenAIClient calls an OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAIClient.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &OpenAIClient{client: openai.NewClient(opts...), model: model}
}

// Complete sends a system and user message and returns the first choice.
// HTTP 429 maps to ErrGenerationLimit.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(DefaultTemperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(req.MaxTokens)
	}

	klog.V(4).Infof("generation: model=%s max_tokens=%d", c.model, req.MaxTokens)
	start := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ErrGenerationLimit, err)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	klog.V(4).Infof("generation: %d completion tokens in %s", resp.Usage.CompletionTokens, time.Since(start).Round(time.Millisecond))
	return resp.Choices[0].Message.Content, nil
}
