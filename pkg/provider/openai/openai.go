package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"palettegen/pkg/config"
	providertypes "palettegen/pkg/provider/types"

	osdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrMissingAPIKey is returned when no credential is available for the endpoint.
var ErrMissingAPIKey = providertypes.ErrMissingAPIKey

// Client talks to an OpenAI-compatible chat-completion endpoint
// (OpenRouter by default).
type Client struct {
	client         osdk.Client
	providerID     string
	requestTimeout time.Duration
}

// New builds a client for providerID using its connection settings. It fails
// fast when the configured API key variable is empty.
func New(providerID string, providerCfg config.OpenAIProviderConfig, extra ...option.RequestOption) (*Client, error) {
	apiKey := resolveAPIKey(providerCfg)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, apiKeyEnvName(providerCfg))
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// One outbound call per palette request.
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(providerCfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if organization := strings.TrimSpace(providerCfg.Organization); organization != "" {
		opts = append(opts, option.WithOrganization(organization))
	}
	if project := strings.TrimSpace(providerCfg.Project); project != "" {
		opts = append(opts, option.WithProject(project))
	}
	if appURL := strings.TrimSpace(providerCfg.AppURL); appURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", appURL))
	}
	if appName := strings.TrimSpace(providerCfg.AppName); appName != "" {
		opts = append(opts, option.WithHeader("X-Title", appName))
	}

	requestTimeout := time.Duration(providerCfg.RequestTimeoutSeconds) * time.Second
	if requestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(requestTimeout))
	}

	opts = append(opts, extra...)

	return &Client{
		client:         osdk.NewClient(opts...),
		providerID:     strings.TrimSpace(providerID),
		requestTimeout: requestTimeout,
	}, nil
}

// Health lists models to confirm the endpoint is reachable and the key is accepted.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	log := c.logger().With("operation", "health")
	startedAt := time.Now()
	log.Debug("provider request started")

	if _, err := c.client.Models.List(ctx); err != nil {
		log.Debug("provider request failed", "duration_ms", time.Since(startedAt).Milliseconds(), "error", err)
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Debug("provider request completed", "duration_ms", time.Since(startedAt).Milliseconds())

	return nil
}

// Complete sends prompt as a single user message and returns the first
// choice's content. Empty content is not an error; a reply with no choices,
// no message or null content is.
func (c *Client) Complete(ctx context.Context, model string, prompt string) (providertypes.PromptResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	log := c.logger().With("operation", "complete")
	startedAt := time.Now()

	model = strings.TrimSpace(model)
	if model == "" {
		return providertypes.PromptResult{}, errors.New("model is required")
	}
	if strings.TrimSpace(prompt) == "" {
		return providertypes.PromptResult{}, errors.New("prompt is required")
	}

	log.Debug("provider request started", "model", model, "prompt_length", len(prompt))

	completion, err := c.client.Chat.Completions.New(ctx, osdk.ChatCompletionNewParams{
		Model: osdk.ChatModel(model),
		Messages: []osdk.ChatCompletionMessageParamUnion{
			osdk.UserMessage(prompt),
		},
	})
	if err != nil {
		log.Debug("provider request failed", "duration_ms", time.Since(startedAt).Milliseconds(), "error", err)
		return providertypes.PromptResult{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		log.Debug("provider request failed", "duration_ms", time.Since(startedAt).Milliseconds(), "error", "no choices")
		return providertypes.PromptResult{}, errors.New("chat completion returned no choices")
	}

	choice := completion.Choices[0]
	// A missing message or a null content is a malformed reply; only a
	// present string, empty or not, is passed on for parsing.
	if !choice.Message.JSON.Content.Valid() {
		log.Debug("provider request failed", "duration_ms", time.Since(startedAt).Milliseconds(), "error", "no message content")
		return providertypes.PromptResult{}, errors.New("chat completion returned no message content")
	}
	text := choice.Message.Content
	log.Debug("provider request completed", "duration_ms", time.Since(startedAt).Milliseconds(), "response_length", len(text))

	metadata := providertypes.PromptMetadata{
		Provider:     c.providerID,
		Model:        model,
		FinishReason: string(choice.FinishReason),
	}
	if servedModel := strings.TrimSpace(completion.Model); servedModel != "" {
		metadata.Model = servedModel
	}

	usage := providertypes.TokenUsage{
		InputTokens:  completion.Usage.PromptTokens,
		OutputTokens: completion.Usage.CompletionTokens,
		TotalTokens:  completion.Usage.TotalTokens,
	}
	if !usage.IsZero() {
		metadata.Usage = &usage
	}

	return providertypes.PromptResult{Text: text, Metadata: metadata}, nil
}

func (c *Client) logger() *slog.Logger {
	return slog.Default().With("component", "provider.openai", "provider", c.providerID)
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.requestTimeout)
}

func resolveAPIKey(cfg config.OpenAIProviderConfig) string {
	return strings.TrimSpace(os.Getenv(apiKeyEnvName(cfg)))
}

func apiKeyEnvName(cfg config.OpenAIProviderConfig) string {
	if name := strings.TrimSpace(cfg.APIKeyEnv); name != "" {
		return name
	}

	return config.DefaultOpenAIAPIKeyEnv
}
