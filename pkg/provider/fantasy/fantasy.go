package fantasy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	core "charm.land/fantasy"
	provideropenai "charm.land/fantasy/providers/openai"

	"palettegen/pkg/config"
	providertypes "palettegen/pkg/provider/types"
)

// ErrMissingAPIKey is returned when the OpenAI credential variable is empty.
var ErrMissingAPIKey = providertypes.ErrMissingAPIKey

type languageModelProvider interface {
	LanguageModel(ctx context.Context, modelID string) (core.LanguageModel, error)
}

// Client sends palette prompts through a fantasy agent backed by the OpenAI provider.
type Client struct {
	provider       languageModelProvider
	requestTimeout time.Duration
	healthModelID  string
	generate       func(context.Context, core.LanguageModel, core.AgentCall) (*core.AgentResult, error)
}

// New builds a fantasy-backed client. healthModel is the model resolved by Health.
func New(providerCfg config.OpenAIProviderConfig, healthModel string) (*Client, error) {
	apiKeyEnv := strings.TrimSpace(providerCfg.APIKeyEnv)
	if apiKeyEnv == "" {
		apiKeyEnv = config.DefaultOpenAIAPIKeyEnv
	}

	apiKey := strings.TrimSpace(os.Getenv(apiKeyEnv))
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set %s", ErrMissingAPIKey, apiKeyEnv)
	}

	providerOptions := []provideropenai.Option{provideropenai.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(providerCfg.BaseURL); baseURL != "" {
		providerOptions = append(providerOptions, provideropenai.WithBaseURL(baseURL))
	}
	if organization := strings.TrimSpace(providerCfg.Organization); organization != "" {
		providerOptions = append(providerOptions, provideropenai.WithOrganization(organization))
	}
	if project := strings.TrimSpace(providerCfg.Project); project != "" {
		providerOptions = append(providerOptions, provideropenai.WithProject(project))
	}

	fantasyProvider, err := provideropenai.New(providerOptions...)
	if err != nil {
		return nil, fmt.Errorf("initialize fantasy openai provider: %w", err)
	}

	return &Client{
		provider:       fantasyProvider,
		requestTimeout: time.Duration(providerCfg.RequestTimeoutSeconds) * time.Second,
		healthModelID:  strings.TrimSpace(healthModel),
		generate:       generateWithFantasyAgent,
	}, nil
}

func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.provider.LanguageModel(ctx, c.healthModelID); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	return nil
}

// Complete runs one single-turn agent call. Text parts of the reply are joined
// with newlines; an empty reply is returned as empty text.
func (c *Client) Complete(ctx context.Context, model string, prompt string) (providertypes.PromptResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	log := slog.Default().With("component", "provider.fantasy", "operation", "complete")
	startedAt := time.Now()

	modelID := strings.TrimSpace(model)
	if modelID == "" {
		return providertypes.PromptResult{}, errors.New("model is required")
	}
	if strings.TrimSpace(prompt) == "" {
		return providertypes.PromptResult{}, errors.New("prompt is required")
	}

	languageModel, err := c.provider.LanguageModel(ctx, modelID)
	if err != nil {
		return providertypes.PromptResult{}, fmt.Errorf("resolve language model: %w", err)
	}

	generate := c.generate
	if generate == nil {
		generate = generateWithFantasyAgent
	}

	log.Debug("provider request started", "model", modelID, "prompt_length", len(prompt))
	result, err := generate(ctx, languageModel, core.AgentCall{Prompt: prompt})
	if err != nil {
		log.Debug("provider request failed", "duration_ms", time.Since(startedAt).Milliseconds(), "error", err)
		return providertypes.PromptResult{}, fmt.Errorf("prompt failed: %w", err)
	}
	if result == nil {
		return providertypes.PromptResult{}, errors.New("prompt returned no result")
	}

	text := extractText(result.Response.Content)
	log.Debug("provider request completed", "duration_ms", time.Since(startedAt).Milliseconds(), "response_length", len(text))

	usage := providertypes.TokenUsage{
		InputTokens:  result.TotalUsage.InputTokens,
		OutputTokens: result.TotalUsage.OutputTokens,
		TotalTokens:  result.TotalUsage.TotalTokens,
	}

	metadata := providertypes.PromptMetadata{
		Provider: config.ProviderFantasy,
		Model:    modelID,
	}
	if !usage.IsZero() {
		metadata.Usage = &usage
	}

	return providertypes.PromptResult{
		Text:     text,
		Metadata: metadata,
	}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.requestTimeout)
}

func extractText(content core.ResponseContent) string {
	lines := make([]string, 0)
	for _, part := range content {
		if part.GetType() != core.ContentTypeText {
			continue
		}

		textPart, ok := core.AsContentType[core.TextContent](part)
		if !ok {
			continue
		}

		line := strings.TrimSpace(textPart.Text)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func generateWithFantasyAgent(ctx context.Context, model core.LanguageModel, call core.AgentCall) (*core.AgentResult, error) {
	runtime := core.NewAgent(model)
	return runtime.Generate(ctx, call)
}
