package provider

import (
	"context"
	"fmt"
	"log/slog"

	"palettegen/pkg/config"
	providerfantasy "palettegen/pkg/provider/fantasy"
	provideropenai "palettegen/pkg/provider/openai"
	providertypes "palettegen/pkg/provider/types"
)

// Client is the transport used for palette requests: one prompt in, one reply out.
type Client interface {
	Health(ctx context.Context) error
	Complete(ctx context.Context, model string, prompt string) (providertypes.PromptResult, error)
}

func New(cfg *config.Config) (Client, error) {
	providerID := cfg.Generator.Provider
	if providerID == "" {
		providerID = config.DefaultProvider
	}

	slog.Default().With("component", "provider.factory").Debug("Resolving provider client", "provider", providerID)

	settings, err := cfg.ProviderSettings(providerID)
	if err != nil {
		return nil, err
	}

	switch providerID {
	case config.ProviderOpenRouter, config.ProviderOpenAI:
		return provideropenai.New(providerID, settings)
	case config.ProviderFantasy:
		return providerfantasy.New(settings, cfg.Generator.Model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", providerID)
	}
}
