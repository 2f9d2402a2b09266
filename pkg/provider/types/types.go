package types

import "errors"

// ErrMissingAPIKey is returned by every provider constructor when its
// credential variable is empty.
var ErrMissingAPIKey = errors.New("api key is not set")

// PromptResult is the normalized provider response payload.
type PromptResult struct {
	Text     string
	Metadata PromptMetadata
}

// PromptMetadata carries provider/model identity and optional usage accounting.
type PromptMetadata struct {
	Provider     string
	Model        string
	FinishReason string
	Usage        *TokenUsage
}

// TokenUsage captures token accounting across providers.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// IsZero reports whether all token counters are unset/zero.
func (u TokenUsage) IsZero() bool {
	return u.InputTokens == 0 &&
		u.OutputTokens == 0 &&
		u.TotalTokens == 0
}
