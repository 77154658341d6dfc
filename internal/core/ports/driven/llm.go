package driven

import "context"

// LLMService provides generative answering over retrieved snippets.
// This is an optional service - when nil, fallback answering is disabled
// and only the keyword-routed strategies are available.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini, gpt-4o)
//   - Any OpenAI-compatible inference server
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup to verify connectivity.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
