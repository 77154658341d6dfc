// Package ai provides factory functions for creating LLM and embedding
// service adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/kazlabs/inboxqa-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/kazlabs/inboxqa-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/kazlabs/inboxqa-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/kazlabs/inboxqa-cli/internal/adapters/driven/llm/openai"
	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the configured embedding service.
// Returns nil when the provider is not configured.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the configured LLM service.
// Returns nil when the provider is not configured, which disables the
// generative fallback answer path.
func CreateLLMService(settings domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// ValidateEmbeddingConfig validates an embedding configuration by creating
// a service and pinging it. Used when settings change.
func ValidateEmbeddingConfig(settings domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// ValidateLLMConfig validates an LLM configuration by creating a service
// and pinging it. Used when settings change.
func ValidateLLMConfig(settings domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}
