package domain

// AIProvider identifies a backend for LLM or embedding services.
type AIProvider string

const (
	// AIProviderOpenAI is the hosted OpenAI API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// EmbeddingSettings configures the embedding provider used to index mail
// and embed questions.
type EmbeddingSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured reports whether the settings are complete enough to build
// a service. Local providers need no API key.
func (s EmbeddingSettings) IsConfigured() bool {
	switch s.Provider {
	case AIProviderOllama:
		return true
	case AIProviderOpenAI:
		return s.APIKey != ""
	default:
		return false
	}
}

// LLMSettings configures the generative model behind fallback answers.
type LLMSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
	APIKey   string
}

// IsConfigured reports whether the settings are complete enough to build
// a service.
func (s LLMSettings) IsConfigured() bool {
	switch s.Provider {
	case AIProviderOllama:
		return true
	case AIProviderOpenAI:
		return s.APIKey != ""
	default:
		return false
	}
}
