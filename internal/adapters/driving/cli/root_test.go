package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

// mockConfigStore is an in-memory driven.ConfigStore.
type mockConfigStore struct {
	values map[string]any
	setErr error
}

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{values: map[string]any{}}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if v, ok := m.values[key].(string); ok {
		return v
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if v, ok := m.values[key].(int); ok {
		return v
	}
	return 0
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockConfigStore) Save() error { return nil }

func (m *mockConfigStore) Load() error { return nil }

func (m *mockConfigStore) Path() string { return "/tmp/config.toml" }

// mockAuthProvider is a stub AuthProvider.
type mockAuthProvider struct {
	authenticated bool
	loginCalled   bool
	logoutCalled  bool
	loginErr      error
	logoutErr     error
}

func (m *mockAuthProvider) Login(_ context.Context) error {
	m.loginCalled = true
	if m.loginErr == nil {
		m.authenticated = true
	}
	return m.loginErr
}

func (m *mockAuthProvider) Logout() error {
	m.logoutCalled = true
	if m.logoutErr == nil {
		m.authenticated = false
	}
	return m.logoutErr
}

func (m *mockAuthProvider) IsAuthenticated() bool { return m.authenticated }

func (m *mockAuthProvider) Token(_ context.Context) (string, error) {
	return "test-token", nil
}

// mockMailSource is a stub driven.MailSource.
type mockMailSource struct {
	messages   []domain.Message
	account    string
	listErr    error
	accountErr error
}

func (m *mockMailSource) ListMessages(_ context.Context, _ int) ([]domain.Message, error) {
	return m.messages, m.listErr
}

func (m *mockMailSource) AccountIdentifier(_ context.Context) (string, error) {
	return m.account, m.accountErr
}

// mockAnswerService is a stub driving.AnswerService.
type mockAnswerService struct {
	answer   string
	docs     []domain.Document
	question string
	err      error
}

func (m *mockAnswerService) Answer(_ context.Context, query string) (string, error) {
	m.question = query
	return m.answer, m.err
}

func (m *mockAnswerService) Retrieve(_ context.Context, _ string) ([]domain.Document, error) {
	return m.docs, m.err
}

// mockIngestService is a stub driving.IngestService.
type mockIngestService struct {
	messages  []domain.Message
	fetchDate time.Time
	fetchTop  int
	fetchErr  error
	indexErr  error
}

func (m *mockIngestService) FetchForDate(_ context.Context, date time.Time, top int) ([]domain.Message, error) {
	m.fetchDate = date
	m.fetchTop = top
	return m.messages, m.fetchErr
}

func (m *mockIngestService) Index(_ context.Context, messages []domain.Message) (int, error) {
	if m.indexErr != nil {
		return 0, m.indexErr
	}
	return len(messages), nil
}

// mockDocStore is a stub driven.DocumentStore.
type mockDocStore struct {
	docs      []domain.Document
	deleteAll bool
	listErr   error
	countErr  error
	deleteErr error
}

func (m *mockDocStore) SaveDocument(_ context.Context, _ *domain.Document) error { return nil }

func (m *mockDocStore) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *mockDocStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.listErr
}

func (m *mockDocStore) Count(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.docs), nil
}

func (m *mockDocStore) DeleteAll(_ context.Context) error {
	m.deleteAll = true
	return m.deleteErr
}

// setupTestServices injects mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldConfig := configStore
	oldAuth := authProvider
	oldAnswer := answerService
	oldIngest := ingestService
	oldDocs := docStore
	oldMail := newMailSource
	oldValidateLLM := validateLLMConfig
	oldValidateEmbedding := validateEmbeddingConfig

	configStore = newMockConfigStore()
	authProvider = &mockAuthProvider{authenticated: true}
	answerService = &mockAnswerService{
		answer: "You received 2 emails.",
		docs: []domain.Document{
			{ID: "msg-1", Metadata: domain.EmailMetadata{
				Subject: "Hello", From: "alice@example.com", Received: "2025-01-15T09:00:00Z"}},
		},
	}
	ingestService = &mockIngestService{
		messages: []domain.Message{
			{ID: "msg-1", Subject: "Hello", From: "alice@example.com"},
			{ID: "msg-2", Subject: "Reminder", From: "bob@example.com"},
		},
	}
	docStore = &mockDocStore{
		docs: []domain.Document{
			{ID: "msg-1", Metadata: domain.EmailMetadata{
				Subject: "Hello", From: "alice@example.com", Received: "2025-01-15T09:00:00Z"}},
		},
	}
	newMailSource = func(_ driven.TokenProvider) driven.MailSource {
		return &mockMailSource{account: "user@example.com"}
	}
	validateLLMConfig = func(_ domain.LLMSettings) error { return nil }
	validateEmbeddingConfig = func(_ domain.EmbeddingSettings) error { return nil }

	return func() {
		configStore = oldConfig
		authProvider = oldAuth
		answerService = oldAnswer
		ingestService = oldIngest
		docStore = oldDocs
		newMailSource = oldMail
		validateLLMConfig = oldValidateLLM
		validateEmbeddingConfig = oldValidateEmbedding
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "inboxqa", rootCmd.Use)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestRootCmd_HasConfigDirFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config-dir")
	assert.NotNil(t, flag)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "login")
	assert.Contains(t, names, "logout")
	assert.Contains(t, names, "fetch")
	assert.Contains(t, names, "ask")
	assert.Contains(t, names, "docs")
	assert.Contains(t, names, "settings")
	assert.Contains(t, names, "mcp")
	assert.Contains(t, names, "tui")
	assert.Contains(t, names, "version")
}

func TestActiveDate(t *testing.T) {
	t.Run("uses configured index date", func(t *testing.T) {
		cfg := newMockConfigStore()
		cfg.values["index.date"] = "2025-01-15"

		date := activeDate(cfg)
		assert.Equal(t, "2025-01-15", date.Format("2006-01-02"))
	})

	t.Run("falls back to today for bad values", func(t *testing.T) {
		cfg := newMockConfigStore()
		cfg.values["index.date"] = "not-a-date"

		date := activeDate(cfg)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), date.Format("2006-01-02"))
	})

	t.Run("defaults to today when unset", func(t *testing.T) {
		cfg := newMockConfigStore()

		date := activeDate(cfg)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), date.Format("2006-01-02"))
	})
}

func TestEmbeddingSettings(t *testing.T) {
	t.Run("defaults to openai when api key set", func(t *testing.T) {
		cfg := newMockConfigStore()
		cfg.values["openai.api_key"] = "sk-test"

		settings := embeddingSettings(cfg)
		assert.Equal(t, domain.AIProviderOpenAI, settings.Provider)
		assert.Equal(t, "sk-test", settings.APIKey)
	})

	t.Run("empty without configuration", func(t *testing.T) {
		cfg := newMockConfigStore()

		settings := embeddingSettings(cfg)
		assert.Empty(t, string(settings.Provider))
		assert.False(t, settings.IsConfigured())
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		cfg := newMockConfigStore()
		cfg.values["embedding.provider"] = "ollama"
		cfg.values["embedding.model"] = "nomic-embed-text"

		settings := embeddingSettings(cfg)
		assert.Equal(t, domain.AIProviderOllama, settings.Provider)
		assert.Equal(t, "nomic-embed-text", settings.Model)
	})
}

func TestLLMSettings(t *testing.T) {
	cfg := newMockConfigStore()
	cfg.values["llm.provider"] = "openai"
	cfg.values["llm.model"] = "gpt-4o"
	cfg.values["openai.api_key"] = "sk-test"

	settings := llmSettings(cfg)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Provider)
	assert.Equal(t, "gpt-4o", settings.Model)
	assert.True(t, settings.IsConfigured())
}
