// Package cli implements the inboxqa command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kazlabs/inboxqa-cli/internal/adapters/driven/ai"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driven/auth/devicecode"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driven/config/file"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driven/retriever"
	"github.com/kazlabs/inboxqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/kazlabs/inboxqa-cli/internal/connectors/graph"
	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driving"
	"github.com/kazlabs/inboxqa-cli/internal/core/services"
	"github.com/kazlabs/inboxqa-cli/internal/logger"
	htmlnorm "github.com/kazlabs/inboxqa-cli/internal/normalisers/html"
)

// version is set by Execute from the build.
var version = "dev"

// verbose enables debug logging on stderr.
var verbose bool

// configDir overrides the default ~/.inboxqa directory.
var configDir string

// Injected services. Populated lazily by the wiring helpers below;
// tests set them directly.
var (
	configStore   driven.ConfigStore
	authProvider  AuthProvider
	answerService driving.AnswerService
	ingestService driving.IngestService
	docStore      driven.DocumentStore
)

// AuthProvider is the slice of the device code provider the CLI needs.
type AuthProvider interface {
	Login(ctx context.Context) error
	Logout() error
	IsAuthenticated() bool
	Token(ctx context.Context) (string, error)
}

// newMailSource builds the Graph mail source for a token provider.
// Swapped in tests.
var newMailSource = func(tokens driven.TokenProvider) driven.MailSource {
	return graph.NewClient(tokens)
}

var rootCmd = &cobra.Command{
	Use:   "inboxqa",
	Short: "Fetch your Outlook inbox for a day and ask questions about it",
	Long: `inboxqa fetches messages from a Microsoft Outlook mailbox via the
Graph API, indexes one day of mail into a local vector store, and answers
natural-language questions about it.

Typical workflow:
  inboxqa login                      # one-time device code sign-in
  inboxqa fetch --date 2025-01-15    # index that day's mail
  inboxqa ask "how many emails did I get today?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.inboxqa)")
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

// resolveConfigDir returns the directory holding config, token cache and
// indexes.
func resolveConfigDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".inboxqa"), nil
}

// ensureConfig opens the TOML config store, reusing an injected one.
func ensureConfig() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}

	dir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}

	store, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	configStore = store
	return configStore, nil
}

// ensureAuth builds the device code token provider from config.
func ensureAuth() (AuthProvider, error) {
	if authProvider != nil {
		return authProvider, nil
	}

	cfg, err := ensureConfig()
	if err != nil {
		return nil, err
	}

	clientID := cfg.GetString("graph.client_id")
	if clientID == "" {
		return nil, fmt.Errorf("graph.client_id is not set; run 'inboxqa settings set graph.client_id <app-id>'")
	}

	dir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}

	tenant := cfg.GetString("graph.tenant")
	authProvider = devicecode.New(clientID, tenant, filepath.Join(dir, "token.json"))
	return authProvider, nil
}

// indexPath returns the database path for a mailbox day.
func indexPath(date time.Time) (string, error) {
	dir, err := resolveConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "indexes", date.UTC().Format("2006-01-02")+".db"), nil
}

// activeDate reads the most recently fetched date from config, defaulting
// to today in UTC.
func activeDate(cfg driven.ConfigStore) time.Time {
	if raw := cfg.GetString("index.date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			return d
		}
	}
	return time.Now().UTC()
}

// embeddingSettings reads embedding configuration from the config store.
func embeddingSettings(cfg driven.ConfigStore) domain.EmbeddingSettings {
	provider := cfg.GetString("embedding.provider")
	if provider == "" && cfg.GetString("openai.api_key") != "" {
		provider = string(domain.AIProviderOpenAI)
	}

	return domain.EmbeddingSettings{
		Provider: domain.AIProvider(provider),
		Model:    cfg.GetString("embedding.model"),
		BaseURL:  cfg.GetString("embedding.base_url"),
		APIKey:   cfg.GetString("openai.api_key"),
	}
}

// llmSettings reads LLM configuration from the config store.
func llmSettings(cfg driven.ConfigStore) domain.LLMSettings {
	provider := cfg.GetString("llm.provider")
	if provider == "" && cfg.GetString("openai.api_key") != "" {
		provider = string(domain.AIProviderOpenAI)
	}

	return domain.LLMSettings{
		Provider: domain.AIProvider(provider),
		Model:    cfg.GetString("llm.model"),
		BaseURL:  cfg.GetString("llm.base_url"),
		APIKey:   cfg.GetString("openai.api_key"),
	}
}

// openIndex opens the document and vector store for a mailbox day,
// creating the database when missing. Used by the fetch pipeline.
func openIndex(date time.Time) (*sqlite.Store, error) {
	path, err := indexPath(date)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path)
}

// openExistingIndex opens the index for a day a fetch has already
// created. Reading a date with no index returns domain.ErrNoIndex
// rather than creating an empty database.
func openExistingIndex(date time.Time) (*sqlite.Store, error) {
	path, err := indexPath(date)
	if err != nil {
		return nil, err
	}

	day := date.UTC().Format("2006-01-02")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s; run 'inboxqa fetch --date %s' first", domain.ErrNoIndex, day, day)
	}
	return sqlite.NewStore(path)
}

// buildAnswerService wires the answer pipeline for the active date. It
// also returns the document store backing the index, so callers can
// inspect the raw documents. The returned closer shuts down the index
// and AI services.
func buildAnswerService(cfg driven.ConfigStore, date time.Time) (driving.AnswerService, driven.DocumentStore, func(), error) {
	if answerService != nil {
		return answerService, docStore, func() {}, nil
	}

	store, err := openExistingIndex(date)
	if err != nil {
		return nil, nil, nil, err
	}

	embedder, err := ai.CreateEmbeddingService(embeddingSettings(cfg))
	if err != nil {
		store.Close()
		return nil, nil, nil, err
	}
	if embedder == nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("no embedding provider configured; run 'inboxqa settings openai-key' or set embedding.provider")
	}

	llm, err := ai.CreateLLMService(llmSettings(cfg))
	if err != nil {
		embedder.Close()
		store.Close()
		return nil, nil, nil, err
	}

	ret := retriever.New(embedder, store.VectorIndex(), store.DocumentStore(),
		retriever.WithTopK(cfg.GetInt("ask.top_k")))

	closer := func() {
		if llm != nil {
			llm.Close()
		}
		embedder.Close()
		store.Close()
	}

	return services.NewAnswerService(ret, llm), store.DocumentStore(), closer, nil
}

// buildIngestService wires the fetch-and-index pipeline for a date.
func buildIngestService(cfg driven.ConfigStore, date time.Time) (driving.IngestService, func(), error) {
	if ingestService != nil {
		return ingestService, func() {}, nil
	}

	auth, err := ensureAuth()
	if err != nil {
		return nil, nil, err
	}

	store, err := openIndex(date)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := ai.CreateEmbeddingService(embeddingSettings(cfg))
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if embedder == nil {
		store.Close()
		return nil, nil, fmt.Errorf("no embedding provider configured; run 'inboxqa settings openai-key' or set embedding.provider")
	}

	mail := newMailSource(auth)

	closer := func() {
		embedder.Close()
		store.Close()
	}

	svc := services.NewIngestService(mail, htmlnorm.New(), embedder,
		store.DocumentStore(), store.VectorIndex())
	return svc, closer, nil
}
