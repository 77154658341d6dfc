package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kazlabs/inboxqa-cli/internal/adapters/driven/ai"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

// Configuration validators, swapped in tests.
var (
	validateLLMConfig       = ai.ValidateLLMConfig
	validateEmbeddingConfig = ai.ValidateEmbeddingConfig
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change configuration stored in config.toml.

Common keys:
  graph.client_id      Azure application (client) ID for Graph sign-in
  graph.tenant         Azure tenant (default: common)
  llm.provider         openai or ollama
  llm.model            model for generative answers (default: gpt-4o-mini)
  embedding.provider   openai or ollama
  embedding.model      embedding model (default: text-embedding-3-small)
  fetch.top            how many recent messages a fetch scans
  ask.top_k            how many emails a question retrieves`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsOpenAIKeyCmd = &cobra.Command{
	Use:   "openai-key",
	Short: "Set the OpenAI API key",
	Long:  `Prompts for the OpenAI API key without echoing it to the terminal.`,
	RunE:  runSettingsOpenAIKey,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsOpenAIKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Graph]")
	printSetting(cmd, "Client ID", cfg.GetString("graph.client_id"))
	printSetting(cmd, "Tenant", orDefault(cfg.GetString("graph.tenant"), "common"))
	cmd.Println()

	cmd.Println("[LLM]")
	printSetting(cmd, "Provider", orDefault(cfg.GetString("llm.provider"), "openai"))
	printSetting(cmd, "Model", orDefault(cfg.GetString("llm.model"), "gpt-4o-mini"))
	cmd.Println()

	cmd.Println("[Embedding]")
	printSetting(cmd, "Provider", orDefault(cfg.GetString("embedding.provider"), "openai"))
	printSetting(cmd, "Model", orDefault(cfg.GetString("embedding.model"), "text-embedding-3-small"))
	cmd.Println()

	cmd.Println("[OpenAI]")
	if key := cfg.GetString("openai.api_key"); key != "" {
		printSetting(cmd, "API Key", maskAPIKey(key))
	} else {
		printSetting(cmd, "API Key", "(not set)")
	}
	cmd.Println()

	if date := cfg.GetString("index.date"); date != "" {
		cmd.Println("[Index]")
		printSetting(cmd, "Active date", date)
		cmd.Println()
	}

	cmd.Printf("Config file: %s\n", cfg.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}

	if err := validateAISettings(cmd, cfg, key); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	return nil
}

// validateAISettings pings the affected provider after an llm.*,
// embedding.* or openai.api_key change. Unconfigured providers
// validate as a no-op.
func validateAISettings(cmd *cobra.Command, cfg driven.ConfigStore, key string) error {
	checkLLM := strings.HasPrefix(key, "llm.") || key == "openai.api_key"
	checkEmbedding := strings.HasPrefix(key, "embedding.") || key == "openai.api_key"
	if !checkLLM && !checkEmbedding {
		return nil
	}

	cmd.Print("Validating configuration... ")
	if checkEmbedding {
		if err := validateEmbeddingConfig(embeddingSettings(cfg)); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("embedding configuration validation failed: %w", err)
		}
	}
	if checkLLM {
		if err := validateLLMConfig(llmSettings(cfg)); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("LLM configuration validation failed: %w", err)
		}
	}
	cmd.Println("OK")
	return nil
}

func runSettingsOpenAIKey(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	cmd.Print("Enter OpenAI API key: ")
	key := readPassword()
	cmd.Println()

	if key == "" {
		return errors.New("no key entered")
	}

	if err := cfg.Set("openai.api_key", key); err != nil {
		return fmt.Errorf("saving API key: %w", err)
	}

	if err := validateAISettings(cmd, cfg, "openai.api_key"); err != nil {
		return err
	}

	cmd.Println("OpenAI API key saved.")
	return nil
}

// Helper functions.

func printSetting(cmd *cobra.Command, name, value string) {
	cmd.Printf("  %s: %s\n", name, value)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback + " (default)"
	}
	return value
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
