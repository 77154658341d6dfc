package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the indexed mail",
	Long: `Answers a natural-language question against the most recently
fetched day of mail. Counting, sender-domain, month, lost & found and
latest-email questions are answered directly from the index; anything
else falls back to the configured language model.

Examples:
  inboxqa ask "how many emails did I receive today?"
  inboxqa ask "any emails from GIKI?"
  inboxqa ask "what was the last email I got?"`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askShowSources, "sources", false, "also print the retrieved emails")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	svc, _, closer, err := buildAnswerService(cfg, activeDate(cfg))
	if err != nil {
		return err
	}
	defer closer()

	ctx := cmd.Context()

	answer, err := svc.Answer(ctx, question)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	cmd.Println(answer)

	if askShowSources {
		docs, err := svc.Retrieve(ctx, question)
		if err != nil {
			return fmt.Errorf("retrieve failed: %w", err)
		}

		cmd.Println()
		cmd.Printf("Retrieved %d email(s):\n", len(docs))
		for i, doc := range docs {
			cmd.Printf("  [%d] %s - %s (%s)\n", i+1,
				doc.Metadata.From, doc.Metadata.Subject, doc.Metadata.Received)
		}
	}

	return nil
}
