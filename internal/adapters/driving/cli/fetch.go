package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	fetchDate string
	fetchTop  int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and index one day of mail",
	Long: `Fetches recent messages from your Outlook inbox via the Graph API,
keeps those received on the given UTC date, and indexes them into a local
vector store. Subsequent 'ask' commands answer against that index.

Examples:
  inboxqa fetch                      # today's mail
  inboxqa fetch --date 2025-01-15    # a specific day
  inboxqa fetch --top 200            # look further back in the inbox`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchDate, "date", "d", "", "UTC date to index (YYYY-MM-DD, default today)")
	fetchCmd.Flags().IntVarP(&fetchTop, "top", "t", 0, "how many recent messages to scan (default 100)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	date := time.Now().UTC()
	if fetchDate != "" {
		date, err = time.Parse("2006-01-02", fetchDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", fetchDate)
		}
	}

	top := fetchTop
	if top <= 0 {
		top = cfg.GetInt("fetch.top")
	}
	if top <= 0 {
		top = 100
	}

	svc, closer, err := buildIngestService(cfg, date)
	if err != nil {
		return err
	}
	defer closer()

	ctx := cmd.Context()

	cmd.Printf("Fetching mail for %s...\n", date.Format("2006-01-02"))
	messages, err := svc.FetchForDate(ctx, date, top)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	if len(messages) == 0 {
		cmd.Println("No messages found for that date.")
		return nil
	}

	cmd.Printf("Indexing %d message(s)...\n", len(messages))
	indexed, err := svc.Index(ctx, messages)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	// Remember the date so ask/docs/tui use this index by default.
	if err := cfg.Set("index.date", date.Format("2006-01-02")); err != nil {
		return fmt.Errorf("saving active date: %w", err)
	}

	cmd.Printf("Indexed %d document(s) for %s.\n", indexed, date.Format("2006-01-02"))
	return nil
}
