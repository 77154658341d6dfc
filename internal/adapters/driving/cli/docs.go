package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

var docsDate string

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Inspect the indexed documents",
	Long:  `List the documents in the active index, or clear them.`,
	RunE:  runDocsList,
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	RunE:  runDocsList,
}

var docsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all documents from the index",
	RunE:  runDocsClear,
}

func init() {
	docsCmd.PersistentFlags().StringVarP(&docsDate, "date", "d", "", "index date (YYYY-MM-DD, default most recent fetch)")
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsClearCmd)
	rootCmd.AddCommand(docsCmd)
}

// resolveDocStore returns the document store for the selected date and a
// closer for the underlying index.
func resolveDocStore() (driven.DocumentStore, func(), error) {
	if docStore != nil {
		return docStore, func() {}, nil
	}

	cfg, err := ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	date := activeDate(cfg)
	if docsDate != "" {
		date, err = time.Parse("2006-01-02", docsDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", docsDate)
		}
	}

	store, err := openExistingIndex(date)
	if err != nil {
		return nil, nil, err
	}

	return store.DocumentStore(), func() { store.Close() }, nil
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	store, closer, err := resolveDocStore()
	if err != nil {
		return err
	}
	defer closer()

	ctx := cmd.Context()

	docs, err := store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("Index is empty. Run 'inboxqa fetch' first.")
		return nil
	}

	cmd.Printf("%d indexed document(s):\n\n", len(docs))
	for i, doc := range docs {
		cmd.Printf("  [%d] %s\n", i+1, doc.Metadata.Subject)
		cmd.Printf("      From: %s\n", doc.Metadata.From)
		if doc.Metadata.Received != "" {
			cmd.Printf("      Received: %s\n", doc.Metadata.Received)
		}
		cmd.Println()
	}

	return nil
}

func runDocsClear(cmd *cobra.Command, _ []string) error {
	store, closer, err := resolveDocStore()
	if err != nil {
		return err
	}
	defer closer()

	count, err := store.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("counting documents: %w", err)
	}

	if err := store.DeleteAll(cmd.Context()); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	cmd.Printf("Index cleared, %d document(s) removed.\n", count)
	return nil
}
