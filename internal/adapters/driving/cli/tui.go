package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kazlabs/inboxqa-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

Ask questions about the indexed day of mail and browse the indexed
emails with keyboard navigation.

Controls:
  (type)    Enter a question
  Enter     Ask / Open email
  Tab       Toggle email browser
  ↑/k, ↓/j  Navigate emails
  Esc       Back
  Ctrl+C    Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps a stack trace visible after the alt screen closes
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	cfg, err := ensureConfig()
	if err != nil {
		return err
	}

	svc, docs, closer, err := buildAnswerService(cfg, activeDate(cfg))
	if err != nil {
		return err
	}
	defer closer()

	app, err := tui.NewApp(tui.NewPorts(svc, docs))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
