package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to your Outlook mailbox",
	Long: `Sign in to Microsoft using the device code flow.

A code and a verification URL are printed; open the URL in any browser,
enter the code, and approve the Mail.Read permission. The resulting token
is cached locally and refreshed automatically, so this is normally a
one-time step.

Requires graph.client_id to be configured:
  inboxqa settings set graph.client_id <azure-app-id>`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the cached sign-in token",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	auth, err := ensureAuth()
	if err != nil {
		return err
	}

	if auth.IsAuthenticated() {
		cmd.Println("Already signed in. Run 'inboxqa logout' first to switch accounts.")
		return nil
	}

	if err := auth.Login(cmd.Context()); err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	// The profile lookup is best effort; sign-in already succeeded.
	account, err := newMailSource(auth).AccountIdentifier(cmd.Context())
	if err != nil || account == "" {
		cmd.Println("Signed in successfully.")
		return nil
	}

	cmd.Printf("Signed in as %s.\n", account)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	auth, err := ensureAuth()
	if err != nil {
		return err
	}

	if err := auth.Logout(); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}

	cmd.Println("Signed out.")
	return nil
}
