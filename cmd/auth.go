package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/s0up4200/goodreads/config"
	"github.com/s0up4200/goodreads/goodreads"
)

var (
	noBrowser bool
	forceAuth bool
)

var errNotInteractive = errors.New("authorization needs an interactive terminal; run auth from a shell or set oauth.token and oauth.token_secret")

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize this client to act on your behalf",
	Long: `Run the OAuth handshake with Goodreads.

The authorization page is opened in your browser. Once you have allowed access,
press enter in the terminal and the access token is saved to the credentials file.`,
	PreRunE: initializeApp,
	RunE:    runAuth,
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the member who authorized this client",
	PreRunE: initializeApp,
	RunE:    runWhoami,
}

func init() {
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(whoamiCmd)

	authCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "only print the authorization URL")
	authCmd.Flags().BoolVar(&forceAuth, "force", false, "authorize again even if a token is stored")
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if client.Authenticated() && !forceAuth {
		fmt.Fprintln(out, "Already authorized. Use --force to authorize again.")
		return nil
	}

	authorizer := &promptAuthorizer{
		in:          os.Stdin,
		out:         out,
		interactive: isTerminal(os.Stdin),
		openBrowser: !noBrowser,
	}

	// a stored token stays in use if the handshake fails
	if err := client.Authenticate(ctx, "", "", authorizer); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	token, secret := client.Session().AccessToken()
	if err := config.SaveCredentials(cfg.OAuth.CredentialsFile, token, secret); err != nil {
		return fmt.Errorf("authorized, but %w", err)
	}
	logger.Info().Str("file", cfg.OAuth.CredentialsFile).Msg("Saved access token")

	user, err := client.AuthUser(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up the authorized member: %w", err)
	}
	fmt.Fprintf(out, "✓ Authorized as %s (ID: %s)\n", user.GetDisplayName(), user.ID)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := client.AuthUser(cmd.Context())
	if errors.Is(err, goodreads.ErrUnauthenticated) {
		return fmt.Errorf("not authorized yet, run \"goodreads auth\" first")
	}
	if err != nil {
		return err
	}

	printUser(cmd.OutOrStdout(), user)
	return nil
}

// promptAuthorizer shows the authorization URL and waits for one line of input.
type promptAuthorizer struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	openBrowser bool
}

func (a *promptAuthorizer) Authorize(ctx context.Context, authURL string) error {
	if !a.interactive {
		return errNotInteractive
	}

	fmt.Fprintf(a.out, "Open this URL to authorize access:\n\n  %s\n\n", authURL)
	if a.openBrowser {
		if err := browser.OpenURL(authURL); err != nil {
			logger.Debug().Err(err).Msg("Could not open a browser")
		}
	}
	fmt.Fprint(a.out, "Press enter once you have allowed access... ")

	// The reader goroutine stays blocked on a cancelled context until the process
	// exits; stdin cannot be interrupted portably.
	read := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(a.in).ReadString('\n')
		read <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-read:
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("no confirmation received")
		}
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		return nil
	}
}
