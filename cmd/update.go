package cmd

import (
	"errors"
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/goodreads"

var forceUpdate bool

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update goodreads to the latest release",
	Long: `Check GitHub for a newer release and replace the running binary with it.

Development builds are not updated unless --force is given.`,
	RunE: runUpdate,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "goodreads %s (built %s)\n", version, buildTime)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)

	updateCmd.Flags().BoolVar(&forceUpdate, "force", false, "update even when running a development build")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := currentVersion(version, forceUpdate)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repositorySlug)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(out, "✓ Already up to date (%s)\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	logger.Info().
		Str("from", current.String()).
		Str("to", latest.Version()).
		Msg("Updating...")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "✓ Updated to %s\n", latest.Version())
	return nil
}

var errDevBuild = errors.New("development build, use --force to update anyway")

// currentVersion parses the build version. Unparseable versions count as 0.0.0
// when forced so that any release is newer.
func currentVersion(v string, force bool) (semver.Version, error) {
	parsed, err := semver.ParseTolerant(v)
	if err == nil {
		return parsed, nil
	}
	if !force {
		return semver.Version{}, errDevBuild
	}
	return semver.Version{}, nil
}
