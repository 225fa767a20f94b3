package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/goodreads/config"
	"github.com/s0up4200/goodreads/filter"
	"github.com/s0up4200/goodreads/goodreads"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *goodreads.Client
	filters *filter.Manager

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "goodreads",
	Short: "A command line client for the Goodreads API",
	Long: `goodreads looks up books, authors, members and comment threads on Goodreads.

Lookups use your developer key. Commands acting on behalf of a member
(whoami, user --reviews, request --oauth) need an access token, obtained once
with "goodreads auth" and stored in the credentials file.`,
	SilenceUsage: true,
}

// SetVersion records build information injected by the linker
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, built)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.goodreads/config.yaml)")
}

// initializeApp loads the configuration and creates the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = goodreads.NewClient(
		goodreads.Credentials{Key: cfg.API.Key, Secret: cfg.API.Secret},
		logger,
		goodreads.WithBaseURL(cfg.API.BaseURL),
		goodreads.WithTimeout(cfg.API.Timeout),
		goodreads.WithUserAgent(cfg.API.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create Goodreads client: %w", err)
	}

	if cfg.OAuth.HasToken() {
		if err := client.Authenticate(cmd.Context(), cfg.OAuth.Token, cfg.OAuth.TokenSecret, nil); err != nil {
			return fmt.Errorf("failed to resume session: %w", err)
		}
		logger.Debug().Msg("Resumed stored Goodreads session")
	}

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter); err != nil {
		return fmt.Errorf("invalid filter presets: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// resolveFilter compiles --filter, which may name a preset from the config
func resolveFilter(expression string) (filter.CompiledFilter, error) {
	if expression == "" {
		return nil, nil
	}
	f, err := filters.Resolve(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	logger.Debug().Str("filter", f.Expression()).Msg("Applying filter")
	return f, nil
}
