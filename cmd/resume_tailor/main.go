// Package main provides the resume_tailor command line tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "resume_tailor",
	Short: "Resume tailoring and go-to-market content tools",
	Long: `resume_tailor extracts job postings from URLs, tailors a resume to each posting with an LLM,
and renders the result as HTML, LaTeX or PDF. It also builds competitor battle cards and product landing pages.

Provider credentials are read from the environment (or a .env file): AI_PROVIDER, AI_MODEL and the provider's API key.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	verbose    bool
	configPath string

	// fileConfig holds the values loaded with --config. Flags override it.
	fileConfig config.Config
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
}

// setup loads the config file and configures logging before every command.
func setup(cmd *cobra.Command, _ []string) error {
	fileConfig = config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileConfig = *loaded
	}

	setupLogging(cmd.ErrOrStderr(), verbose || fileConfig.Verbose)
	if configPath != "" {
		log.Debug().Str("path", configPath).Msg("loaded config")
	}
	return nil
}

func setupLogging(w io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
