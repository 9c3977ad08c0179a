// Package main provides the jobfit command line: job-fit scoring, bullet
// validation and selection, document verification, stage spinning and the
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/jobfit/internal/config"
	"github.com/jonathan/jobfit/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool

	// set by loadRuntime before any subcommand runs
	v      *viper.Viper
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jobfit",
	Short: "Job-fit scoring and resume content selection",
	Long: "jobfit scores a candidate against a job posting, validates and selects resume bullets from a library, " +
		"verifies resumes, cover letters and outreach messages, and adapts wording to a company stage.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "debug logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print human-readable summaries to stderr")
}

func loadRuntime(cmd *cobra.Command, _ []string) error {
	v = config.New()
	if err := v.BindPFlag("log.json", cmd.Flags().Lookup("json")); err != nil {
		return err
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		loaded.Log.Level = "debug"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger, err = logging.New(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
