// Package main is the entry point for the occur command-line tool, a
// batch front end over the occurrence engine.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dshills/occur/internal/config"
	"github.com/dshills/occur/internal/log"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	flagConfig   string
	flagLogLevel string
	flagNoColor  bool
	flagJSON     bool
)

func main() {
	os.Exit(run())
}

func run() int {
	root := &cobra.Command{
		Use:           "occur",
		Short:         "Locate and transform repeated text occurrences in files",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON output")

	root.AddCommand(newFindCmd())
	root.AddCommand(newApplyCmd())
	root.AddCommand(newStatusCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig builds the effective configuration from the config file,
// the environment, and command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadFile(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyEnv(&cfg)
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if flagNoColor {
		color.NoColor = true
	}
	return cfg, nil
}

// newLogger creates the process logger from the configuration.
func newLogger(cfg config.Config) *log.Logger {
	return log.New(log.Config{
		Level:  log.ParseLevel(cfg.Logging.Level),
		Output: os.Stderr,
		Prefix: "occur",
	})
}
