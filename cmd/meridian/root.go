package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"arlan-hq/meridian/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "meridian",
	Short: "Meridian - personalized banking product recommendations",
	Long: `Meridian is a batch recommendation engine for retail banking products.

It reads client profiles, three months of transactions, and transfers
from CSV files, then for every client:
  - Estimates the monthly benefit of each of ten products
  - Applies mandatory eligibility rules and portfolio quotas
  - Picks one product and renders a personalized push notification

Decisions are persisted (in memory or SQLite) and exported as CSV.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configured file with environment overrides and
// applies global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}
