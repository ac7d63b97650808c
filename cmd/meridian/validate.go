package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"arlan-hq/meridian/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load the configuration file, apply defaults and environment
overrides, and report every validation problem found.

Examples:
  # Validate the default config
  meridian validate

  # Validate a specific file
  meridian validate --config /etc/meridian/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("✗ Configuration invalid (%d problems):\n", len(verr.Errors))
			for _, fe := range verr.Errors {
				fmt.Printf("  - %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("%d validation errors", len(verr.Errors))
		}
		return err
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  Clients:      %s\n", cfg.Data.ClientsPath)
	fmt.Printf("  Transactions: %s\n", cfg.Data.TransactionsPath)
	fmt.Printf("  Transfers:    %s\n", cfg.Data.TransfersPath)
	fmt.Printf("  Output:       %s\n", cfg.Data.OutputPath)
	fmt.Printf("  Store:        %s\n", cfg.Store.Backend)
	return nil
}
