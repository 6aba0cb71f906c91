package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trucklife",
		Short: "Truck Life - a trucking career simulator",
		Long: `Truck Life puts you behind the wheel of a freight career.
Buy a truck, haul jobs between cities, earn experience and climb the
license ladder from B to E. Loans from the bank are billed monthly.

Examples:
  trucklife play
  trucklife play --seed 42 --name "Ana Ribeiro"
  trucklife catalog cities
  trucklife loan-calc --amount 40500 --rate 0.08 --months 24 --schedule
  trucklife ledger list --session <id>
  trucklife config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewPlayCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewLoanCalcCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
