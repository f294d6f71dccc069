// Package cmd implements the loancalc command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X loan-calculator/cmd.Version=...".
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "loancalc",
	Short: "Fixed-rate loan calculator",
	Long: `loancalc computes the monthly payment and total interest cost of a
fixed-rate loan from its principal, annual rate and term in years.
Run "loancalc serve" for the web form and JSON API, or "loancalc calc"
for a one-off calculation.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "loancalc %s\n", Version)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
