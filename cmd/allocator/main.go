// Command allocator computes slack-first, profit-second production
// allocations with a genetic search and an exact two-phase linear program.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "allocator",
		Short:        "Allocate production under shared plant capacities",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(defaultsCmd())
	return rootCmd
}
