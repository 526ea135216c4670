package main

import (
	"github.com/spf13/cobra"

	pkgconfig "github.com/YMAFTOUH/GA-and-LP/pkg/config"
)

func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in problem data as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return pkgconfig.EncodeProblemData(cmd.OutOrStdout(), pkgconfig.DefaultProblemData())
		},
	}
}
