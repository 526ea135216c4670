package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	pkgconfig "github.com/YMAFTOUH/GA-and-LP/pkg/config"
	"github.com/YMAFTOUH/GA-and-LP/pkg/core"
)

func validateCmd() *cobra.Command {
	var problemFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a problem file and print its feasible box",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.OutOrStdout(), problemFile)
		},
	}
	cmd.Flags().StringVarP(&problemFile, "problem", "p", "", "problem file (YAML or JSON)")
	_ = cmd.MarkFlagRequired("problem")
	return cmd
}

func runValidate(out io.Writer, path string) error {
	data, err := pkgconfig.LoadProblemFile(path)
	if err != nil {
		return err
	}
	problem, err := core.NewProblem(data)
	if err != nil {
		return err
	}

	box := problem.Box()
	fmt.Fprintf(out, "%s: %d products, %d plants\n", path, problem.NumProducts(), problem.NumPlants())
	for i, p := range problem.Products() {
		note := ""
		if box.Uncoupled(i) {
			note = " (not coupled to any plant)"
		}
		fmt.Fprintf(out, "  %-10s [%g, %g]%s\n", p.Name, box.Low[i], box.High[i], note)
	}
	if box.Empty() {
		return fmt.Errorf("%s: minimum sales exceed the feasible upper bound of at least one product", path)
	}
	return nil
}
