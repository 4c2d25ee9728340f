package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/veinview/internal/tubegen"
	"github.com/Faultbox/veinview/internal/vessel"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the vessel catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-4s %-24s %-7s %5s %6s\n", "CODE", "LABEL", "COLOR", "PARTS", "POINTS")
			for _, c := range vessel.All() {
				fmt.Fprintf(out, "%-4s %-24s #%06x %5d %6d\n",
					c.Code, c.Label, c.Color, len(c.Parts), c.PointCount())
			}
			return nil
		},
	}
}

func newWindowCmd() *cobra.Command {
	var height float32

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Show the sample window kept for a coverage height",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := tubegen.Window(height)
			fmt.Fprintf(cmd.OutOrStdout(), "height %.2f: coverage %.3f, %d of %d samples, indices %d..%d\n",
				height, tubegen.CoverageFraction(height), tubegen.SampleCount(height), tubegen.Samples, start, end)
			return nil
		},
	}
	cmd.Flags().Float32Var(&height, "height", tubegen.ReferenceMaxHeight/2, "coverage height")
	return cmd
}
