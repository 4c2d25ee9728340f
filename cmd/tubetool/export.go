package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faultbox/veinview/internal/assets"
	"github.com/Faultbox/veinview/internal/engine/mesh"
	"github.com/Faultbox/veinview/internal/selection"
	"github.com/Faultbox/veinview/internal/session"
	"github.com/Faultbox/veinview/internal/tubegen"
	"github.com/Faultbox/veinview/internal/vessel"
)

func newExportCmd() *cobra.Command {
	defaults := session.DefaultOptions().Defaults
	var (
		codes  []string
		params = defaults
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write tubes to a binary STL file",
		Long: `Builds the partial tubes of the given entities with one set of
parameters and writes all their parts into a single STL file.
Values outside the editable ranges are clamped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(codes) == 0 {
				codes = vessel.Codes()
			}
			p := clampParams(params, selection.DefaultLimits())

			var meshes []*mesh.Mesh
			for _, code := range codes {
				m, err := tubegen.Build(strings.ToUpper(code), p)
				if err != nil {
					return err
				}
				meshes = append(meshes, m...)
			}
			if err := assets.WriteSTL(output, meshes...); err != nil {
				return err
			}

			tris := 0
			for _, m := range meshes {
				tris += m.TriangleCount()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d parts, %d triangles (radius %.2f, height %.1f, depth %.1f)\n",
				output, len(meshes), tris, p.Radius, p.CoverageHeight, p.DepthOffset)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&codes, "code", "c", nil, "entity codes (default all)")
	cmd.Flags().Float32Var(&params.Radius, "radius", defaults.Radius, "tube radius")
	cmd.Flags().Float32Var(&params.CoverageHeight, "height", defaults.CoverageHeight, "coverage height")
	cmd.Flags().Float32Var(&params.DepthOffset, "depth", defaults.DepthOffset, "depth offset")
	cmd.Flags().StringVarP(&output, "output", "o", "tubes.stl", "output file")
	return cmd
}

func clampParams(p vessel.Params, l selection.Limits) vessel.Params {
	return vessel.Params{
		Radius:         l.Radius.Clamp(p.Radius),
		CoverageHeight: l.Height.Clamp(p.CoverageHeight),
		DepthOffset:    l.Depth.Clamp(p.DepthOffset),
	}
}
