package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/veinview/internal/session"
)

func newPickCmd() *cobra.Command {
	opts := session.DefaultOptions()
	var x, y float32

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Resolve a pointer press against the default view",
		Long: `Builds every tube with the default parameters, places the camera in its
initial position and reports which entity a press at (x, y) would select.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.New(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			code, _ := sess.Press(x, y)
			if code == "" {
				fmt.Fprintf(out, "(%.0f, %.0f): nothing\n", x, y)
				return nil
			}
			sel, _ := sess.Selection()
			fmt.Fprintf(out, "(%.0f, %.0f): %s %s\n", x, y, sel.Code, sel.Label)
			return nil
		},
	}

	cmd.Flags().Float32Var(&x, "x", 0, "pointer x in pixels")
	cmd.Flags().Float32Var(&y, "y", 0, "pointer y in pixels")
	cmd.Flags().IntVar(&opts.Width, "width", opts.Width, "viewport width")
	cmd.Flags().IntVar(&opts.Height, "height", opts.Height, "viewport height")
	cmd.Flags().Float32Var(&opts.ForgivenessPx, "forgiveness", opts.ForgivenessPx, "retry radius in pixels, 0 disables")
	return cmd
}
