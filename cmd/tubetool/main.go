// tubetool inspects the vessel catalog and exports tubes without a window.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/veinview/internal/logger"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "tubetool",
		Short: "Inspect and export VeinView tubes",
		Long: `tubetool works on the same catalog and tube generator as the viewer.
It lists entities, explains coverage windows, exports tubes as STL and
runs headless pointer picks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				logger.InitNop()
				return nil
			}
			return logger.InitWithFileConfig("debug", logger.FileConfig{}, os.Stderr)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newCatalogCmd(),
		newWindowCmd(),
		newExportCmd(),
		newPickCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
