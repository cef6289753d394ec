package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.sortd.dev/envboot/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the envboot version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "envboot "+build.Version)
		},
	}
}
