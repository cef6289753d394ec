package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.sortd.dev/envboot/internal/ui/style"
)

func (c *CLI) newFreezeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "freeze",
		Short: "Export the installed package set to the manifest file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.app.Freeze(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, style.Success("exported "+result.Export.ManifestPath))
			printExport(out, result)
			return nil
		},
	}
}
