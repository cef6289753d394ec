package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.sortd.dev/envboot/internal/app"
	"go.sortd.dev/envboot/internal/engine/runner"
	"go.sortd.dev/envboot/internal/ui/prompt"
	"go.sortd.dev/envboot/internal/ui/style"
)

func (c *CLI) newSetupCmd() *cobra.Command {
	var skipPause bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Activate the environment, install packages, and export the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, style.Header("Starting environment setup..."))

			result, err := c.app.Setup(cmd.Context())
			if result != nil {
				c.printSteps(out)
				printExport(out, result)
			}

			_, _ = fmt.Fprintln(out, style.Header("Setup finished. Review any errors above."))
			if !skipPause {
				prompt.Pause("Press Enter to close...")
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&skipPause, "skip-pause", false, "Exit without waiting for Enter")
	return cmd
}

func (c *CLI) printSteps(out io.Writer) {
	for _, name := range []string{app.StepActivate, app.StepUpgrade, app.StepInstall, app.StepExport} {
		switch c.app.StepStatus(name) {
		case runner.StatusCompleted:
			_, _ = fmt.Fprintln(out, style.Success(name))
		case runner.StatusFailed:
			_, _ = fmt.Fprintln(out, style.Failure(name))
		default:
			_, _ = fmt.Fprintln(out, style.Dim(style.Dot+" "+name))
		}
	}
}

func printExport(out io.Writer, result *app.Result) {
	if result.Export.ManifestPath == "" {
		return
	}
	state := "updated"
	if !result.Changed {
		state = "unchanged"
	}
	_, _ = fmt.Fprintln(out, style.Dim(fmt.Sprintf("%s: %d packages (%s)",
		result.Export.ManifestPath, result.Export.PackageCount, state)))
}
