// Package commands implements the CLI commands for envboot.
package commands

import (
	"context"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.sortd.dev/envboot/internal/app"
	"go.sortd.dev/envboot/internal/engine/runner"
	"go.sortd.dev/envboot/internal/ui/output"
)

// CLI represents the command line interface for envboot.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Setup(ctx context.Context) (*app.Result, error)
	Freeze(ctx context.Context) (*app.Result, error)
	StepStatus(name string) runner.StepStatus
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	// Styled output honors NO_COLOR and pipes.
	lipgloss.SetColorProfile(output.ColorProfile())

	rootCmd := &cobra.Command{
		Use:           "envboot",
		Short:         "Bootstrap the Python environment for the document sorter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "envboot.yaml", "Path to configuration file")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newSetupCmd())
	rootCmd.AddCommand(c.newFreezeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetConfigHook sets up a PersistentPreRun function that retrieves the config
// flag and calls the provided callback with the config path.
func (c *CLI) SetConfigHook(fn func(string)) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("config") {
			return nil
		}
		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		fn(configPath)
		return nil
	}
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output and error streams. Used by main and
// for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
