// Package main is the entry point for the envboot setup tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.sortd.dev/envboot/cmd/envboot/commands"
	"go.sortd.dev/envboot/internal/app"
	"go.sortd.dev/envboot/internal/core/domain"
	_ "go.sortd.dev/envboot/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet when initialization fails.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()
	// Flush any buffered step output before the process exits.
	defer func() { _ = components.Telemetry.Close() }()

	cli := commands.New(components.App)
	cli.SetConfigHook(components.App.SetConfigPath)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrSetupIncomplete) {
			// Step failures were already reported inline.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
