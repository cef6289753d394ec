// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
)

// Executor runs external processes on behalf of the setup pipeline.
//
// The env parameter contains environment variables in "KEY=VALUE" format,
// typically produced by an EnvironmentFactory so that commands resolve
// against the activated virtual environment's PATH.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes argv with the given environment, streaming stdout and
	// stderr to the telemetry vertex attached to ctx (and to the logger).
	// It blocks until the process exits.
	Run(ctx context.Context, argv []string, env []string) error

	// Output executes argv and returns its captured stdout. Stderr is
	// streamed like Run. Used for operations whose stdout is data rather
	// than progress, such as the installer's freeze.
	Output(ctx context.Context, argv []string, env []string) (string, error)
}
