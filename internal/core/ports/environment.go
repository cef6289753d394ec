package ports

import (
	"context"
)

// EnvironmentFactory prepares the virtual environment for a setup run.
//
// Implementations are responsible for:
//   - Creating the environment when it does not exist yet
//   - Constructing activation variables (VIRTUAL_ENV, PATH, etc.) so that
//     subsequent installer invocations operate inside the environment
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentFactory interface {
	// EnsureEnvironment makes the virtual environment at venvDir available,
	// creating it with the given interpreter when missing, and returns its
	// activation environment as "KEY=VALUE" strings.
	//
	// The returned environment places the environment's script directory
	// first on PATH and does not carry PYTHONHOME, matching what the
	// environment manager's own activation script does.
	EnsureEnvironment(ctx context.Context, python, venvDir string) ([]string, error)
}
