package ports

import (
	"context"

	"go.sortd.dev/envboot/internal/core/domain"
)

// PackageInstaller wraps the external package installer (pip).
//
// All operations run inside the activation environment produced by an
// EnvironmentFactory; env is passed through to the underlying Executor.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type PackageInstaller interface {
	// UpgradeSelf upgrades the installer itself to the latest version.
	UpgradeSelf(ctx context.Context, env []string) error

	// Install installs the given requirements in a single invocation.
	// Partial-failure policy is the installer's own; the caller only sees
	// the invocation's aggregate exit status.
	Install(ctx context.Context, env []string, reqs []domain.Requirement) error

	// Freeze exports the full set of currently installed packages.
	Freeze(ctx context.Context, env []string) (domain.Manifest, error)
}
