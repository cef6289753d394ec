// Package pip implements the PackageInstaller using the pip CLI.
package pip

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"

	"go.sortd.dev/envboot/internal/core/domain"
	"go.sortd.dev/envboot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Installer implements ports.PackageInstaller by invoking "<python> -m pip".
// Running pip through the interpreter rather than a pip binary ensures the
// invocation targets the activated environment's interpreter; when there is
// no activation environment the fallback interpreter drives pip, which is
// exactly the degraded behavior of running the original script with a broken
// activation step.
type Installer struct {
	executor ports.Executor
	fallback string
}

// NewInstaller creates an Installer. fallback is the interpreter used when
// the environment carries no VIRTUAL_ENV (e.g., "python3").
func NewInstaller(executor ports.Executor, fallback string) *Installer {
	return &Installer{
		executor: executor,
		fallback: fallback,
	}
}

// UpgradeSelf upgrades pip to the latest version. No version pin, no rollback.
func (i *Installer) UpgradeSelf(ctx context.Context, env []string) error {
	argv := []string{i.interpreter(env), "-m", "pip", "install", "--upgrade", "pip"}
	if err := i.executor.Run(ctx, argv, env); err != nil {
		failed := errors.Join(domain.ErrPipCommandFailed, err)
		return zerr.With(failed, "operation", "upgrade-self")
	}
	return nil
}

// Install installs all requirements in a single pip invocation. Pip's own
// partial-failure reporting is the only failure detail available; the caller
// sees the aggregate exit status.
func (i *Installer) Install(ctx context.Context, env []string, reqs []domain.Requirement) error {
	if len(reqs) == 0 {
		return domain.ErrNoPackagesConfigured
	}

	argv := []string{i.interpreter(env), "-m", "pip", "install"}
	for _, r := range reqs {
		argv = append(argv, r.Spec())
	}

	if err := i.executor.Run(ctx, argv, env); err != nil {
		failed := zerr.With(errors.Join(domain.ErrPipCommandFailed, err), "operation", "install")
		return zerr.With(failed, "package_count", len(reqs))
	}
	return nil
}

// Freeze exports the set of currently installed packages. The manifest
// reflects pip's state at the moment of export, whether or not any prior
// install succeeded.
func (i *Installer) Freeze(ctx context.Context, env []string) (domain.Manifest, error) {
	argv := []string{i.interpreter(env), "-m", "pip", "freeze"}
	out, err := i.executor.Output(ctx, argv, env)
	if err != nil {
		failed := errors.Join(domain.ErrPipCommandFailed, err)
		return domain.Manifest{}, zerr.With(failed, "operation", "freeze")
	}
	return domain.ParseManifest(out), nil
}

// interpreter picks the environment's interpreter when env carries an
// activation, the fallback otherwise.
func (i *Installer) interpreter(env []string) string {
	for _, e := range env {
		if root, ok := strings.CutPrefix(e, "VIRTUAL_ENV="); ok && root != "" {
			if runtime.GOOS == "windows" {
				return filepath.Join(root, "Scripts", "python.exe")
			}
			return filepath.Join(root, "bin", "python")
		}
	}
	return i.fallback
}
