// Package venv implements the EnvironmentFactory for Python virtual environments.
package venv

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"go.sortd.dev/envboot/internal/core/domain"
	"go.sortd.dev/envboot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory implements ports.EnvironmentFactory. It creates the virtual
// environment when missing and derives the activation variables the
// environment manager's activate script would export.
type Factory struct {
	executor ports.Executor
	logger   ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(executor ports.Executor, logger ports.Logger) *Factory {
	return &Factory{
		executor: executor,
		logger:   logger,
	}
}

// EnsureEnvironment makes the virtual environment at venvDir available and
// returns its activation environment.
//
// The returned variables replicate activation rather than sourcing the
// activate script: VIRTUAL_ENV points at the environment root, the script
// directory is placed on PATH (the executor prepends it to the system PATH),
// and PYTHONHOME is cleared.
func (f *Factory) EnsureEnvironment(ctx context.Context, python, venvDir string) ([]string, error) {
	root, err := filepath.Abs(venvDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve venv path"), "venv_dir", venvDir)
	}

	if !exists(filepath.Join(root, "pyvenv.cfg")) {
		f.logger.Info("virtual environment not found, creating " + root)
		if err := f.executor.Run(ctx, []string{python, "-m", "venv", root}, nil); err != nil {
			createErr := zerr.Wrap(err, "failed to create virtual environment")
			createErr = zerr.With(createErr, "python", python)
			return nil, zerr.With(createErr, "venv_dir", root)
		}
	}

	scripts := scriptsDir(root)
	if _, err := interpreterPath(scripts); err != nil {
		missing := zerr.With(domain.ErrInterpreterNotFound, "venv_dir", root)
		return nil, zerr.With(missing, "scripts_dir", scripts)
	}

	return []string{
		"VIRTUAL_ENV=" + root,
		"PATH=" + scripts,
		// activate unsets PYTHONHOME; clearing it is the merge-friendly equivalent.
		"PYTHONHOME=",
	}, nil
}

// scriptsDir returns the directory holding the environment's executables.
func scriptsDir(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, "Scripts")
	}
	return filepath.Join(root, "bin")
}

// interpreterPath locates the environment's python executable.
func interpreterPath(scripts string) (string, error) {
	names := []string{"python", "python3"}
	if runtime.GOOS == "windows" {
		names = []string{"python.exe"}
	}
	for _, name := range names {
		p := filepath.Join(scripts, name)
		if exists(p) {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
