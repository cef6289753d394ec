package venv_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.sortd.dev/envboot/internal/adapters/venv"
	"go.sortd.dev/envboot/internal/core/domain"
	"go.sortd.dev/envboot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// writeVenvLayout fakes the on-disk layout "python -m venv" produces.
func writeVenvLayout(t *testing.T, root string) {
	t.Helper()

	scripts := filepath.Join(root, "bin")
	interpreter := filepath.Join(scripts, "python")
	if runtime.GOOS == "windows" {
		scripts = filepath.Join(root, "Scripts")
		interpreter = filepath.Join(scripts, "python.exe")
	}

	require.NoError(t, os.MkdirAll(scripts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o600))
	require.NoError(t, os.WriteFile(interpreter, []byte("#!/bin/sh\n"), 0o755))
}

func TestFactory_ExistingEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := filepath.Join(t.TempDir(), ".venv")
	writeVenvLayout(t, root)

	// No creation command may run when pyvenv.cfg exists.
	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	factory := venv.NewFactory(mockExecutor, mockLogger)
	env, err := factory.EnsureEnvironment(context.Background(), "python3", root)
	require.NoError(t, err)

	assert.Contains(t, env, "VIRTUAL_ENV="+root)
	assert.Contains(t, env, "PYTHONHOME=")

	scripts := filepath.Join(root, "bin")
	if runtime.GOOS == "windows" {
		scripts = filepath.Join(root, "Scripts")
	}
	assert.Contains(t, env, "PATH="+scripts)
}

func TestFactory_CreatesMissingEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := filepath.Join(t.TempDir(), ".venv")

	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any())

	mockExecutor.EXPECT().
		Run(gomock.Any(), []string{"python3", "-m", "venv", root}, nil).
		DoAndReturn(func(_ context.Context, _ []string, _ []string) error {
			writeVenvLayout(t, root)
			return nil
		})

	factory := venv.NewFactory(mockExecutor, mockLogger)
	env, err := factory.EnsureEnvironment(context.Background(), "python3", root)
	require.NoError(t, err)
	assert.Contains(t, env, "VIRTUAL_ENV="+root)
}

func TestFactory_CreationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := filepath.Join(t.TempDir(), ".venv")

	mockExecutor := mocks.NewMockExecutor(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any())

	mockExecutor.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("python3: not found"))

	factory := venv.NewFactory(mockExecutor, mockLogger)
	_, err := factory.EnsureEnvironment(context.Background(), "python3", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create virtual environment")
}

func TestFactory_MissingInterpreter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	root := filepath.Join(t.TempDir(), ".venv")

	// pyvenv.cfg present but no interpreter in the scripts directory.
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyvenv.cfg"), []byte("home = /usr/bin\n"), 0o600))

	factory := venv.NewFactory(mocks.NewMockExecutor(ctrl), mocks.NewMockLogger(ctrl))
	_, err := factory.EnsureEnvironment(context.Background(), "python3", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInterpreterNotFound)
}
