package pip_test

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.sortd.dev/envboot/internal/adapters/pip"
	"go.sortd.dev/envboot/internal/core/domain"
	"go.sortd.dev/envboot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func venvInterpreter(root string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(root, "Scripts", "python.exe")
	}
	return filepath.Join(root, "bin", "python")
}

func TestInstaller_UpgradeSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	installer := pip.NewInstaller(mockExecutor, "python3")

	// Without an activation environment pip runs on the fallback interpreter.
	mockExecutor.EXPECT().
		Run(gomock.Any(), []string{"python3", "-m", "pip", "install", "--upgrade", "pip"}, nil).
		Return(nil)

	require.NoError(t, installer.UpgradeSelf(context.Background(), nil))
}

func TestInstaller_UpgradeSelf_VenvInterpreter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	installer := pip.NewInstaller(mockExecutor, "python3")

	env := []string{"VIRTUAL_ENV=/work/.venv", "PATH=/work/.venv/bin"}
	want := venvInterpreter("/work/.venv")

	mockExecutor.EXPECT().
		Run(gomock.Any(), []string{want, "-m", "pip", "install", "--upgrade", "pip"}, env).
		Return(nil)

	require.NoError(t, installer.UpgradeSelf(context.Background(), env))
}

func TestInstaller_Install(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	installer := pip.NewInstaller(mockExecutor, "python3")

	reqs := []domain.Requirement{
		mustParse(t, "numpy"),
		mustParse(t, "pillow==11.0.0"),
	}

	// One invocation carries the whole install set.
	mockExecutor.EXPECT().
		Run(gomock.Any(), []string{"python3", "-m", "pip", "install", "numpy", "pillow==11.0.0"}, nil).
		Return(nil)

	require.NoError(t, installer.Install(context.Background(), nil, reqs))
}

func TestInstaller_Install_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	installer := pip.NewInstaller(mocks.NewMockExecutor(ctrl), "python3")

	err := installer.Install(context.Background(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoPackagesConfigured)
}

func TestInstaller_Install_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	installer := pip.NewInstaller(mockExecutor, "python3")

	mockExecutor.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("exit status 1"))

	err := installer.Install(context.Background(), nil, []domain.Requirement{mustParse(t, "numpy")})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPipCommandFailed)
}

func TestInstaller_Freeze(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	installer := pip.NewInstaller(mockExecutor, "python3")

	mockExecutor.EXPECT().
		Output(gomock.Any(), []string{"python3", "-m", "pip", "freeze"}, nil).
		Return("numpy==2.1.0\npillow==11.0.0\n", nil)

	m, err := installer.Freeze(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, m.Packages, 2)

	version, ok := m.Lookup("numpy")
	assert.True(t, ok)
	assert.Equal(t, "2.1.0", version)
}

func TestInstaller_Freeze_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExecutor := mocks.NewMockExecutor(ctrl)
	installer := pip.NewInstaller(mockExecutor, "python3")

	mockExecutor.EXPECT().
		Output(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("exit status 1"))

	_, err := installer.Freeze(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPipCommandFailed)
}

func mustParse(t *testing.T, spec string) domain.Requirement {
	t.Helper()
	r, err := domain.ParseRequirement(spec)
	require.NoError(t, err)
	return r
}
