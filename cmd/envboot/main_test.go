package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.sortd.dev/envboot/internal/adapters/telemetry"
	"go.sortd.dev/envboot/internal/app"
	"go.sortd.dev/envboot/internal/core/ports"
	"go.sortd.dev/envboot/internal/core/ports/mocks"
	"go.sortd.dev/envboot/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

func newTestComponents(t *testing.T, ctrl *gomock.Controller) (*app.Components, *mocks.MockConfigLoader) {
	t.Helper()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	mockStore := mocks.NewMockManifestStore(ctrl)
	storeFor := func(_ string) (ports.ManifestStore, error) {
		return mockStore, nil
	}

	application := app.New(
		mockLoader,
		mocks.NewMockEnvironmentFactory(ctrl),
		mocks.NewMockPackageInstaller(ctrl),
		runner.NewRunner(telemetry.NewNoOp(), mockLogger),
		storeFor,
		mockLogger,
	)

	return &app.Components{
		App:       application,
		Logger:    mockLogger,
		Telemetry: telemetry.NewNoOp(),
	}, mockLoader
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	components, _ := newTestComponents(t, ctrl)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	components, mockLoader := newTestComponents(t, ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).Return(nil, errors.New("load failed"))

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"freeze"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
}
