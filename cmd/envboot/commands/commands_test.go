package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.sortd.dev/envboot/cmd/envboot/commands"
	"go.sortd.dev/envboot/internal/app"
	"go.sortd.dev/envboot/internal/build"
	"go.sortd.dev/envboot/internal/core/domain"
	"go.sortd.dev/envboot/internal/engine/runner"
)

type mockApp struct {
	setupFunc  func(ctx context.Context) (*app.Result, error)
	freezeFunc func(ctx context.Context) (*app.Result, error)
	statuses   map[string]runner.StepStatus
	configPath string
}

func (m *mockApp) Setup(ctx context.Context) (*app.Result, error) {
	if m.setupFunc != nil {
		return m.setupFunc(ctx)
	}
	return &app.Result{}, nil
}

func (m *mockApp) Freeze(ctx context.Context) (*app.Result, error) {
	if m.freezeFunc != nil {
		return m.freezeFunc(ctx)
	}
	return &app.Result{}, nil
}

func (m *mockApp) StepStatus(name string) runner.StepStatus {
	if status, ok := m.statuses[name]; ok {
		return status
	}
	return runner.StatusPending
}

func TestCommands_Setup(t *testing.T) {
	t.Run("prints step summary and manifest line", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")

		mock := &mockApp{
			setupFunc: func(context.Context) (*app.Result, error) {
				return &app.Result{
					Export: domain.ExportInfo{
						ManifestPath: "requirements.txt",
						PackageCount: 6,
					},
					Changed: true,
				}, nil
			},
			statuses: map[string]runner.StepStatus{
				app.StepActivate: runner.StatusCompleted,
				app.StepUpgrade:  runner.StatusCompleted,
				app.StepInstall:  runner.StatusCompleted,
				app.StepExport:   runner.StatusCompleted,
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"setup", "--skip-pause"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, "Starting environment setup")
		assert.Contains(t, out, app.StepInstall)
		assert.Contains(t, out, "requirements.txt: 6 packages (updated)")
		assert.Contains(t, out, "Setup finished")
	})

	t.Run("returns error but still prints summary", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")

		wantErr := errors.New("setup finished with failed steps")
		mock := &mockApp{
			setupFunc: func(context.Context) (*app.Result, error) {
				return &app.Result{}, wantErr
			},
			statuses: map[string]runner.StepStatus{
				app.StepActivate: runner.StatusFailed,
				app.StepUpgrade:  runner.StatusCompleted,
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"setup", "--skip-pause"})

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Equal(t, wantErr, err)
		assert.Contains(t, buf.String(), app.StepActivate)
		assert.Contains(t, buf.String(), "Setup finished")
	})
}

func TestCommands_Freeze(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	mock := &mockApp{
		freezeFunc: func(context.Context) (*app.Result, error) {
			return &app.Result{}, errors.New("freeze failed")
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"freeze"})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "freeze failed")
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), build.Version)
}

func TestCommands_ConfigHook(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)
	cli.SetConfigHook(func(path string) { mock.configPath = path })

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version", "--config", "custom.yaml"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "custom.yaml", mock.configPath)
}
