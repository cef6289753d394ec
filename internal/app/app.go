// Package app implements the application layer for envboot.
package app

import (
	"context"

	"go.sortd.dev/envboot/internal/adapters/config"
	"go.sortd.dev/envboot/internal/adapters/manifest"
	"go.sortd.dev/envboot/internal/core/domain"
	"go.sortd.dev/envboot/internal/core/ports"
	"go.sortd.dev/envboot/internal/engine/runner"
	"go.trai.ch/zerr"
)

// Step names as shown in progress output.
const (
	StepActivate = "activate environment"
	StepUpgrade  = "upgrade pip"
	StepInstall  = "install packages"
	StepExport   = "export manifest"
)

// Result summarizes a finished run for the CLI layer.
type Result struct {
	Setup   *domain.Setup
	Export  domain.ExportInfo
	Changed bool
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	envFactory   ports.EnvironmentFactory
	installer    ports.PackageInstaller
	runner       *runner.Runner
	storeFor     manifest.Factory
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	envFactory ports.EnvironmentFactory,
	installer ports.PackageInstaller,
	run *runner.Runner,
	storeFor manifest.Factory,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		envFactory:   envFactory,
		installer:    installer,
		runner:       run,
		storeFor:     storeFor,
		logger:       logger,
	}
}

// SetConfigPath points the app at a different config file. Called by the CLI
// layer when the --config flag is set.
func (a *App) SetConfigPath(path string) {
	a.configLoader = &config.FileConfigLoader{Filename: path}
}

// Setup executes the full bootstrap sequence: activate (creating the venv if
// needed), upgrade pip, install the package set, and export the manifest.
//
// Every step runs regardless of earlier failures. When activation fails the
// remaining steps run without an activation environment and therefore against
// the fallback interpreter, which is the observable behavior of the original
// setup script. The Result is valid even when the returned error is not nil.
func (a *App) Setup(ctx context.Context) (*Result, error) {
	setup, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	store, err := a.storeFor(setup.ManifestPath.String())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open manifest store")
	}

	result := &Result{Setup: setup}

	// Captured by the activation step; stays nil when activation fails so
	// later steps degrade rather than abort.
	var env []string

	steps := []runner.Step{
		{
			Name: StepActivate,
			Run: func(ctx context.Context) error {
				activation, err := a.envFactory.EnsureEnvironment(ctx, setup.Python.String(), setup.VenvDir.String())
				if err != nil {
					return err
				}
				env = activation
				return nil
			},
		},
		{
			Name: StepUpgrade,
			Run: func(ctx context.Context) error {
				return a.installer.UpgradeSelf(ctx, env)
			},
		},
		{
			Name: StepInstall,
			Run: func(ctx context.Context) error {
				return a.installer.Install(ctx, env, setup.Packages)
			},
		},
		{
			Name: StepExport,
			Run: func(ctx context.Context) error {
				return a.export(ctx, store, env, result)
			},
		},
	}

	runErr := a.runner.Run(ctx, steps)
	return result, runErr
}

// Freeze runs only the export step against the configured environment.
func (a *App) Freeze(ctx context.Context) (*Result, error) {
	setup, err := a.configLoader.Load(".")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	store, err := a.storeFor(setup.ManifestPath.String())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open manifest store")
	}

	result := &Result{Setup: setup}

	env, err := a.envFactory.EnsureEnvironment(ctx, setup.Python.String(), setup.VenvDir.String())
	if err != nil {
		// Export still happens; it then reflects the fallback interpreter's
		// installed set, possibly empty.
		a.logger.Warn("environment unavailable, freezing without activation: " + err.Error())
		env = nil
	}

	if err := a.export(ctx, store, env, result); err != nil {
		return result, err
	}
	return result, nil
}

func (a *App) export(ctx context.Context, store ports.ManifestStore, env []string, result *Result) error {
	m, err := a.installer.Freeze(ctx, env)
	if err != nil {
		return err
	}

	info, changed, err := store.Write(m)
	if err != nil {
		return err
	}

	result.Export = info
	result.Changed = changed
	return nil
}

// StepStatus exposes the runner's record for a named step.
func (a *App) StepStatus(name string) runner.StepStatus {
	return a.runner.Status(name)
}
