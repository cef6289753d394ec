// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.sortd.dev/envboot/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new shell Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run executes argv with the activation environment merged on top of the
// system environment. Activation PATH entries are prepended so executables
// resolve inside the virtual environment first, the same way the environment
// manager's activate script arranges PATH.
func (e *Executor) Run(ctx context.Context, argv []string, env []string) error {
	return e.run(ctx, argv, env, nil)
}

// Output executes argv like Run but captures stdout instead of streaming it.
func (e *Executor) Output(ctx context.Context, argv []string, env []string) (string, error) {
	var buf bytes.Buffer
	err := e.run(ctx, argv, env, &buf)
	return buf.String(), err
}

func (e *Executor) run(ctx context.Context, argv []string, env []string, capture io.Writer) error {
	if len(argv) == 0 {
		return zerr.New("empty command")
	}

	name := argv[0]
	args := argv[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env)

	// Resolve the executable against the merged PATH, not the process PATH.
	// This is what makes "python" mean the venv's python after activation.
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // argv comes from the setup plan
	if len(cmd.Args) > 0 {
		// Preserve the command name as invoked.
		cmd.Args[0] = name
	}
	cmd.Env = cmdEnv

	stdout := e.stepWriter(ctx, false)
	stderr := e.stepWriter(ctx, true)
	if capture != nil {
		stdout = capture
	}

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open stdout pipe")
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start command"), "command", name)
	}

	// Pump both streams concurrently; Wait must not be called before the
	// pipes are drained.
	g := new(errgroup.Group)
	g.Go(func() error {
		_, copyErr := io.Copy(stdout, outPipe)
		return copyErr
	})
	g.Go(func() error {
		_, copyErr := io.Copy(stderr, errPipe)
		return copyErr
	})
	copyErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		failed := zerr.With(zerr.Wrap(err, "command failed"), "command", name)
		return zerr.With(failed, "exit_code", exitCode)
	}

	if copyErr != nil {
		return zerr.With(zerr.Wrap(copyErr, "failed to stream command output"), "command", name)
	}
	return nil
}

// stepWriter picks the destination for a process stream: the telemetry vertex
// attached to ctx when present, the line-buffered logger otherwise.
func (e *Executor) stepWriter(ctx context.Context, isStderr bool) io.Writer {
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		if isStderr {
			return vertex.Stderr()
		}
		return vertex.Stdout()
	}
	level := "info"
	if isStderr {
		level = "error"
	}
	return &logWriter{logger: e.logger, level: level}
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}

// resolveEnvironment merges the activation environment over the system
// environment. PATH is special-cased: activation paths are prepended.
func resolveEnvironment(sysEnv, activationEnv []string) []string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			envMap[k] = v
		}
	}

	for _, entry := range activationEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
			} else {
				envMap[k] = v
			}
		} else {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH
// entry of env rather than the process environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
