// Package runner implements the sequential setup pipeline.
package runner

import (
	"context"
	"errors"
	"sync"

	"go.sortd.dev/envboot/internal/core/domain"
	"go.sortd.dev/envboot/internal/core/ports"
	"go.trai.ch/zerr"
)

// StepStatus represents the status of a pipeline step.
type StepStatus string

const (
	// StatusPending indicates the step is waiting to be executed.
	StatusPending StepStatus = "Pending"
	// StatusRunning indicates the step is currently executing.
	StatusRunning StepStatus = "Running"
	// StatusCompleted indicates the step has finished successfully.
	StatusCompleted StepStatus = "Completed"
	// StatusFailed indicates the step execution failed.
	StatusFailed StepStatus = "Failed"
	// StatusSkipped indicates the step never ran because the run was cancelled.
	StatusSkipped StepStatus = "Skipped"
)

// StepFunc is the work performed by a single pipeline step.
type StepFunc func(ctx context.Context) error

// Step is one named unit of the setup sequence.
type Step struct {
	Name string
	Run  StepFunc
}

// Runner executes steps in strict sequence. A failing step is recorded and
// logged but never stops the pipeline; the aggregate error reports every
// failure once all steps have run. Only context cancellation cuts the
// sequence short.
type Runner struct {
	telemetry ports.Telemetry
	logger    ports.Logger

	mu         sync.RWMutex
	stepStatus map[string]StepStatus
}

// NewRunner creates a new Runner.
func NewRunner(telemetry ports.Telemetry, logger ports.Logger) *Runner {
	return &Runner{
		telemetry:  telemetry,
		logger:     logger,
		stepStatus: make(map[string]StepStatus),
	}
}

// Run executes all steps in order.
func (r *Runner) Run(ctx context.Context, steps []Step) error {
	r.mu.Lock()
	r.stepStatus = make(map[string]StepStatus, len(steps))
	for _, step := range steps {
		r.stepStatus[step.Name] = StatusPending
	}
	r.mu.Unlock()

	var failures []error
	for _, step := range steps {
		if ctx.Err() != nil {
			r.setStatus(step.Name, StatusSkipped)
			continue
		}

		r.setStatus(step.Name, StatusRunning)

		stepCtx, vertex := r.telemetry.Record(ctx, step.Name)
		err := step.Run(stepCtx)
		vertex.Complete(err)

		if err != nil {
			r.setStatus(step.Name, StatusFailed)
			r.logger.Error(zerr.With(err, "step", step.Name))
			failures = append(failures, zerr.With(err, "step", step.Name))
			continue
		}
		r.setStatus(step.Name, StatusCompleted)
	}

	if err := ctx.Err(); err != nil {
		failures = append(failures, err)
	}
	if len(failures) > 0 {
		// Individual failures were logged as they happened; the aggregate
		// keeps errors.Is(err, domain.ErrSetupIncomplete) working for the
		// exit-code decision in main.
		incomplete := zerr.With(domain.ErrSetupIncomplete, "failed_steps", len(failures))
		return errors.Join(incomplete, errors.Join(failures...))
	}
	return nil
}

// Status reports the recorded status of a step. Unknown steps are Pending.
func (r *Runner) Status(name string) StepStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if status, ok := r.stepStatus[name]; ok {
		return status
	}
	return StatusPending
}

func (r *Runner) setStatus(name string, status StepStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stepStatus[name] = status
}
