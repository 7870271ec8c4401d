// Package runner executes registered tasks and tracks their status.
package runner

import (
	"context"
	"sync"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
)

// TaskStatus represents the status of a task.
type TaskStatus string

const (
	// StatusPending indicates the task has not run yet.
	StatusPending TaskStatus = "Pending"
	// StatusRunning indicates the task is currently executing.
	StatusRunning TaskStatus = "Running"
	// StatusCompleted indicates the last invocation finished successfully.
	StatusCompleted TaskStatus = "Completed"
	// StatusFailed indicates the last invocation failed.
	StatusFailed TaskStatus = "Failed"
)

// Runner resolves task names and runs them, one span per task invocation.
type Runner struct {
	tracer ports.Tracer

	mu         sync.RWMutex
	taskStatus map[string]TaskStatus
}

// NewRunner creates a new Runner reporting spans to tracer.
func NewRunner(tracer ports.Tracer) *Runner {
	return &Runner{
		tracer:     tracer,
		taskStatus: make(map[string]TaskStatus),
	}
}

// Trace decorates task so every invocation is traced and its status recorded.
// Composite tasks are traced like leaves when their members are traced too.
func (r *Runner) Trace(task domain.Task) domain.Task {
	r.updateStatus(task.Name(), StatusPending)
	return &tracedTask{Task: task, runner: r}
}

// Run looks up every name in reg and runs the tasks one after another.
// Unknown names fail before anything runs.
func (r *Runner) Run(ctx context.Context, reg *domain.Registry, names []string) error {
	tasks := make([]domain.Task, 0, len(names))
	for _, name := range names {
		task, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		tasks = append(tasks, task)
	}

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := domain.Start(ctx, task).Wait(); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) updateStatus(name string, status TaskStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskStatus[name] = status
}

type tracedTask struct {
	domain.Task
	runner *Runner
}

func (t *tracedTask) Run(ctx context.Context) error {
	name := t.Name()
	ctx, span := t.runner.tracer.Start(ctx, name)
	defer span.End()

	t.runner.updateStatus(name, StatusRunning)
	if err := t.Task.Run(ctx); err != nil {
		span.RecordError(err)
		t.runner.updateStatus(name, StatusFailed)
		return err
	}
	t.runner.updateStatus(name, StatusCompleted)
	return nil
}
