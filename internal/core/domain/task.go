package domain

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

// Task is a named unit of work. Tasks hold no state between invocations.
type Task interface {
	Name() string
	Run(ctx context.Context) error
}

// RunFunc is the body of a Func task.
type RunFunc func(ctx context.Context) error

// Func is a Task backed by a plain function.
type Func struct {
	name string
	run  RunFunc
}

// NewFunc returns a named task that calls run.
func NewFunc(name string, run RunFunc) *Func {
	return &Func{name: name, run: run}
}

// Name returns the task name.
func (f *Func) Name() string {
	return f.name
}

// Run invokes the task body.
func (f *Func) Run(ctx context.Context) error {
	if f.run == nil {
		return nil
	}
	return f.run(ctx)
}

// TaskFailure records the innermost task that failed.
// Composite tasks pass it through untouched so the name points at the leaf.
type TaskFailure struct {
	Task string
	Err  error
}

func (f *TaskFailure) Error() string {
	return fmt.Sprintf("task %q failed: %v", f.Task, f.Err)
}

func (f *TaskFailure) Unwrap() error {
	return f.Err
}

// Is reports whether target is ErrTaskExecutionFailed.
func (f *TaskFailure) Is(target error) bool {
	return target == ErrTaskExecutionFailed
}

// Completion is the completion signal of one in-flight task invocation.
type Completion struct {
	done chan struct{}
	err  error
}

// Start launches one invocation of task in its own goroutine.
func Start(ctx context.Context, task Task) *Completion {
	c := &Completion{done: make(chan struct{})}

	go func() {
		defer close(c.done)
		defer func() {
			if r := recover(); r != nil {
				c.err = &TaskFailure{
					Task: task.Name(),
					Err:  zerr.With(ErrTaskPanicked, "panic", fmt.Sprint(r)),
				}
			}
		}()

		if err := task.Run(ctx); err != nil {
			var failure *TaskFailure
			if !errors.As(err, &failure) {
				err = &TaskFailure{Task: task.Name(), Err: err}
			}
			c.err = err
		}
	}()

	return c
}

// Done is closed once the invocation has returned.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// Err returns the invocation's error. It is only meaningful after Done is closed.
func (c *Completion) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return nil
	}
}

// Wait blocks until the invocation returns and yields its error.
func (c *Completion) Wait() error {
	<-c.done
	return c.err
}

// Series returns a task running tasks one after another.
// The first failure stops the series; later tasks never start.
func Series(name string, tasks ...Task) Task {
	return NewFunc(name, func(ctx context.Context) error {
		for _, t := range tasks {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := Start(ctx, t).Wait(); err != nil {
				return err
			}
		}
		return nil
	})
}

// Parallel returns a task starting every member at once and waiting for all of them.
// Siblings keep running when one fails; all member errors are joined.
func Parallel(name string, tasks ...Task) Task {
	return NewFunc(name, func(ctx context.Context) error {
		completions := make([]*Completion, len(tasks))
		for i, t := range tasks {
			completions[i] = Start(ctx, t)
		}

		errs := make([]error, 0, len(tasks))
		for _, c := range completions {
			if err := c.Wait(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
