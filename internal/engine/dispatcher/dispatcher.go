// Package dispatcher maps file system changes to the tasks that must re-run.
package dispatcher

import (
	"context"
	"iter"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.trai.ch/press/internal/adapters/fs" //nolint:depguard // Bindings share the resolver's glob dialect
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
)

// Binding ties root-relative glob patterns to the task they trigger.
type Binding struct {
	Patterns []string
	Task     domain.Task
}

type binding struct {
	Binding
	patterns  []*fs.Pattern
	debouncer *Debouncer

	mu      sync.Mutex
	running bool
	pending bool
}

func (b *binding) match(rel string) bool {
	for _, p := range b.patterns {
		if p.Match(rel) {
			return true
		}
	}
	return false
}

// Dispatcher runs the bound tasks for incoming watch events.
// Each binding is debounced on its own and never overlaps itself: an event that
// arrives while its task runs schedules exactly one trailing run.
type Dispatcher struct {
	layout   domain.Layout
	window   time.Duration
	hasher   ports.Hasher
	logger   ports.Logger
	bindings []*binding

	mu     sync.Mutex
	hashes map[string]uint64
	closed bool
	wg     sync.WaitGroup
}

// New compiles bindings. A nil hasher disables unchanged-content filtering.
func New(
	layout domain.Layout,
	bindings []Binding,
	window time.Duration,
	hasher ports.Hasher,
	logger ports.Logger,
) (*Dispatcher, error) {
	d := &Dispatcher{
		layout: layout,
		window: window,
		hasher: hasher,
		logger: logger,
		hashes: make(map[string]uint64),
	}

	for _, b := range bindings {
		compiled := &binding{Binding: b}
		for _, raw := range b.Patterns {
			p, err := fs.CompilePattern(raw)
			if err != nil {
				return nil, err
			}
			compiled.patterns = append(compiled.patterns, p)
		}
		d.bindings = append(d.bindings, compiled)
	}

	return d, nil
}

// Match returns the bindings whose patterns match the root-relative slash path.
func (d *Dispatcher) Match(rel string) []Binding {
	var matched []Binding
	for _, b := range d.bindings {
		if b.match(rel) {
			matched = append(matched, b.Binding)
		}
	}
	return matched
}

// Serve dispatches events until the sequence ends, then waits for running tasks.
func (d *Dispatcher) Serve(ctx context.Context, events iter.Seq[ports.WatchEvent]) error {
	for _, b := range d.bindings {
		b.debouncer = NewDebouncer(d.window, func([]string) {
			d.trigger(ctx, b)
		})
	}

	for event := range events {
		if ctx.Err() != nil {
			break
		}
		d.handle(event)
	}

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	for _, b := range d.bindings {
		b.debouncer.Stop()
	}
	d.wg.Wait()

	return nil
}

func (d *Dispatcher) handle(event ports.WatchEvent) {
	rel, ok := d.relative(event.Path)
	if !ok || d.unchanged(rel, event) {
		return
	}

	for _, b := range d.bindings {
		if b.match(rel) {
			b.debouncer.Add(rel)
		}
	}
}

// relative converts an absolute event path to a root-relative slash path.
// Paths outside the root, in the build directory or in .press are rejected.
func (d *Dispatcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(d.layout.Root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	for _, dir := range []string{d.layout.Output, domain.StateDirName} {
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return "", false
		}
	}
	return rel, true
}

// unchanged reports whether a write left the file content as last dispatched.
func (d *Dispatcher) unchanged(rel string, event ports.WatchEvent) bool {
	if d.hasher == nil {
		return false
	}

	switch event.Operation {
	case ports.OpRemove, ports.OpRename:
		d.mu.Lock()
		delete(d.hashes, rel)
		d.mu.Unlock()
		return false
	case ports.OpCreate, ports.OpWrite:
	}

	hash, err := d.hasher.ComputeFileHash(event.Path)
	if err != nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	prev, seen := d.hashes[rel]
	d.hashes[rel] = hash
	return event.Operation == ports.OpWrite && seen && prev == hash
}

func (d *Dispatcher) trigger(ctx context.Context, b *binding) {
	b.mu.Lock()
	if b.running {
		b.pending = true
		b.mu.Unlock()
		return
	}
	b.running = true
	b.mu.Unlock()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		d.run(ctx, b)
	}()
}

func (d *Dispatcher) run(ctx context.Context, b *binding) {
	for {
		if err := domain.Start(ctx, b.Task).Wait(); err != nil && ctx.Err() == nil {
			d.logger.Error(err)
		}

		b.mu.Lock()
		if !b.pending || ctx.Err() != nil {
			b.running = false
			b.pending = false
			b.mu.Unlock()
			return
		}
		b.pending = false
		b.mu.Unlock()
	}
}
