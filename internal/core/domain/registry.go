package domain

import (
	"slices"

	"go.trai.ch/zerr"
)

// TaskInfo describes a registered task for listing.
type TaskInfo struct {
	Name        string
	Description string
}

type registryEntry struct {
	task        Task
	description string
}

// Registry maps task names to tasks. It is built once per run and then read-only.
type Registry struct {
	entries map[string]registryEntry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Add registers task under its own name.
func (r *Registry) Add(task Task, description string) error {
	name := task.Name()
	if _, exists := r.entries[name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task", name)
	}
	r.entries[name] = registryEntry{task: task, description: description}
	return nil
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name string) (Task, error) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, zerr.With(ErrTaskNotFound, "task", name)
	}
	return entry.task, nil
}

// Names returns the registered task names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Infos returns name and description of every task, sorted by name.
func (r *Registry) Infos() []TaskInfo {
	names := r.Names()
	infos := make([]TaskInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, TaskInfo{Name: name, Description: r.entries[name].description})
	}
	return infos
}
