package runner

import "maps"

// GetTaskStatusMap returns a copy of the internal task status map.
// This is exported for testing purposes only.
func (r *Runner) GetTaskStatusMap() map[string]TaskStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.taskStatus)
}
