package types

import "time"

// TaskResult holds what one worker did to its directory.
type TaskResult struct {
	Dir string `json:"dir" yaml:"dir"`

	// Compiled lists sources whose binary was relocated next to them and, when
	// sources are deleted, whose source is gone
	Compiled []string `json:"compiled" yaml:"compiled"`

	// Skipped lists sources exempted by an escape or a skip marker
	Skipped []string `json:"skipped" yaml:"skipped"`

	// Missing lists sources the toolchain accepted but produced no binary for
	Missing []string `json:"missing" yaml:"missing"`

	// Failed is the worker's error list, in compilation order
	Failed []string `json:"failed" yaml:"failed"`

	// Removed lists files deleted by the worker (stale binaries, sources)
	Removed []string `json:"removed" yaml:"removed"`

	// Err is set when the worker could not process its directory at all
	Err error `json:"-" yaml:"-"`

	// Error mirrors Err for serialization
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// OK reports whether the worker finished without any failure
func (r *TaskResult) OK() bool {
	return r.Err == nil && len(r.Failed) == 0
}

// Report aggregates the results of every worker of one invocation.
type Report struct {
	RunID      string        `json:"runId" yaml:"runId"`
	Operation  string        `json:"operation" yaml:"operation"`
	StartedAt  time.Time     `json:"startedAt" yaml:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt" yaml:"finishedAt"`
	Tasks      []*TaskResult `json:"tasks" yaml:"tasks"`
}

// Failures returns the failed files of all workers, in task order
func (r *Report) Failures() []string {
	var out []string
	for _, t := range r.Tasks {
		out = append(out, t.Failed...)
	}
	return out
}

// WorkerErrors returns the worker-level errors of the run
func (r *Report) WorkerErrors() []error {
	var out []error
	for _, t := range r.Tasks {
		if t.Err != nil {
			out = append(out, t.Err)
		}
	}
	return out
}

// Count sums a per-task list across the report
func (r *Report) Count(pick func(*TaskResult) []string) int {
	n := 0
	for _, t := range r.Tasks {
		n += len(pick(t))
	}
	return n
}

// OK reports whether every worker finished without failures
func (r *Report) OK() bool {
	for _, t := range r.Tasks {
		if !t.OK() {
			return false
		}
	}
	return true
}
