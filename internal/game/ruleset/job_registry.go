package ruleset

import (
	"fmt"
	"sort"
)

// JobRegistry indexes parsed jobs by name.
type JobRegistry struct {
	jobs map[string]*Job
}

// NewJobRegistry returns an empty JobRegistry.
//
// Postcondition: Returns a non-nil *JobRegistry ready to accept registrations.
func NewJobRegistry() *JobRegistry {
	return &JobRegistry{jobs: make(map[string]*Job)}
}

// Register adds a Job to the registry under name.
//
// Precondition: job must be non-nil and name non-empty.
// Postcondition: Job(name) returns job; returns an error wrapping
// ErrDuplicateKey if name is already registered.
func (r *JobRegistry) Register(name string, job *Job) error {
	if job == nil {
		panic("JobRegistry.Register: precondition violated: job must be non-nil")
	}
	if name == "" {
		panic("JobRegistry.Register: precondition violated: name must be non-empty")
	}
	if _, exists := r.jobs[name]; exists {
		return fmt.Errorf("ruleset: JobRegistry.Register: job %q: %w", name, ErrDuplicateKey)
	}
	r.jobs[name] = job
	return nil
}

// Job returns the Job registered under name.
//
// Postcondition: Returns the registered Job and true, or nil and false if not found.
func (r *JobRegistry) Job(name string) (*Job, bool) {
	j, ok := r.jobs[name]
	return j, ok
}

// Len returns the number of registered jobs.
func (r *JobRegistry) Len() int {
	return len(r.jobs)
}

// Names returns all registered job names in sorted order.
func (r *JobRegistry) Names() []string {
	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JobsForClass returns the names of jobs that class c may take, sorted.
func (r *JobRegistry) JobsForClass(c Class) []string {
	var out []string
	for _, name := range r.Names() {
		if r.jobs[name].HasClass(c) {
			out = append(out, name)
		}
	}
	return out
}

// JobsAt returns the names of jobs available at loc, sorted.
func (r *JobRegistry) JobsAt(loc Location) []string {
	var out []string
	for _, name := range r.Names() {
		if r.jobs[name].Location == loc {
			out = append(out, name)
		}
	}
	return out
}
