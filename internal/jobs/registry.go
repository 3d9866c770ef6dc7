package jobs

import (
	"errors"
	"sync"
)

var ErrDuplicateJobID = errors.New("duplicate job id")

// Registry is the in-process job table. Entries live as long as the process.
type Registry struct {
	mu    sync.RWMutex
	jobs  map[string]*Job
	order []*Job
}

func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*Job)}
}

func (r *Registry) Add(job *Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID()]; ok {
		return ErrDuplicateJobID
	}
	r.jobs[job.ID()] = job
	r.order = append(r.order, job)
	return nil
}

func (r *Registry) Get(id string) (*Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	return job, ok
}

// List returns the jobs in submission order.
func (r *Registry) List() []*Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Job, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
