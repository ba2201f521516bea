package jobstore

import (
	"context"
	"sync"

	"github.com/hireloop/cv-ranker/internal/domain"
)

// MemoryStore is an in-process Store backed by a map. Suitable for single
// instance deployments and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

// NewMemoryStore creates an empty in-memory job store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]domain.Job),
	}
}

// Set stores a copy of the job, overwriting any previous record.
func (s *MemoryStore) Set(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.JobID] = *job
	return nil
}

// Get returns a copy of the stored job or domain.ErrJobNotFound.
func (s *MemoryStore) Get(_ context.Context, jobID string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}
