// Package jobstore provides the key/value store mapping job ids to job
// records. Semantics are last-write-wins: the coordinator is the only writer
// for a given job id, so no optimistic concurrency is needed.
package jobstore

import (
	"context"

	"github.com/hireloop/cv-ranker/internal/domain"
)

// Store is the job state store abstraction. Get returns
// domain.ErrJobNotFound for unknown ids.
type Store interface {
	Set(ctx context.Context, job *domain.Job) error
	Get(ctx context.Context, jobID string) (*domain.Job, error)
}
