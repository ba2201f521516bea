package jobstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/cv-ranker/internal/domain"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	job := &domain.Job{
		JobID:     "job-1",
		Status:    domain.JobStatusProcessing,
		JobTitle:  "Backend Engineer",
		CVCount:   3,
		CreatedAt: time.Now(),
	}

	require.NoError(t, store.Set(ctx, job))

	got, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusProcessing, got.Status)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, 3, got.CVCount)
}

func TestMemoryStore_GetUnknownJob(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
	assert.Nil(t, got)
}

func TestMemoryStore_LastWriteWins(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	job := &domain.Job{JobID: "job-1", Status: domain.JobStatusProcessing}
	require.NoError(t, store.Set(ctx, job))

	now := time.Now()
	job.Status = domain.JobStatusCompleted
	job.CompletedAt = &now
	job.Results = &domain.RankingResults{TotalCandidatesRanked: 2}
	require.NoError(t, store.Set(ctx, job))

	got, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusCompleted, got.Status)
	require.NotNil(t, got.Results)
	assert.Equal(t, 2, got.Results.TotalCandidatesRanked)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &domain.Job{JobID: "job-1", Status: domain.JobStatusProcessing}))

	got, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	got.Status = domain.JobStatusFailed

	again, err := store.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusProcessing, again.Status)
}
