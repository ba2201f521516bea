package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/cv-ranker/internal/domain"
)

type stubPublisher struct {
	bodies      [][]byte
	contentType string
	err         error
}

func (s *stubPublisher) PublishWithRetry(_ context.Context, body []byte, contentType string) error {
	if s.err != nil {
		return s.err
	}
	s.bodies = append(s.bodies, body)
	s.contentType = contentType
	return nil
}

func TestJobFinished_PublishesEvent(t *testing.T) {
	publisher := &stubPublisher{}
	notifier := New(publisher, slog.New(slog.DiscardHandler))

	completedAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	notifier.JobFinished(context.Background(), &domain.Job{
		JobID:       "job-1",
		Status:      domain.JobStatusCompleted,
		JobTitle:    "Backend Engineer",
		CVCount:     3,
		CompletedAt: &completedAt,
	})

	require.Len(t, publisher.bodies, 1)
	assert.Equal(t, "application/json", publisher.contentType)

	var event Event
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.Equal(t, "job-1", event.JobID)
	assert.Equal(t, domain.JobStatusCompleted, event.Status)
	assert.Equal(t, 3, event.CVCount)
	assert.Empty(t, event.Error)
	require.NotNil(t, event.CompletedAt)
	assert.True(t, completedAt.Equal(*event.CompletedAt))
}

func TestJobFinished_CarriesFailureReason(t *testing.T) {
	publisher := &stubPublisher{}
	notifier := New(publisher, slog.New(slog.DiscardHandler))

	notifier.JobFinished(context.Background(), &domain.Job{
		JobID:        "job-1",
		Status:       domain.JobStatusFailed,
		ErrorMessage: "job description analysis failed: model unavailable",
	})

	require.Len(t, publisher.bodies, 1)

	var event Event
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.Equal(t, domain.JobStatusFailed, event.Status)
	assert.Contains(t, event.Error, "model unavailable")
}

func TestJobFinished_PublishFailureIsSwallowed(t *testing.T) {
	publisher := &stubPublisher{err: errors.New("broker unavailable")}
	notifier := New(publisher, slog.New(slog.DiscardHandler))

	assert.NotPanics(t, func() {
		notifier.JobFinished(context.Background(), &domain.Job{JobID: "job-1"})
	})
}
