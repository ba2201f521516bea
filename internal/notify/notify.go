// Package notify publishes terminal job transitions to a message exchange so
// downstream systems can react without polling. Publishing is best effort:
// failures are logged and never affect the job outcome.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hireloop/cv-ranker/internal/domain"
)

// Publisher is the message transport contract, satisfied by the RabbitMQ
// client.
type Publisher interface {
	PublishWithRetry(ctx context.Context, body []byte, contentType string) error
}

// Event is the payload published on every terminal job transition.
type Event struct {
	JobID       string     `json:"job_id"`
	Status      string     `json:"status"`
	JobTitle    string     `json:"job_title,omitempty"`
	CVCount     int        `json:"cv_count"`
	Error       string     `json:"error,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Notifier publishes job completion events.
type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
}

// New creates a notifier.
func New(publisher Publisher, logger *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		logger:    logger,
	}
}

// JobFinished publishes the terminal state of a job.
func (n *Notifier) JobFinished(ctx context.Context, job *domain.Job) {
	event := Event{
		JobID:       job.JobID,
		Status:      job.Status,
		JobTitle:    job.JobTitle,
		CVCount:     job.CVCount,
		Error:       job.ErrorMessage,
		CompletedAt: job.CompletedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("Failed to marshal job event",
			slog.String("job_id", job.JobID),
			slog.Any("error", err),
		)
		return
	}

	if err := n.publisher.PublishWithRetry(ctx, body, "application/json"); err != nil {
		n.logger.Warn("Failed to publish job event",
			slog.String("job_id", job.JobID),
			slog.String("status", job.Status),
			slog.Any("error", err),
		)
		return
	}

	n.logger.Debug("Job event published",
		slog.String("job_id", job.JobID),
		slog.String("status", job.Status),
	)
}
