package handler

import (
	"context"
	"log/slog"

	"github.com/hireloop/cv-ranker/internal/domain"
	"github.com/hireloop/cv-ranker/internal/jobstore"
	"github.com/hireloop/cv-ranker/internal/pipeline"
)

// JobSubmitter is the submission contract provided by the pipeline
// coordinator.
type JobSubmitter interface {
	Submit(ctx context.Context, req *pipeline.SubmitRequest) (*domain.Job, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Submitter JobSubmitter
	Store     jobstore.Store
}

// RankingJobHandler handles ranking-job HTTP requests
type RankingJobHandler struct {
	logger    *slog.Logger
	submitter JobSubmitter
	store     jobstore.Store
}

// NewRankingJobHandler creates a new RankingJobHandler instance
func NewRankingJobHandler(deps *Dependencies) *RankingJobHandler {
	return &RankingJobHandler{
		logger:    deps.Logger,
		submitter: deps.Submitter,
		store:     deps.Store,
	}
}
