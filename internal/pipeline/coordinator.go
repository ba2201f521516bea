// Package pipeline coordinates the ranking workflow for one job: JD
// analysis, parallel CV parsing, matching and scoring, ranking, and the
// terminal state transition.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hireloop/cv-ranker/internal/domain"
	"github.com/hireloop/cv-ranker/internal/engine/score"
	"github.com/hireloop/cv-ranker/internal/jobstore"
)

const (
	maxCVsPerJob          = 100
	defaultMaxConcurrency = 8
)

// JDAnalyzer structures a job description and produces its embeddings.
type JDAnalyzer interface {
	Analyze(ctx context.Context, jdText, jobTitle, company string) (*domain.JDProfile, *domain.JDEmbeddings, error)
}

// CVParser extracts and structures one CV.
type CVParser interface {
	Parse(ctx context.Context, ref domain.CVRef) (*domain.CandidateProfile, error)
}

// Matcher evaluates one candidate against the analyzed JD.
type Matcher interface {
	Match(ctx context.Context, cv *domain.CandidateProfile, jd *domain.JDProfile, embeddings *domain.JDEmbeddings) *domain.MatchResult
}

// Ranker produces the final ordered candidate list.
type Ranker interface {
	Rank(candidates []domain.CandidateScore, jd *domain.JDProfile) *domain.RankedResult
}

// Notifier publishes terminal job transitions. Implementations must be
// best effort; the coordinator ignores their outcome.
type Notifier interface {
	JobFinished(ctx context.Context, job *domain.Job)
}

// SubmitRequest is a validated-on-entry ranking job submission. CV refs
// point at files already on disk.
type SubmitRequest struct {
	JobDescription string
	JobTitle       string
	Company        string
	CVRefs         []domain.CVRef
}

// Config tunes the coordinator.
type Config struct {
	// MaxConcurrentCVs bounds the CV parse and match/score fan-out.
	MaxConcurrentCVs int
	// CleanupFiles removes CV files after the job reaches a terminal
	// state. Removal failures are logged, never fatal.
	CleanupFiles bool
}

// Coordinator owns the job lifecycle. Exactly one Run executes per job id,
// so job store writes never race.
type Coordinator struct {
	store      jobstore.Store
	jdAnalyzer JDAnalyzer
	cvParser   CVParser
	matcher    Matcher
	ranker     Ranker
	notifier   Notifier
	cfg        Config
	logger     *slog.Logger
}

// New creates a job coordinator. notifier may be nil.
func New(store jobstore.Store, jdAnalyzer JDAnalyzer, cvParser CVParser, matcher Matcher, ranker Ranker, notifier Notifier, cfg Config, logger *slog.Logger) *Coordinator {
	if cfg.MaxConcurrentCVs < 1 {
		cfg.MaxConcurrentCVs = defaultMaxConcurrency
	}
	return &Coordinator{
		store:      store,
		jdAnalyzer: jdAnalyzer,
		cvParser:   cvParser,
		matcher:    matcher,
		ranker:     ranker,
		notifier:   notifier,
		cfg:        cfg,
		logger:     logger,
	}
}

// Submit validates the request, persists the processing job record and
// starts the workflow in the background. The returned job is immediately
// visible through the store.
func (c *Coordinator) Submit(ctx context.Context, req *SubmitRequest) (*domain.Job, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, domain.ErrJobDescriptionRequired
	}
	if len(req.CVRefs) == 0 {
		return nil, domain.ErrNoCVRefs
	}
	if len(req.CVRefs) > maxCVsPerJob {
		return nil, domain.ErrTooManyCVs
	}

	job := &domain.Job{
		JobID:     uuid.New().String(),
		Status:    domain.JobStatusProcessing,
		JobTitle:  req.JobTitle,
		Company:   req.Company,
		CVCount:   len(req.CVRefs),
		CreatedAt: time.Now().UTC(),
	}

	if err := c.store.Set(ctx, job); err != nil {
		return nil, err
	}

	c.logger.Info("Ranking job submitted",
		slog.String("job_id", job.JobID),
		slog.Int("cv_count", job.CVCount),
	)

	go c.Run(context.WithoutCancel(ctx), job, req)

	return job, nil
}

// Run executes the full workflow for a submitted job and writes the
// terminal state. It is exported so tests can drive it synchronously.
func (c *Coordinator) Run(ctx context.Context, job *domain.Job, req *SubmitRequest) {
	c.logger.Info("Starting ranking workflow",
		slog.String("job_id", job.JobID),
		slog.Int("cv_count", len(req.CVRefs)),
	)

	jd, embeddings, err := c.jdAnalyzer.Analyze(ctx, req.JobDescription, req.JobTitle, req.Company)
	if err != nil {
		c.finish(ctx, job, req, nil, domain.NewFatalError("job description analysis", err))
		return
	}

	profiles := c.parseCVs(ctx, job.JobID, req.CVRefs)

	parsed := make([]*domain.CandidateProfile, 0, len(profiles))
	for _, profile := range profiles {
		if profile != nil {
			parsed = append(parsed, profile)
		}
	}
	if failed := len(profiles) - len(parsed); failed > 0 {
		c.logger.Warn("Some CVs failed to parse",
			slog.String("job_id", job.JobID),
			slog.Int("failed", failed),
		)
	}

	candidates := c.matchAndScore(ctx, parsed, jd, embeddings)

	ranked := c.ranker.Rank(candidates, jd)

	results := &domain.RankingResults{
		JDID:                  jd.JDID,
		JobTitle:              jd.JobTitle,
		TotalCVsSubmitted:     len(req.CVRefs),
		TotalCVsParsed:        len(parsed),
		TotalCandidatesRanked: len(ranked.Candidates),
		RankedCandidates:      ranked.Candidates,
		TierDistribution:      ranked.TierDistribution,
		CompletedAt:           time.Now().UTC(),
	}

	c.finish(ctx, job, req, results, nil)
}

// parseCVs fans the CV refs out over the bounded pool. The result slice is
// index-aligned with the refs; failed parses leave a nil slot.
func (c *Coordinator) parseCVs(ctx context.Context, jobID string, refs []domain.CVRef) []*domain.CandidateProfile {
	profiles := make([]*domain.CandidateProfile, len(refs))

	forEachIndex(ctx, len(refs), c.cfg.MaxConcurrentCVs, func(ctx context.Context, i int) {
		profile, err := c.cvParser.Parse(ctx, refs[i])
		if err != nil {
			c.logger.Warn("CV parse failed",
				slog.String("job_id", jobID),
				slog.String("path", refs[i].Path),
				slog.Any("error", err),
			)
			return
		}
		profiles[i] = profile
	})

	return profiles
}

// matchAndScore matches and scores every parsed candidate on the bounded
// pool, preserving input order.
func (c *Coordinator) matchAndScore(ctx context.Context, parsed []*domain.CandidateProfile, jd *domain.JDProfile, embeddings *domain.JDEmbeddings) []domain.CandidateScore {
	candidates := make([]domain.CandidateScore, len(parsed))

	forEachIndex(ctx, len(parsed), c.cfg.MaxConcurrentCVs, func(ctx context.Context, i int) {
		match := c.matcher.Match(ctx, parsed[i], jd, embeddings)
		candidates[i] = *score.Score(parsed[i], jd, match)
	})

	return candidates
}

// finish writes the terminal job state, cleans up CV files and notifies.
func (c *Coordinator) finish(ctx context.Context, job *domain.Job, req *SubmitRequest, results *domain.RankingResults, workflowErr error) {
	now := time.Now().UTC()
	job.CompletedAt = &now

	if workflowErr != nil {
		job.Status = domain.JobStatusFailed
		job.ErrorMessage = workflowErr.Error()
		c.logger.Error("Ranking job failed",
			slog.String("job_id", job.JobID),
			slog.Any("error", workflowErr),
		)
	} else {
		job.Status = domain.JobStatusCompleted
		job.Results = results
		c.logger.Info("Ranking job completed",
			slog.String("job_id", job.JobID),
			slog.Int("candidates_ranked", results.TotalCandidatesRanked),
		)
	}

	if err := c.store.Set(ctx, job); err != nil {
		c.logger.Error("Failed to persist terminal job state",
			slog.String("job_id", job.JobID),
			slog.Any("error", err),
		)
	}

	if c.cfg.CleanupFiles {
		c.cleanupFiles(job.JobID, req.CVRefs)
	}

	if c.notifier != nil {
		c.notifier.JobFinished(ctx, job)
	}
}

func (c *Coordinator) cleanupFiles(jobID string, refs []domain.CVRef) {
	for _, ref := range refs {
		if err := os.Remove(ref.Path); err != nil {
			c.logger.Warn("Could not delete CV file",
				slog.String("job_id", jobID),
				slog.String("path", ref.Path),
				slog.Any("error", err),
			)
		}
	}
}
