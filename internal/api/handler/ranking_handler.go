package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hireloop/cv-ranker/internal/api/dto"
	"github.com/hireloop/cv-ranker/internal/domain"
	"github.com/hireloop/cv-ranker/internal/pipeline"
)

// CreateRankingJob handles POST /api/v1/ranking-jobs
// Accepts a job description plus CV references and starts ranking in the
// background.
func (h *RankingJobHandler) CreateRankingJob(c *gin.Context) {
	var req dto.CreateRankingJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	refs := make([]domain.CVRef, len(req.CVRefs))
	for i, ref := range req.CVRefs {
		refs[i] = domain.CVRef{Path: ref.Path, Type: ref.Type}
	}

	job, err := h.submitter.Submit(c.Request.Context(), &pipeline.SubmitRequest{
		JobDescription: req.JobDescription,
		JobTitle:       req.JobTitle,
		Company:        req.Company,
		CVRefs:         refs,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobDescriptionRequired),
			errors.Is(err, domain.ErrNoCVRefs),
			errors.Is(err, domain.ErrTooManyCVs):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			h.logger.Error("Failed to create ranking job", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create ranking job",
			})
		}
		return
	}

	c.JSON(http.StatusAccepted, dto.CreateRankingJobResponse{
		JobID:   job.JobID,
		Status:  job.Status,
		CVCount: job.CVCount,
		Message: fmt.Sprintf("Ranking job created with %d CVs. Processing in background.", job.CVCount),
	})
}

// GetJobStatus handles GET /api/v1/ranking-jobs/:job_id/status
func (h *RankingJobHandler) GetJobStatus(c *gin.Context) {
	jobID := c.Param("job_id")

	job, err := h.store.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}
		h.logger.Error("Failed to get job", slog.String("job_id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job",
		})
		return
	}

	resp := dto.JobStatusResponse{
		JobID:     job.JobID,
		Status:    job.Status,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
		CVCount:   job.CVCount,
		Error:     job.ErrorMessage,
	}
	if job.CompletedAt != nil {
		resp.CompletedAt = job.CompletedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}

// GetJobResults handles GET /api/v1/ranking-jobs/:job_id/results
// Optional top_n query parameter truncates the candidate list.
func (h *RankingJobHandler) GetJobResults(c *gin.Context) {
	jobID := c.Param("job_id")

	topN := 0
	if raw := c.Query("top_n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "top_n must be a positive integer",
			})
			return
		}
		topN = parsed
	}

	job, err := h.store.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Job not found",
			})
			return
		}
		h.logger.Error("Failed to get job", slog.String("job_id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job",
		})
		return
	}

	if job.Status != domain.JobStatusCompleted || job.Results == nil {
		notCompleted := &domain.NotCompletedError{Status: job.Status}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": notCompleted.Error(),
		})
		return
	}

	results := job.Results
	ranked := results.RankedCandidates
	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}

	candidates := make([]dto.CandidateResultDTO, len(ranked))
	for i, candidate := range ranked {
		candidates[i] = dto.CandidateResultDTO{
			Rank:            candidate.Rank,
			CandidateName:   candidate.CandidateName,
			Tier:            candidate.Tier,
			TotalScore:      candidate.Scores.Total,
			SkillsScore:     candidate.Scores.SkillsMatch,
			ExperienceScore: candidate.Scores.ExperienceRelevance,
			EducationScore:  candidate.Scores.EducationFit,
			Strengths:       candidate.Strengths,
			Weaknesses:      candidate.Weaknesses,
			Explanation:     candidate.Explanation,
		}
	}

	c.JSON(http.StatusOK, dto.RankingResultsResponse{
		JobID:            job.JobID,
		JobTitle:         results.JobTitle,
		TotalCandidates:  results.TotalCandidatesRanked,
		TierDistribution: results.TierDistribution,
		Candidates:       candidates,
		CompletedAt:      results.CompletedAt.Format(time.RFC3339),
	})
}
