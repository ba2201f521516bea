package domain

import "time"

// Job status constants
const (
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Job is the unit of work tracked by the job store. It is created once at
// submission time and mutated exactly twice: processing -> completed or
// processing -> failed.
type Job struct {
	JobID        string           `json:"job_id" db:"job_id"`
	Status       string           `json:"status" db:"status"`
	JobTitle     string           `json:"job_title" db:"job_title"`
	Company      string           `json:"company" db:"company"`
	CVCount      int              `json:"cv_count" db:"cv_count"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
	Results      *RankingResults  `json:"results,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty" db:"error_message"`
}

// CVRef points at an already-saved candidate file to be analyzed.
type CVRef struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// RankingResults is the terminal payload of a completed job.
type RankingResults struct {
	JDID                  string           `json:"jd_id"`
	JobTitle              string           `json:"job_title"`
	TotalCVsSubmitted     int              `json:"total_cvs_submitted"`
	TotalCVsParsed        int              `json:"total_cvs_parsed"`
	TotalCandidatesRanked int              `json:"total_candidates_ranked"`
	RankedCandidates      []CandidateScore `json:"ranked_candidates"`
	TierDistribution      map[string]int   `json:"tier_distribution"`
	CompletedAt           time.Time        `json:"completed_at"`
}
