package jobstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hireloop/cv-ranker/internal/domain"
)

// PostgresStore is a Store backed by a ranking_jobs table. Results are
// stored as JSONB; Set upserts so the last writer for a job id wins.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a Store over an existing database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Set upserts the job record.
func (s *PostgresStore) Set(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO ranking_jobs (
			job_id, status, job_title, company, cv_count,
			created_at, completed_at, results, error_message
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
		ON CONFLICT (job_id) DO UPDATE SET
			status = EXCLUDED.status,
			completed_at = EXCLUDED.completed_at,
			results = EXCLUDED.results,
			error_message = EXCLUDED.error_message
	`

	var resultsJSON []byte
	if job.Results != nil {
		var err error
		resultsJSON, err = json.Marshal(job.Results)
		if err != nil {
			return fmt.Errorf("failed to marshal job results: %w", err)
		}
	}

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.JobID,
		job.Status,
		job.JobTitle,
		job.Company,
		job.CVCount,
		job.CreatedAt,
		job.CompletedAt,
		resultsJSON,
		job.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job: %w", err)
	}

	return nil
}

// Get loads the job record or returns domain.ErrJobNotFound.
func (s *PostgresStore) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `
		SELECT job_id, status, job_title, company, cv_count,
		       created_at, completed_at, results, error_message
		FROM ranking_jobs
		WHERE job_id = $1
	`

	var (
		job         domain.Job
		resultsJSON []byte
		errMsg      sql.NullString
	)

	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.JobID,
		&job.Status,
		&job.JobTitle,
		&job.Company,
		&job.CVCount,
		&job.CreatedAt,
		&job.CompletedAt,
		&resultsJSON,
		&errMsg,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if errMsg.Valid {
		job.ErrorMessage = errMsg.String
	}

	if len(resultsJSON) > 0 {
		var results domain.RankingResults
		if err := json.Unmarshal(resultsJSON, &results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal job results: %w", err)
		}
		job.Results = &results
	}

	return &job, nil
}
