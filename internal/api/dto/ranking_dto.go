package dto

type CVRefDTO struct {
	Path string `json:"path" binding:"required"`
	Type string `json:"type"`
}

type CreateRankingJobRequest struct {
	JobDescription string     `json:"job_description"`
	JobTitle       string     `json:"job_title"`
	Company        string     `json:"company"`
	CVRefs         []CVRefDTO `json:"cv_refs"`
}

type CreateRankingJobResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	CVCount int    `json:"cv_count"`
	Message string `json:"message"`
}

type JobStatusResponse struct {
	JobID       string `json:"job_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
	CVCount     int    `json:"cv_count"`
	Error       string `json:"error,omitempty"`
}

type CandidateResultDTO struct {
	Rank            int      `json:"rank"`
	CandidateName   string   `json:"candidate_name"`
	Tier            string   `json:"tier"`
	TotalScore      float64  `json:"total_score"`
	SkillsScore     float64  `json:"skills_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Explanation     string   `json:"explanation"`
}

type RankingResultsResponse struct {
	JobID            string               `json:"job_id"`
	JobTitle         string               `json:"job_title"`
	TotalCandidates  int                  `json:"total_candidates"`
	TierDistribution map[string]int       `json:"tier_distribution"`
	Candidates       []CandidateResultDTO `json:"candidates"`
	CompletedAt      string               `json:"completed_at"`
}
