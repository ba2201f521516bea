package domain

// Candidate tier constants
const (
	TierA = "A"
	TierB = "B"
	TierC = "C"
	TierD = "D"
)

// ScoreBreakdown holds the per-dimension scores for one candidate. All
// score values are clamped to [0,100]; Confidence is clamped to [0,1].
type ScoreBreakdown struct {
	Total               float64 `json:"total"`
	SkillsMatch         float64 `json:"skills_match"`
	ExperienceRelevance float64 `json:"experience_relevance"`
	EducationFit        float64 `json:"education_fit"`
	CareerTrajectory    float64 `json:"career_trajectory"`
	Confidence          float64 `json:"confidence"`
}

// CandidateScore is the scored, and eventually ranked, view of one candidate.
// Rank, Tier and Explanation are assigned by the ranking engine; everything
// else comes out of matching and scoring.
type CandidateScore struct {
	CandidateID   string         `json:"candidate_id"`
	CVID          string         `json:"cv_id"`
	JDID          string         `json:"jd_id"`
	CandidateName string         `json:"candidate_name"`
	Scores        ScoreBreakdown `json:"scores"`
	MatchedSkills []SkillMatch   `json:"matched_skills"`
	MissingSkills []string       `json:"missing_skills"`
	ExtraSkills   []string       `json:"extra_skills"`
	Strengths     []string       `json:"strengths"`
	Weaknesses    []string       `json:"weaknesses"`
	Rank          int            `json:"rank"`
	Tier          string         `json:"tier"`
	Explanation   string         `json:"explanation"`
}

// RankedResult is the ordered output of the ranking engine. The tier
// distribution counts always sum to len(Candidates).
type RankedResult struct {
	Candidates       []CandidateScore `json:"candidates"`
	TierDistribution map[string]int   `json:"tier_distribution"`
}
