package domain

// SkillRequirement is a JD-declared skill with an importance weight (0-1).
type SkillRequirement struct {
	Skill  string  `json:"skill"`
	Weight float64 `json:"weight"`
}

// Requirements holds the structured hiring requirements extracted from a JD.
type Requirements struct {
	MustHaveSkills     []SkillRequirement `json:"must_have_skills"`
	NiceToHaveSkills   []SkillRequirement `json:"nice_to_have_skills"`
	MinExperienceYears float64            `json:"min_experience_years"`
	EducationLevel     string             `json:"education_level"`
	IndustryExperience []string           `json:"industry_experience"`
	Certifications     []string           `json:"certifications"`
}

// ScoringWeights are author-supplied weights for the total-score formula.
// They are not validated to sum to 1.0. Other is carried through the schema
// but does not participate in the total.
type ScoringWeights struct {
	Skills           float64 `json:"skills"`
	Experience       float64 `json:"experience"`
	Education        float64 `json:"education"`
	CareerTrajectory float64 `json:"career_trajectory"`
	Other            float64 `json:"other"`
}

// DefaultScoringWeights mirrors the weights used when the JD analysis does
// not supply its own.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Skills:           0.4,
		Experience:       0.3,
		Education:        0.15,
		CareerTrajectory: 0.1,
		Other:            0.05,
	}
}

// JDProfile is the structured form of one job description.
type JDProfile struct {
	JDID             string         `json:"jd_id"`
	JobTitle         string         `json:"job_title"`
	Company          string         `json:"company"`
	Department       string         `json:"department"`
	SeniorityLevel   string         `json:"seniority_level"`
	Requirements     Requirements   `json:"requirements"`
	Responsibilities []string       `json:"responsibilities"`
	ScoringWeights   ScoringWeights `json:"scoring_weights"`
	FullDescription  string         `json:"full_description"`
}

// JDEmbeddings carries the embedding vectors generated during JD analysis.
// Empty vectors mean the embedding service was unavailable; downstream
// matching degrades to a neutral semantic score.
type JDEmbeddings struct {
	FullDescription  []float64 `json:"full_description"`
	Skills           []float64 `json:"skills"`
	Responsibilities []float64 `json:"responsibilities"`
}
