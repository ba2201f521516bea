package domain

// SkillMatch records one requirement the candidate satisfies.
type SkillMatch struct {
	Skill      string  `json:"skill"`
	Weight     float64 `json:"weight"`
	MatchScore float64 `json:"match_score"`
}

// SkillMatches is the outcome of matching CV skills against JD requirements.
// MatchPercentage covers must-have skills only; matched nice-to-haves feed a
// bonus in the downstream skills score.
type SkillMatches struct {
	MatchedMustHave   []SkillMatch `json:"matched_must_have"`
	MissingMustHave   []string     `json:"missing_must_have"`
	MatchedNiceToHave []SkillMatch `json:"matched_nice_to_have"`
	ExtraSkills       []string     `json:"extra_skills"`
	MatchPercentage   float64      `json:"match_percentage"`
}

// ExperienceMatch compares candidate experience against the JD minimum.
type ExperienceMatch struct {
	CVYears          float64 `json:"cv_years"`
	RequiredYears    float64 `json:"required_years"`
	MeetsRequirement bool    `json:"meets_requirement"`
	DifferenceYears  float64 `json:"difference_years"`
}

// EducationMatch compares the candidate's highest degree against the JD
// education requirement.
type EducationMatch struct {
	HasEducation     bool   `json:"has_education"`
	HighestDegree    string `json:"highest_degree"`
	RequiredLevel    string `json:"required_level"`
	MeetsRequirement bool   `json:"meets_requirement"`
}

// MatchResult is owned by exactly one (CandidateProfile, JDProfile) pair and
// is consumed by the scoring step; it is never persisted.
type MatchResult struct {
	SkillMatches    SkillMatches    `json:"skill_matches"`
	SemanticScore   float64         `json:"semantic_score"`
	ExperienceMatch ExperienceMatch `json:"experience_match"`
	EducationMatch  EducationMatch  `json:"education_match"`
}
