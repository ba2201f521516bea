package domain

// PersonalInfo holds the candidate contact details extracted from a CV.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

// Experience is one employment entry. DurationMonths is derived from the
// start/end date strings after structuring.
type Experience struct {
	Company         string   `json:"company"`
	Role            string   `json:"role"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Description     string   `json:"description"`
	KeyAchievements []string `json:"key_achievements"`
	Technologies    []string `json:"technologies"`
	DurationMonths  int      `json:"duration_months"`
}

// Education is one degree entry.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationYear int    `json:"graduation_year"`
}

// Certification is one professional certification entry.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// Project is one personal or professional project entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// SkillSet groups candidate skills by category.
type SkillSet struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
	Languages []string `json:"languages"`
}

// CandidateProfile is the structured form of one CV.
type CandidateProfile struct {
	CVID                 string          `json:"cv_id"`
	Candidate            PersonalInfo    `json:"candidate"`
	Summary              string          `json:"summary"`
	Experience           []Experience    `json:"experience"`
	Education            []Education     `json:"education"`
	Skills               SkillSet        `json:"skills"`
	Certifications       []Certification `json:"certifications"`
	Projects             []Project       `json:"projects"`
	TotalExperienceYears float64         `json:"total_experience_years"`
}
