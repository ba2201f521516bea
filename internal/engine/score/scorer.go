// Package score turns match signals into weighted candidate scores with
// strengths, weaknesses and a confidence estimate. Everything here is
// deterministic.
package score

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/hireloop/cv-ranker/internal/domain"
)

const (
	niceToHaveBonusPerSkill = 4
	niceToHaveBonusCap      = 20
	maxListedItems          = 5
)

// Score computes the weighted score breakdown for one matched candidate and
// assembles the score record the ranking step consumes. Rank, Tier and
// Explanation are left for the ranker.
func Score(cv *domain.CandidateProfile, jd *domain.JDProfile, match *domain.MatchResult) *domain.CandidateScore {
	weights := jd.ScoringWeights
	if weights == (domain.ScoringWeights{}) {
		weights = domain.DefaultScoringWeights()
	}

	skillsScore := skillsScore(match)
	experienceScore := experienceScore(match)
	educationScore := educationScore(match)
	careerScore := careerTrajectoryScore(cv)

	total := weights.Skills*skillsScore +
		weights.Experience*experienceScore +
		weights.Education*educationScore +
		weights.CareerTrajectory*careerScore

	scores := domain.ScoreBreakdown{
		Total:               round2(total),
		SkillsMatch:         round2(skillsScore),
		ExperienceRelevance: round2(experienceScore),
		EducationFit:        round2(educationScore),
		CareerTrajectory:    round2(careerScore),
		Confidence:          round2(confidence(cv, match)),
	}

	strengths, weaknesses := strengthsAndWeaknesses(cv, match, scores)

	name := cv.Candidate.Name
	if name == "" {
		name = "Unknown"
	}

	return &domain.CandidateScore{
		CandidateID:   uuid.New().String(),
		CVID:          cv.CVID,
		JDID:          jd.JDID,
		CandidateName: name,
		Scores:        scores,
		MatchedSkills: match.SkillMatches.MatchedMustHave,
		MissingSkills: match.SkillMatches.MissingMustHave,
		ExtraSkills:   match.SkillMatches.ExtraSkills,
		Strengths:     strengths,
		Weaknesses:    weaknesses,
	}
}

// skillsScore blends the must-have match percentage with the semantic score
// and a capped bonus for matched nice-to-have skills.
func skillsScore(match *domain.MatchResult) float64 {
	base := match.SkillMatches.MatchPercentage
	bonus := math.Min(niceToHaveBonusCap, float64(len(match.SkillMatches.MatchedNiceToHave)*niceToHaveBonusPerSkill))
	final := base*0.6 + match.SemanticScore*0.3 + bonus
	return clamp(final, 0, 100)
}

// experienceScore rewards meeting the requirement, lightly penalizes being
// far over it, and scales linearly up to 70 when under it.
func experienceScore(match *domain.MatchResult) float64 {
	cvYears := match.ExperienceMatch.CVYears
	required := match.ExperienceMatch.RequiredYears

	if required == 0 {
		return 100
	}

	if cvYears >= required {
		switch {
		case cvYears <= required*1.5:
			return 100
		case cvYears <= required*2:
			return 90
		default:
			return 75
		}
	}
	return cvYears / required * 70
}

func educationScore(match *domain.MatchResult) float64 {
	if !match.EducationMatch.HasEducation {
		return 50
	}
	if match.EducationMatch.MeetsRequirement {
		return 100
	}
	return 70
}

var (
	seniorRoleKeywords = []string{"senior", "lead", "principal", "architect", "director", "manager", "head"}
	midRoleKeywords    = []string{"engineer", "developer", "analyst", "consultant"}
)

// careerTrajectoryScore grades role progression across the five most recent
// positions plus a company-diversity adjustment. Fewer than two entries is
// scored neutrally high for lack of data.
func careerTrajectoryScore(cv *domain.CandidateProfile) float64 {
	experiences := cv.Experience
	if len(experiences) < 2 {
		return 75
	}
	if len(experiences) > maxListedItems {
		experiences = experiences[:maxListedItems]
	}

	levels := make([]int, len(experiences))
	for i, exp := range experiences {
		levels[i] = roleLevel(exp.Role)
	}

	score := 60.0
	if levels[0] >= levels[len(levels)-1] {
		score = 85
	}

	companies := make(map[string]bool, len(experiences))
	for _, exp := range experiences {
		companies[exp.Company] = true
	}
	switch {
	case len(companies) >= 2 && len(companies) <= 4:
		score += 10
	case len(companies) > 4:
		score -= 5
	}

	return clamp(score, 0, 100)
}

func roleLevel(role string) int {
	role = strings.ToLower(role)
	for _, kw := range seniorRoleKeywords {
		if strings.Contains(role, kw) {
			return 3
		}
	}
	for _, kw := range midRoleKeywords {
		if strings.Contains(role, kw) {
			return 2
		}
	}
	return 1
}

// confidence estimates scoring reliability from how much profile data the
// candidate supplied and how strong the must-have match was.
func confidence(cv *domain.CandidateProfile, match *domain.MatchResult) float64 {
	c := 0.5
	if len(cv.Experience) >= 2 {
		c += 0.15
	}
	if len(cv.Education) > 0 {
		c += 0.1
	}
	if len(cv.Skills.Technical) > 0 {
		c += 0.15
	}
	if match.SkillMatches.MatchPercentage > 80 {
		c += 0.1
	}
	return math.Min(1.0, c)
}

func strengthsAndWeaknesses(cv *domain.CandidateProfile, match *domain.MatchResult, scores domain.ScoreBreakdown) ([]string, []string) {
	var strengths, weaknesses []string

	matchedMustHave := match.SkillMatches.MatchedMustHave
	if len(matchedMustHave) >= 3 {
		top := make([]string, 0, 3)
		for _, s := range matchedMustHave[:3] {
			top = append(top, s.Skill)
		}
		strengths = append(strengths, fmt.Sprintf("Strong match on required skills: %s", strings.Join(top, ", ")))
	}

	if n := len(match.SkillMatches.MatchedNiceToHave); n > 0 {
		strengths = append(strengths, fmt.Sprintf("Has %d additional desired skills", n))
	}

	if missing := match.SkillMatches.MissingMustHave; len(missing) > 0 {
		if len(missing) > 3 {
			missing = missing[:3]
		}
		weaknesses = append(weaknesses, fmt.Sprintf("Missing required skills: %s", strings.Join(missing, ", ")))
	}

	cvYears := match.ExperienceMatch.CVYears
	required := match.ExperienceMatch.RequiredYears
	if cvYears > required*1.2 {
		strengths = append(strengths, fmt.Sprintf("%s years of experience (exceeds requirement)", formatYears(cvYears)))
	} else if cvYears < required {
		weaknesses = append(weaknesses, fmt.Sprintf("Only %s years experience (requires %s)", formatYears(cvYears), formatYears(required)))
	}

	if match.EducationMatch.MeetsRequirement {
		if match.EducationMatch.HighestDegree != "" {
			strengths = append(strengths, fmt.Sprintf("Has %s degree", match.EducationMatch.HighestDegree))
		}
	} else {
		weaknesses = append(weaknesses, "Education level below requirement")
	}

	if scores.CareerTrajectory >= 85 {
		strengths = append(strengths, "Strong career progression")
	} else if scores.CareerTrajectory < 60 {
		weaknesses = append(weaknesses, "Limited career progression")
	}

	if len(strengths) > maxListedItems {
		strengths = strengths[:maxListedItems]
	}
	if len(weaknesses) > maxListedItems {
		weaknesses = weaknesses[:maxListedItems]
	}
	return strengths, weaknesses
}

func formatYears(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
