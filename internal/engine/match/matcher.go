// Package match compares one candidate profile against one job description,
// producing the skill, semantic, experience and education match signals the
// scoring step consumes.
package match

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/hireloop/cv-ranker/internal/domain"
)

const (
	mustHaveMatchScore   = 100
	niceToHaveMatchScore = 80
	extraSkillsLimit     = 10
	neutralSemanticScore = 50.0
	cvSummaryLimit       = 2000
)

// Embedder generates embedding vectors for the candidate summary.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Engine matches candidate profiles against a job description. Skill,
// experience and education matching are deterministic; semantic matching
// uses embeddings and degrades to a neutral score on failure.
type Engine struct {
	embedder Embedder
	logger   *slog.Logger
}

// New creates a matching engine.
func New(embedder Embedder, logger *slog.Logger) *Engine {
	return &Engine{
		embedder: embedder,
		logger:   logger,
	}
}

// Match evaluates one candidate against the JD. It never fails the
// candidate: every signal either computes or falls back to its neutral value.
func (e *Engine) Match(ctx context.Context, cv *domain.CandidateProfile, jd *domain.JDProfile, embeddings *domain.JDEmbeddings) *domain.MatchResult {
	return &domain.MatchResult{
		SkillMatches:    matchSkills(cv, jd),
		SemanticScore:   e.semanticScore(ctx, cv, embeddings),
		ExperienceMatch: matchExperience(cv, jd),
		EducationMatch:  matchEducation(cv, jd),
	}
}

var skillCharsPattern = regexp.MustCompile(`[^\w\s.#+]`)

// normalizeSkill lowercases a skill name, drops special characters except
// the ones that distinguish skills (c#, c++, .net) and collapses whitespace.
func normalizeSkill(skill string) string {
	skill = skillCharsPattern.ReplaceAllString(skill, "")
	return strings.ToLower(strings.Join(strings.Fields(skill), " "))
}

// candidateSkills collects every normalized skill the candidate lists,
// including technologies mentioned per experience entry.
func candidateSkills(cv *domain.CandidateProfile) map[string]bool {
	skills := make(map[string]bool)
	add := func(names []string) {
		for _, name := range names {
			if normalized := normalizeSkill(name); normalized != "" {
				skills[normalized] = true
			}
		}
	}

	add(cv.Skills.Technical)
	add(cv.Skills.Tools)
	add(cv.Skills.Soft)
	add(cv.Skills.Languages)
	for _, exp := range cv.Experience {
		add(exp.Technologies)
	}
	return skills
}

// isSimilarSkill reports whether a requirement matches any candidate skill
// by word overlap: more than half of the requirement's words must appear in
// a single candidate skill.
func isSimilarSkill(target string, cvSkills map[string]bool) bool {
	targetParts := strings.Fields(target)
	if len(targetParts) == 0 {
		return false
	}

	targetSet := make(map[string]bool, len(targetParts))
	for _, part := range targetParts {
		targetSet[part] = true
	}

	for cvSkill := range cvSkills {
		overlap := 0
		for _, part := range strings.Fields(cvSkill) {
			if targetSet[part] {
				overlap++
			}
		}
		if overlap > 0 && float64(overlap)/float64(len(targetSet)) > 0.5 {
			return true
		}
	}
	return false
}

func matchSkills(cv *domain.CandidateProfile, jd *domain.JDProfile) domain.SkillMatches {
	cvSkills := candidateSkills(cv)
	mustHave := jd.Requirements.MustHaveSkills
	niceToHave := jd.Requirements.NiceToHaveSkills

	matches := domain.SkillMatches{
		MatchedMustHave:   []domain.SkillMatch{},
		MissingMustHave:   []string{},
		MatchedNiceToHave: []domain.SkillMatch{},
		ExtraSkills:       []string{},
	}

	for _, req := range mustHave {
		normalized := normalizeSkill(req.Skill)
		if cvSkills[normalized] || isSimilarSkill(normalized, cvSkills) {
			matches.MatchedMustHave = append(matches.MatchedMustHave, domain.SkillMatch{
				Skill:      req.Skill,
				Weight:     req.Weight,
				MatchScore: mustHaveMatchScore,
			})
		} else {
			matches.MissingMustHave = append(matches.MissingMustHave, req.Skill)
		}
	}

	for _, req := range niceToHave {
		normalized := normalizeSkill(req.Skill)
		if cvSkills[normalized] || isSimilarSkill(normalized, cvSkills) {
			matches.MatchedNiceToHave = append(matches.MatchedNiceToHave, domain.SkillMatch{
				Skill:      req.Skill,
				Weight:     req.Weight,
				MatchScore: niceToHaveMatchScore,
			})
		}
	}

	required := make(map[string]bool, len(mustHave)+len(niceToHave))
	for _, req := range mustHave {
		required[normalizeSkill(req.Skill)] = true
	}
	for _, req := range niceToHave {
		required[normalizeSkill(req.Skill)] = true
	}
	for skill := range cvSkills {
		if !required[skill] {
			matches.ExtraSkills = append(matches.ExtraSkills, skill)
		}
	}
	sort.Strings(matches.ExtraSkills)
	if len(matches.ExtraSkills) > extraSkillsLimit {
		matches.ExtraSkills = matches.ExtraSkills[:extraSkillsLimit]
	}

	if len(mustHave) > 0 {
		matches.MatchPercentage = float64(len(matches.MatchedMustHave)) / float64(len(mustHave)) * 100
	}

	return matches
}

// semanticScore embeds a compact candidate summary and compares it against
// the JD full-description embedding. Missing embeddings or embedding errors
// yield the neutral score.
func (e *Engine) semanticScore(ctx context.Context, cv *domain.CandidateProfile, embeddings *domain.JDEmbeddings) float64 {
	if embeddings == nil || len(embeddings.FullDescription) == 0 {
		return neutralSemanticScore
	}

	summary := buildCVSummary(cv)
	if summary == "" {
		return neutralSemanticScore
	}

	vectors, err := e.embedder.Embed(ctx, []string{summary})
	if err != nil || len(vectors) == 0 || len(vectors[0]) == 0 {
		e.logger.Warn("Failed to embed candidate summary, using neutral semantic score",
			slog.String("cv_id", cv.CVID),
			slog.Any("error", err),
		)
		return neutralSemanticScore
	}

	similarity := cosineSimilarity(vectors[0], embeddings.FullDescription)
	return math.Max(0, math.Min(100, similarity*100))
}

// buildCVSummary produces the embedding input: summary, top skills and the
// two most recent roles, capped in length.
func buildCVSummary(cv *domain.CandidateProfile) string {
	var parts []string

	if cv.Summary != "" {
		parts = append(parts, cv.Summary)
	}

	skills := append([]string{}, cv.Skills.Technical...)
	skills = append(skills, cv.Skills.Tools...)
	if len(skills) > 20 {
		skills = skills[:20]
	}
	if len(skills) > 0 {
		parts = append(parts, fmt.Sprintf("Skills: %s", strings.Join(skills, ", ")))
	}

	experiences := cv.Experience
	if len(experiences) > 2 {
		experiences = experiences[:2]
	}
	for _, exp := range experiences {
		description := exp.Description
		if len(description) > 200 {
			description = description[:200]
		}
		parts = append(parts, fmt.Sprintf("%s at %s: %s", exp.Role, exp.Company, description))
	}

	summary := strings.Join(parts, " ")
	if len(summary) > cvSummaryLimit {
		summary = summary[:cvSummaryLimit]
	}
	return summary
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func matchExperience(cv *domain.CandidateProfile, jd *domain.JDProfile) domain.ExperienceMatch {
	required := jd.Requirements.MinExperienceYears
	return domain.ExperienceMatch{
		CVYears:          cv.TotalExperienceYears,
		RequiredYears:    required,
		MeetsRequirement: cv.TotalExperienceYears >= required,
		DifferenceYears:  cv.TotalExperienceYears - required,
	}
}

func matchEducation(cv *domain.CandidateProfile, jd *domain.JDProfile) domain.EducationMatch {
	requiredLevel := strings.ToLower(jd.Requirements.EducationLevel)

	match := domain.EducationMatch{
		HasEducation:  len(cv.Education) > 0,
		RequiredLevel: requiredLevel,
	}

	if len(cv.Education) > 0 {
		match.HighestDegree = highestDegree(cv.Education)
	}

	match.MeetsRequirement = true
	degree := strings.ToLower(match.HighestDegree)
	if strings.Contains(requiredLevel, "master") && strings.Contains(degree, "bachelor") {
		match.MeetsRequirement = false
	} else if strings.Contains(requiredLevel, "phd") && !strings.Contains(degree, "phd") {
		match.MeetsRequirement = false
	}

	return match
}

// highestDegree classifies the candidate's best degree by keyword; an
// unrecognized degree falls back to the first entry as listed.
func highestDegree(education []domain.Education) string {
	degrees := make([]string, len(education))
	for i, e := range education {
		degrees[i] = strings.ToLower(e.Degree)
	}

	contains := func(keywords ...string) bool {
		for _, d := range degrees {
			for _, kw := range keywords {
				if strings.Contains(d, kw) {
					return true
				}
			}
		}
		return false
	}

	switch {
	case contains("phd", "doctorate"):
		return "PhD"
	case contains("master", "ms", "mba"):
		return "Master's"
	case contains("bachelor", "bs", "ba"):
		return "Bachelor's"
	default:
		return education[0].Degree
	}
}
