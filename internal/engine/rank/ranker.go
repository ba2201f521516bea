// Package rank filters, orders and tiers scored candidates into the final
// explained ranking.
package rank

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hireloop/cv-ranker/internal/domain"
)

const (
	minTotalScore  = 30
	minSkillsScore = 40
	criticalWeight = 0.9

	tierAThreshold = 85
	tierBThreshold = 70
	tierCThreshold = 55
)

// Ranker produces the final ranked candidate list.
type Ranker struct {
	logger *slog.Logger
}

// New creates a ranker.
func New(logger *slog.Logger) *Ranker {
	return &Ranker{logger: logger}
}

// Rank filters out weak candidates, sorts the rest by total score, assigns
// ranks, tiers and explanations, and tallies the tier distribution. The
// result is deterministic for a given input: ties on total score break by
// CV ID.
func (r *Ranker) Rank(candidates []domain.CandidateScore, jd *domain.JDProfile) *domain.RankedResult {
	filtered := r.applyFilters(candidates, jd)

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Scores.Total != filtered[j].Scores.Total {
			return filtered[i].Scores.Total > filtered[j].Scores.Total
		}
		return filtered[i].CVID < filtered[j].CVID
	})

	distribution := map[string]int{
		domain.TierA: 0,
		domain.TierB: 0,
		domain.TierC: 0,
		domain.TierD: 0,
	}

	for i := range filtered {
		filtered[i].Rank = i + 1
		filtered[i].Tier = tierFor(filtered[i].Scores.Total)
		filtered[i].Explanation = explain(&filtered[i])
		distribution[filtered[i].Tier]++
	}

	r.logger.Info("Ranking complete",
		slog.Int("candidates_in", len(candidates)),
		slog.Int("candidates_ranked", len(filtered)),
	)

	return &domain.RankedResult{
		Candidates:       filtered,
		TierDistribution: distribution,
	}
}

// applyFilters drops candidates below the score floors and candidates
// missing a critical must-have skill (weight >= 0.9).
func (r *Ranker) applyFilters(candidates []domain.CandidateScore, jd *domain.JDProfile) []domain.CandidateScore {
	var critical []string
	for _, req := range jd.Requirements.MustHaveSkills {
		if req.Weight >= criticalWeight {
			critical = append(critical, strings.ToLower(req.Skill))
		}
	}

	filtered := make([]domain.CandidateScore, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Scores.Total < minTotalScore {
			r.logger.Info("Candidate filtered out: score too low",
				slog.String("candidate_name", candidate.CandidateName),
				slog.Float64("total", candidate.Scores.Total),
			)
			continue
		}

		if candidate.Scores.SkillsMatch < minSkillsScore {
			r.logger.Info("Candidate filtered out: insufficient skills",
				slog.String("candidate_name", candidate.CandidateName),
				slog.Float64("skills_match", candidate.Scores.SkillsMatch),
			)
			continue
		}

		if hasCriticalGap(candidate.MissingSkills, critical) {
			r.logger.Info("Candidate filtered out: missing critical skills",
				slog.String("candidate_name", candidate.CandidateName),
			)
			continue
		}

		filtered = append(filtered, candidate)
	}
	return filtered
}

func hasCriticalGap(missingSkills, critical []string) bool {
	if len(critical) == 0 {
		return false
	}
	missing := make(map[string]bool, len(missingSkills))
	for _, skill := range missingSkills {
		missing[strings.ToLower(skill)] = true
	}
	for _, skill := range critical {
		if missing[skill] {
			return true
		}
	}
	return false
}

func tierFor(total float64) string {
	switch {
	case total >= tierAThreshold:
		return domain.TierA
	case total >= tierBThreshold:
		return domain.TierB
	case total >= tierCThreshold:
		return domain.TierC
	default:
		return domain.TierD
	}
}

// explain renders the human-readable ranking rationale from the score
// breakdown, strengths and weaknesses.
func explain(candidate *domain.CandidateScore) string {
	var parts []string

	total := candidate.Scores.Total
	switch {
	case total >= tierAThreshold:
		parts = append(parts, "Excellent match for this position.")
	case total >= tierBThreshold:
		parts = append(parts, "Strong candidate with good potential.")
	case total >= tierCThreshold:
		parts = append(parts, "Decent fit with some gaps.")
	default:
		parts = append(parts, "Marginal fit for the role.")
	}

	if strengths := candidate.Strengths; len(strengths) > 0 {
		if len(strengths) > 3 {
			strengths = strengths[:3]
		}
		parts = append(parts, fmt.Sprintf("Strengths: %s.", strings.Join(strengths, "; ")))
	}

	if weaknesses := candidate.Weaknesses; len(weaknesses) > 0 {
		if len(weaknesses) > 2 {
			weaknesses = weaknesses[:2]
		}
		parts = append(parts, fmt.Sprintf("Areas of concern: %s.", strings.Join(weaknesses, "; ")))
	}

	if candidate.Scores.SkillsMatch >= 85 {
		parts = append(parts, "Excellent skills match.")
	} else if candidate.Scores.SkillsMatch < 60 {
		parts = append(parts, "Skills match is below expectations.")
	}

	return strings.Join(parts, " ")
}
