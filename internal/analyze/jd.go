package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/hireloop/cv-ranker/internal/domain"
)

const jdSystemPrompt = `You are an expert recruiter analyzing job descriptions. Extract structured requirements.
Return a JSON object with the following structure:
{
  "job_title": "",
  "company": "",
  "department": "",
  "seniority_level": "junior|mid|senior|lead|executive",
  "requirements": {
    "must_have_skills": [
      {"skill": "Python", "weight": 0.9}
    ],
    "nice_to_have_skills": [
      {"skill": "Docker", "weight": 0.5}
    ],
    "min_experience_years": 5,
    "education_level": "Bachelor's degree",
    "industry_experience": ["Technology", "Finance"],
    "certifications": ["AWS Certified"]
  },
  "responsibilities": ["Build APIs", "Lead team"],
  "scoring_weights": {
    "skills": 0.4,
    "experience": 0.3,
    "education": 0.15,
    "career_trajectory": 0.1,
    "other": 0.05
  }
}

Assign weights to skills based on importance (0.0-1.0).
Adjust scoring_weights based on what matters most for this role.`

// JDAnalyzer structures job descriptions and generates their embeddings.
// Structuring failure is fatal to the whole job; embedding failure only
// degrades semantic matching.
type JDAnalyzer struct {
	generator Generator
	embedder  Embedder
	logger    *slog.Logger
}

// NewJDAnalyzer creates a JD analyzer.
func NewJDAnalyzer(generator Generator, embedder Embedder, logger *slog.Logger) *JDAnalyzer {
	return &JDAnalyzer{
		generator: generator,
		embedder:  embedder,
		logger:    logger,
	}
}

// Analyze structures the JD text and embeds it for semantic matching.
func (a *JDAnalyzer) Analyze(ctx context.Context, jdText, jobTitle, company string) (*domain.JDProfile, *domain.JDEmbeddings, error) {
	if strings.TrimSpace(jdText) == "" {
		return nil, nil, domain.ErrJobDescriptionRequired
	}

	prompt := fmt.Sprintf(`Analyze the following job description and extract structured requirements:

Job Title: %s
Company: %s

Job Description:
%s

Return ONLY valid JSON, no additional text.`, jobTitle, company, jdText)

	response, err := a.generator.Generate(ctx, prompt, jdSystemPrompt, structuringTemperature)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to analyze job description: %w", err)
	}

	var profile domain.JDProfile
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &profile); err != nil {
		return nil, nil, fmt.Errorf("failed to parse job description analysis: %w", err)
	}

	profile.JDID = uuid.New().String()
	profile.FullDescription = jdText
	if profile.JobTitle == "" {
		profile.JobTitle = jobTitle
	}
	if profile.Company == "" {
		profile.Company = company
	}
	if profile.ScoringWeights == (domain.ScoringWeights{}) {
		profile.ScoringWeights = domain.DefaultScoringWeights()
	}

	a.logger.Info("JD analysis complete",
		slog.String("jd_id", profile.JDID),
		slog.Int("must_have_skills", len(profile.Requirements.MustHaveSkills)),
	)

	return &profile, a.generateEmbeddings(ctx, &profile), nil
}

// generateEmbeddings embeds the full description, the must-have skill list
// and the responsibilities. On failure it returns empty vectors; downstream
// matching falls back to a neutral semantic score.
func (a *JDAnalyzer) generateEmbeddings(ctx context.Context, profile *domain.JDProfile) *domain.JDEmbeddings {
	skills := make([]string, 0, len(profile.Requirements.MustHaveSkills))
	for _, req := range profile.Requirements.MustHaveSkills {
		skills = append(skills, req.Skill)
	}

	texts := []string{
		profile.FullDescription,
		strings.Join(skills, " "),
		strings.Join(profile.Responsibilities, " "),
	}

	vectors, err := a.embedder.Embed(ctx, texts)
	if err != nil || len(vectors) != 3 {
		a.logger.Warn("Failed to generate JD embeddings, semantic matching degraded",
			slog.String("jd_id", profile.JDID),
			slog.Any("error", err),
		)
		return &domain.JDEmbeddings{}
	}

	return &domain.JDEmbeddings{
		FullDescription:  vectors[0],
		Skills:           vectors[1],
		Responsibilities: vectors[2],
	}
}
