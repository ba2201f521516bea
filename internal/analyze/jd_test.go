package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/cv-ranker/internal/domain"
)

const jdStubResponse = `{
	"job_title": "Backend Engineer",
	"company": "Acme",
	"seniority_level": "senior",
	"requirements": {
		"must_have_skills": [
			{"skill": "Python", "weight": 0.9},
			{"skill": "PostgreSQL", "weight": 0.7}
		],
		"nice_to_have_skills": [{"skill": "Docker", "weight": 0.5}],
		"min_experience_years": 5,
		"education_level": "Bachelor's degree"
	},
	"responsibilities": ["Build APIs"],
	"scoring_weights": {"skills": 0.5, "experience": 0.3, "education": 0.1, "career_trajectory": 0.05, "other": 0.05}
}`

func TestJDAnalyzer_Analyze(t *testing.T) {
	gen := &stubGenerator{response: "```json\n" + jdStubResponse + "\n```"}
	analyzer := NewJDAnalyzer(gen, &stubEmbedder{}, discardLogger())

	profile, embeddings, err := analyzer.Analyze(context.Background(), "We need a backend engineer", "Backend Engineer", "Acme")
	require.NoError(t, err)

	assert.NotEmpty(t, profile.JDID)
	assert.Equal(t, "Backend Engineer", profile.JobTitle)
	assert.Equal(t, "We need a backend engineer", profile.FullDescription)
	require.Len(t, profile.Requirements.MustHaveSkills, 2)
	assert.Equal(t, 0.9, profile.Requirements.MustHaveSkills[0].Weight)
	assert.Equal(t, 0.5, profile.ScoringWeights.Skills)

	require.NotNil(t, embeddings)
	assert.NotEmpty(t, embeddings.FullDescription)
	assert.NotEmpty(t, embeddings.Skills)
	assert.NotEmpty(t, embeddings.Responsibilities)
	assert.Contains(t, gen.lastPrompt, "We need a backend engineer")
}

func TestJDAnalyzer_EmptyDescription(t *testing.T) {
	analyzer := NewJDAnalyzer(&stubGenerator{}, &stubEmbedder{}, discardLogger())

	_, _, err := analyzer.Analyze(context.Background(), "   ", "Backend Engineer", "Acme")
	assert.ErrorIs(t, err, domain.ErrJobDescriptionRequired)
}

func TestJDAnalyzer_StructuringFailureIsFatal(t *testing.T) {
	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{name: "llm error", gen: &stubGenerator{err: errors.New("model unavailable")}},
		{name: "unparsable json", gen: &stubGenerator{response: "not json at all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewJDAnalyzer(tt.gen, &stubEmbedder{}, discardLogger())

			profile, embeddings, err := analyzer.Analyze(context.Background(), "We need a backend engineer", "Backend Engineer", "Acme")
			require.Error(t, err)
			assert.Nil(t, profile)
			assert.Nil(t, embeddings)
		})
	}
}

func TestJDAnalyzer_EmbeddingFailureDegrades(t *testing.T) {
	analyzer := NewJDAnalyzer(
		&stubGenerator{response: jdStubResponse},
		&stubEmbedder{err: errors.New("quota exceeded")},
		discardLogger(),
	)

	profile, embeddings, err := analyzer.Analyze(context.Background(), "We need a backend engineer", "Backend Engineer", "Acme")
	require.NoError(t, err)
	assert.NotNil(t, profile)

	require.NotNil(t, embeddings)
	assert.Empty(t, embeddings.FullDescription)
	assert.Empty(t, embeddings.Skills)
}

func TestJDAnalyzer_DefaultsScoringWeights(t *testing.T) {
	response := `{
		"job_title": "Backend Engineer",
		"requirements": {"must_have_skills": [{"skill": "Go", "weight": 0.8}]}
	}`
	analyzer := NewJDAnalyzer(&stubGenerator{response: response}, &stubEmbedder{}, discardLogger())

	profile, _, err := analyzer.Analyze(context.Background(), "jd text", "", "Acme")
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultScoringWeights(), profile.ScoringWeights)
	assert.Equal(t, "Acme", profile.Company)
}
