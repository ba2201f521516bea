package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hireloop/cv-ranker/internal/domain"
)

const cvSystemPrompt = `You are an expert CV parser. Extract structured information from the CV text.
Return a JSON object with the following structure:
{
  "candidate": {
    "name": "",
    "email": "",
    "phone": "",
    "location": "",
    "linkedin": ""
  },
  "summary": "",
  "experience": [
    {
      "company": "",
      "role": "",
      "start_date": "",
      "end_date": "",
      "description": "",
      "key_achievements": [],
      "technologies": []
    }
  ],
  "education": [
    {
      "institution": "",
      "degree": "",
      "field": "",
      "graduation_year": null
    }
  ],
  "skills": {
    "technical": [],
    "soft": [],
    "tools": [],
    "languages": []
  },
  "certifications": [
    {
      "name": "",
      "issuer": "",
      "date": ""
    }
  ],
  "projects": [
    {
      "name": "",
      "description": "",
      "technologies": []
    }
  ]
}

Be thorough and extract all relevant information. Use null for missing dates/numbers.`

// fallbackSummaryLimit caps the raw-text summary used when structuring fails.
const fallbackSummaryLimit = 500

// CVParser extracts text from a CV file and structures it into a candidate
// profile. Extraction failures fail the candidate; structuring failures fall
// back to a minimal profile instead.
type CVParser struct {
	generator Generator
	extractor TextExtractor
	logger    *slog.Logger
}

// NewCVParser creates a CV parser.
func NewCVParser(generator Generator, extractor TextExtractor, logger *slog.Logger) *CVParser {
	return &CVParser{
		generator: generator,
		extractor: extractor,
		logger:    logger,
	}
}

// Parse extracts and structures one CV.
func (p *CVParser) Parse(ctx context.Context, ref domain.CVRef) (*domain.CandidateProfile, error) {
	text, err := p.extractor.Extract(ctx, ref.Path, ref.Type)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", ref.Path, err)
	}

	profile := p.structure(ctx, text)
	profile.CVID = uuid.New().String()

	totalMonths := 0
	for i := range profile.Experience {
		months := durationMonths(profile.Experience[i].StartDate, profile.Experience[i].EndDate)
		profile.Experience[i].DurationMonths = months
		totalMonths += months
	}
	profile.TotalExperienceYears = math.Round(float64(totalMonths)/12*10) / 10

	p.logger.Debug("CV structured",
		slog.String("cv_id", profile.CVID),
		slog.String("path", ref.Path),
		slog.Float64("total_experience_years", profile.TotalExperienceYears),
	)

	return profile, nil
}

// structure asks the LLM for a structured profile; any failure yields the
// minimal fallback profile rather than a per-candidate error.
func (p *CVParser) structure(ctx context.Context, text string) *domain.CandidateProfile {
	prompt := fmt.Sprintf(`Parse the following CV and extract structured information:

%s

Return ONLY valid JSON, no additional text.`, text)

	response, err := p.generator.Generate(ctx, prompt, cvSystemPrompt, structuringTemperature)
	if err != nil {
		p.logger.Warn("CV structuring failed, using fallback profile",
			slog.Any("error", err),
		)
		return fallbackProfile(text)
	}

	var profile domain.CandidateProfile
	if err := json.Unmarshal([]byte(cleanJSONResponse(response)), &profile); err != nil {
		p.logger.Warn("CV structuring returned unparsable JSON, using fallback profile",
			slog.Any("error", err),
		)
		return fallbackProfile(text)
	}

	return &profile
}

// fallbackProfile is the minimal profile used when structuring fails: no
// skills or experience, summary truncated from the raw text.
func fallbackProfile(text string) *domain.CandidateProfile {
	summary := text
	if len(summary) > fallbackSummaryLimit {
		summary = summary[:fallbackSummaryLimit]
	}
	return &domain.CandidateProfile{Summary: summary}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// durationMonths computes the whole months between two date strings. An
// empty or "present"-like end date means now; unparsable dates count as zero.
func durationMonths(startDate, endDate string) int {
	start, ok := parseFlexibleDate(startDate)
	if !ok {
		return 0
	}

	end := time.Now()
	switch strings.ToLower(strings.TrimSpace(endDate)) {
	case "", "present", "current", "now":
	default:
		parsed, ok := parseFlexibleDate(endDate)
		if !ok {
			return 0
		}
		end = parsed
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// parseFlexibleDate tries the known CV date layouts, title-casing month
// names so "january 2020" still parses.
func parseFlexibleDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	words := strings.Fields(strings.ToLower(value))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	value = strings.Join(words, " ")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
