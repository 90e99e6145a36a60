package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu/applyassist/internal/types"
)

func TestExtractSkillTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Vocabulary terms in discovery order",
			input:    "Experience with Python, Docker and React required",
			expected: []string{"Python", "Docker", "React"},
		},
		{
			name:     "Acronyms qualify",
			input:    "Deploy to AWS with SQL databases",
			expected: []string{"AWS", "SQL"},
		},
		{
			name:     "Punctuated technology names qualify",
			input:    "We use node.js, c++ and ci/cd pipelines",
			expected: []string{"node.js", "c++", "ci/cd"},
		},
		{
			name:     "Generic words excluded",
			input:    "Strong communication skills and great attitude",
			expected: nil,
		},
		{
			name:     "Go recognized only with canonical casing",
			input:    "We go fast and write Go services",
			expected: []string{"Go"},
		},
		{
			name:     "Multi-word vocabulary entries",
			input:    "Background in machine learning is a plus",
			expected: []string{"machine learning"},
		},
		{
			name:     "Deduplication is case-insensitive, first casing wins",
			input:    "Python developer. python scripting. PYTHON tooling.",
			expected: []string{"Python"},
		},
		{
			name:     "Trailing punctuation trimmed",
			input:    "Kubernetes. Docker, Terraform!",
			expected: []string{"Kubernetes", "Docker", "Terraform"},
		},
		{
			name:     "Empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSkillTokens(tt.input))
		})
	}
}

func TestProfileNormalization(t *testing.T) {
	profile := &types.CandidateProfile{
		Name:   "Jane Doe",
		Skills: []string{"python", "react"},
		Experience: []types.ExperienceEntry{
			{Title: "Backend Developer", Organization: "Acme", Bullets: []string{"Built APIs in Django"}},
		},
		Education: []string{"MSc Computer Science"},
		RawText:   "Jane Doe. Python and React developer. Some Docker exposure.",
	}

	normalized := Profile(profile)

	assert.Contains(t, normalized.FullText, "jane doe")
	assert.Contains(t, normalized.FullText, "backend developer at acme")
	assert.NotContains(t, normalized.FullText, "  ", "whitespace must be collapsed")

	// Profile skills come first, raw-text discoveries after
	assert.Equal(t, []string{"python", "react", "Docker"}, normalized.SkillTokens)
}

func TestProfileNormalizationEmptyProfile(t *testing.T) {
	normalized := Profile(&types.CandidateProfile{})
	assert.Empty(t, normalized.FullText)
	assert.Empty(t, normalized.SkillTokens)
}

func TestProfileNormalizationFallsBackToRawText(t *testing.T) {
	profile := &types.CandidateProfile{RawText: "Plain CV text with Python"}
	normalized := Profile(profile)
	assert.Equal(t, "plain cv text with python", normalized.FullText)
	assert.Equal(t, []string{"Python"}, normalized.SkillTokens)
}

func TestOfferNormalization(t *testing.T) {
	offer := types.OfferRecord{
		Title:          "Data Engineer",
		Organization:   "Globex",
		Location:       "Berlin",
		EmploymentType: "full-time",
		Description:    "Build pipelines with Spark and Airflow on AWS.",
		Requirements:   []string{"Python", "SQL"},
	}

	normalized := Offer(offer)

	assert.Contains(t, normalized.FullText, "position: data engineer")
	assert.Contains(t, normalized.FullText, "organization: globex")
	assert.Contains(t, normalized.FullText, "requirement: python")

	// Requirements are discovered before description tokens
	assert.Equal(t, []string{"Python", "SQL", "Spark", "Airflow", "AWS"}, normalized.SkillTokens)
}

func TestOfferNormalizationEmptyOffer(t *testing.T) {
	normalized := Offer(types.OfferRecord{})
	require.Empty(t, normalized.FullText)
	require.Empty(t, normalized.SkillTokens)
}

func TestNormalizationIsDeterministic(t *testing.T) {
	offer := types.OfferRecord{
		Title:        "Engineer",
		Description:  "Python, Docker, Kubernetes and machine learning",
		Requirements: []string{"Go", "Terraform"},
	}

	first := Offer(offer)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Offer(offer))
	}
}
