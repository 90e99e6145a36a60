package generation

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu/applyassist/internal/types"
)

func TestTemplateLetterFullProfile(t *testing.T) {
	provider := NewTemplateProvider()
	req := testRequest()
	req.Note = "I am available to relocate to Berlin from March."

	text, err := provider.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Dear Hiring Manager,"))
	assert.Contains(t, text, "Senior Backend Developer position at Globex")
	assert.Contains(t, text, "Python, Django, and PostgreSQL")
	assert.Contains(t, text, "I bring 1 professional experience to this role.")
	assert.Contains(t, text, "Backend Developer at Acme")
	assert.Contains(t, text, "building resilient payment services in python")
	assert.Contains(t, text, "I am available to relocate to Berlin from March.")
	assert.True(t, strings.HasSuffix(text, "Sincerely,\nJane Doe"))
}

func TestTemplateLetterSparseProfile(t *testing.T) {
	provider := NewTemplateProvider()
	req := Request{
		Profile: &types.CandidateProfile{},
		Offer:   types.OfferRecord{},
	}

	text, err := provider.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, text, "the position position at your company")
	assert.Contains(t, text, "the role's responsibilities")
	assert.True(t, strings.HasSuffix(text, "Sincerely,\nApplicant"))
	// Sparse profiles produce no skills or experience paragraphs.
	assert.NotContains(t, text, "My technical expertise")
	assert.NotContains(t, text, "professional experience")
}

func TestTemplateLetterPluralExperience(t *testing.T) {
	provider := NewTemplateProvider()
	req := testRequest()
	req.Profile.Experience = append(req.Profile.Experience,
		types.ExperienceEntry{Title: "Intern", Organization: "Initech"})

	text := provider.Letter(req)
	assert.Contains(t, text, "I bring 2 professional experiences to this role.")
}

func TestTemplateLetterDeterministic(t *testing.T) {
	provider := NewTemplateProvider()
	req := testRequest()

	first := provider.Letter(req)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, provider.Letter(req))
	}
}

func TestKeyFocus(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"empty", "", "the role's responsibilities"},
		{"first sentence", "Building payment APIs. Also doing frontend.", "building payment apis"},
		{"cut at comma", "Scaling infrastructure, monitoring and alerting. More.", "scaling infrastructure"},
		{"long sentence capped", strings.Repeat("very long description ", 10), "very long description very long description very l"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keyFocus(tt.description))
		})
	}
}
