package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedSkills(t *testing.T) {
	profile := CandidateProfile{
		Skills: []string{" Python ", "python", "Docker", "", "  ", "docker", "React"},
	}

	got := profile.NormalizedSkills()

	assert.Equal(t, []string{"python", "docker", "react"}, got)
	// The profile itself is untouched.
	assert.Equal(t, " Python ", profile.Skills[0])
}

func TestNormalizedSkillsEmpty(t *testing.T) {
	profile := CandidateProfile{}
	assert.Empty(t, profile.NormalizedSkills())
}

func TestGenerationTraceFinal(t *testing.T) {
	var empty GenerationTrace
	assert.Nil(t, empty.Final())
	assert.False(t, empty.Degraded())

	trace := GenerationTrace{
		{Provider: "groq", Success: false, Reason: FailureUnconfigured},
		{Provider: "template", Success: true},
	}
	assert.Equal(t, "template", trace.Final().Provider)
	assert.True(t, trace.Final().Success)
	assert.True(t, trace.Degraded())

	single := GenerationTrace{{Provider: "groq", Success: true}}
	assert.False(t, single.Degraded())
}
