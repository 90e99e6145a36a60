package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/types"
)

type stubProvider struct {
	name  string
	text  string
	err   error
	block bool
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Generate(ctx context.Context, _ Request) (string, error) {
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func validLetter() string {
	return "Dear Hiring Manager,\n\n" +
		strings.Repeat("I shipped measurable improvements to production systems every quarter. ", 30) +
		"\n\nSincerely,\nJane Doe"
}

func testRequest() Request {
	return Request{
		Profile: &types.CandidateProfile{
			Name:   "Jane Doe",
			Skills: []string{"Python", "Django", "PostgreSQL"},
			Experience: []types.ExperienceEntry{
				{Title: "Backend Developer", Organization: "Acme", Bullets: []string{"Built APIs"}},
			},
		},
		Offer: types.OfferRecord{
			ID:           "offer-1",
			Title:        "Senior Backend Developer",
			Organization: "Globex",
			Description:  "Building resilient payment services in Python.",
		},
		Report: types.SkillMatchReport{
			Matched:    []string{"Python", "Django"},
			Missing:    []string{"Kafka"},
			Percentage: 66.7,
		},
	}
}

func TestNewRejectsFallibleTerminal(t *testing.T) {
	_, err := New(nil, 0, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoInfallibleTerminal)

	_, err = New([]ContentProvider{&stubProvider{name: "remote"}}, 0, zap.NewNop())
	assert.ErrorIs(t, err, ErrNoInfallibleTerminal)

	_, err = New([]ContentProvider{&stubProvider{name: "remote"}, NewTemplateProvider()}, 0, zap.NewNop())
	assert.NoError(t, err)
}

func TestGenerateFirstProviderSucceeds(t *testing.T) {
	first := &stubProvider{name: "remote", text: validLetter()}
	orch, err := New([]ContentProvider{first, NewTemplateProvider()}, time.Second, zap.NewNop())
	require.NoError(t, err)

	text, trace := orch.Generate(context.Background(), testRequest())

	require.Len(t, trace, 1)
	assert.Equal(t, "remote", trace[0].Provider)
	assert.True(t, trace[0].Success)
	assert.False(t, trace.Degraded())
	assert.NotEmpty(t, text)
}

func TestGenerateFallsThroughToTemplate(t *testing.T) {
	failing := &stubProvider{name: "flaky", err: errors.New("503 from backend")}
	garbage := &stubProvider{name: "garbage", text: "ok"}
	orch, err := New([]ContentProvider{failing, garbage, NewTemplateProvider()}, time.Second, zap.NewNop())
	require.NoError(t, err)

	text, trace := orch.Generate(context.Background(), testRequest())

	require.Len(t, trace, 3)
	assert.Equal(t, types.FailureRemoteError, trace[0].Reason)
	assert.Equal(t, types.FailureInvalidOutput, trace[1].Reason)
	assert.True(t, trace[2].Success)
	assert.Equal(t, "template", trace[2].Provider)
	assert.True(t, trace.Degraded())

	assert.Contains(t, text, "Dear Hiring Manager,")
	assert.Contains(t, text, "Sincerely,")
	assert.Contains(t, text, "Jane Doe")
}

func TestGenerateClassifiesTimeout(t *testing.T) {
	slow := &stubProvider{name: "slow", block: true}
	orch, err := New([]ContentProvider{slow, NewTemplateProvider()}, 10*time.Millisecond, zap.NewNop())
	require.NoError(t, err)

	_, trace := orch.Generate(context.Background(), testRequest())

	require.Len(t, trace, 2)
	assert.Equal(t, types.FailureTimeout, trace[0].Reason)
	assert.True(t, trace[1].Success)
}

func TestGenerateClassifiesUnconfiguredProviders(t *testing.T) {
	orch, err := New([]ContentProvider{
		NewGroqProvider("", ""),
		NewGeminiProvider("", ""),
		NewTemplateProvider(),
	}, time.Second, zap.NewNop())
	require.NoError(t, err)

	text, trace := orch.Generate(context.Background(), testRequest())

	require.Len(t, trace, 3)
	assert.Equal(t, types.FailureUnconfigured, trace[0].Reason)
	assert.Equal(t, "groq", trace[0].Provider)
	assert.Equal(t, types.FailureUnconfigured, trace[1].Reason)
	assert.Equal(t, "gemini", trace[1].Provider)
	assert.True(t, trace[2].Success)
	assert.NotEmpty(t, text)
}

func TestGenerateTruncatesOverlongOutput(t *testing.T) {
	long := "Dear Hiring Manager,\n\n" +
		strings.Repeat("I shipped measurable improvements to production systems every quarter this year. ", 80) +
		"Sincerely, Jane Doe."
	orch, err := New([]ContentProvider{&stubProvider{name: "verbose", text: long}, NewTemplateProvider()}, time.Second, zap.NewNop())
	require.NoError(t, err)

	text, trace := orch.Generate(context.Background(), testRequest())

	assert.True(t, trace[0].Success)
	assert.LessOrEqual(t, wordCount(text), MaxLetterWords)
	assert.True(t, strings.HasSuffix(text, "."))
}

func TestGenerateTemplateAlwaysTerminates(t *testing.T) {
	// Every fallible provider fails for a different reason; the chain must
	// still end in exactly one success.
	orch, err := New([]ContentProvider{
		&stubProvider{name: "a", err: errors.New("boom")},
		&stubProvider{name: "b", text: ""},
		NewGroqProvider("", ""),
		NewTemplateProvider(),
	}, time.Second, zap.NewNop())
	require.NoError(t, err)

	text, trace := orch.Generate(context.Background(), testRequest())

	require.Len(t, trace, 4)
	successes := 0
	for _, attempt := range trace {
		if attempt.Success {
			successes++
		}
	}
	assert.Equal(t, 1, successes)
	assert.NotNil(t, trace.Final())
	assert.True(t, trace.Final().Success)
	assert.NotEmpty(t, text)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, types.FailureUnconfigured, classify(errUnconfigured("x")))
	assert.Equal(t, types.FailureTimeout, classify(context.DeadlineExceeded))
	assert.Equal(t, types.FailureTimeout, classify(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	assert.Equal(t, types.FailureRemoteError, classify(errors.New("500 internal")))
}

func TestWithWordLimits(t *testing.T) {
	// validLetter is ~306 words; a tighter minimum rejects it, a looser
	// maximum passes it through untruncated.
	short := &stubProvider{name: "short", text: validLetter()}
	orch, err := New(
		[]ContentProvider{short, NewTemplateProvider()},
		time.Second, zap.NewNop(),
		WithWordLimits(400, 1000),
	)
	require.NoError(t, err)

	_, trace := orch.Generate(context.Background(), testRequest())
	require.Len(t, trace, 2)
	assert.False(t, trace[0].Success)
	assert.Equal(t, types.FailureInvalidOutput, trace[0].Reason)
	assert.Equal(t, "template", trace.Final().Provider)
}
