// Package pipeline wires the ranker and the generation chain into the two
// operations the application exposes: rank offers and generate a letter.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/generation"
	"github.com/mathieu/applyassist/internal/matching"
	"github.com/mathieu/applyassist/internal/normalize"
	"github.com/mathieu/applyassist/internal/offers"
	"github.com/mathieu/applyassist/internal/ranking"
	"github.com/mathieu/applyassist/internal/types"
)

// Coordinator owns the read-only collaborators shared by all requests.
// There is no cross-request mutable state, so a single Coordinator serves
// concurrent requests without locking.
type Coordinator struct {
	ranker       *ranking.Ranker
	matcher      *matching.Matcher
	orchestrator *generation.Orchestrator
	logger       *zap.Logger
}

// New creates a Coordinator
func New(ranker *ranking.Ranker, matcher *matching.Matcher, orchestrator *generation.Orchestrator, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		ranker:       ranker,
		matcher:      matcher,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// RankOffers scores the catalog against the profile and returns up to topN
// matches. It never fails: an empty catalog or fully filtered-out catalog
// yields an empty result.
func (c *Coordinator) RankOffers(ctx context.Context, profile *types.CandidateProfile, catalog []types.RawOffer, topN int, filters ranking.Filters) []types.MatchResult {
	return c.ranker.Rank(ctx, profile, catalog, topN, filters)
}

// GenerateLetter produces a cover letter for one offer together with the
// skill match report and the provider trace. The terminal template provider
// guarantees the returned text is never empty.
func (c *Coordinator) GenerateLetter(ctx context.Context, profile *types.CandidateProfile, rawOffer types.RawOffer, note string) types.GeneratedLetter {
	record := offers.Canonicalize(rawOffer)
	offerText := normalize.Offer(record)
	report := c.matcher.Match(profile.NormalizedSkills(), offerText.SkillTokens, offerText.FullText)

	text, trace := c.orchestrator.Generate(ctx, generation.Request{
		Profile: profile,
		Offer:   record,
		Note:    note,
		Report:  report,
	})

	if final := trace.Final(); final != nil && trace.Degraded() {
		c.logger.Info("letter generated by fallback provider",
			zap.String("offer_id", record.ID),
			zap.String("provider", final.Provider),
			zap.Int("attempts", len(trace)),
		)
	}

	return types.GeneratedLetter{Text: text, Report: report, Trace: trace}
}
