// Package ranking scores a catalog of offers against a candidate profile and
// returns the best matches in descending order with explanations.
package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mathieu/applyassist/internal/matching"
	"github.com/mathieu/applyassist/internal/normalize"
	"github.com/mathieu/applyassist/internal/offers"
	"github.com/mathieu/applyassist/internal/scoring"
	"github.com/mathieu/applyassist/internal/types"
)

// Default scoring policy
const (
	DefaultSimilarityWeight = 0.6
	DefaultSkillWeight      = 0.4
	DefaultStrongBand       = 80.0
	DefaultModerateBand     = 50.0
	DefaultMaxParallel      = 8
)

// Weights controls how similarity and skill coverage combine into the final
// score. They are expected to sum to 1.
type Weights struct {
	Similarity float64
	SkillMatch float64
}

// Bands holds the score thresholds that select the explanation wording
type Bands struct {
	Strong   float64
	Moderate float64
}

// Filters restricts which offers participate in a ranking run. Empty fields
// match everything. EmploymentType compares case-insensitively; Location is a
// case-insensitive substring match so "paris" matches "Paris, France".
type Filters struct {
	EmploymentType string
	Location       string
}

func (f Filters) allows(record types.OfferRecord) bool {
	if f.EmploymentType != "" && !strings.EqualFold(f.EmploymentType, record.EmploymentType) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(record.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

// Options tunes a Ranker. Zero values select the defaults above.
type Options struct {
	Weights     Weights
	Bands       Bands
	MaxParallel int
}

// Ranker scores offers against a profile. Offers are scored concurrently;
// the output order depends only on the inputs, never on scheduling.
type Ranker struct {
	scorer      *scoring.Scorer
	matcher     *matching.Matcher
	weights     Weights
	bands       Bands
	maxParallel int
	logger      *zap.Logger
}

// New creates a Ranker around a similarity scorer and a skill matcher
func New(scorer *scoring.Scorer, matcher *matching.Matcher, logger *zap.Logger, opts Options) *Ranker {
	if opts.Weights.Similarity == 0 && opts.Weights.SkillMatch == 0 {
		opts.Weights = Weights{Similarity: DefaultSimilarityWeight, SkillMatch: DefaultSkillWeight}
	}
	if opts.Bands.Strong == 0 {
		opts.Bands.Strong = DefaultStrongBand
	}
	if opts.Bands.Moderate == 0 {
		opts.Bands.Moderate = DefaultModerateBand
	}
	if opts.MaxParallel <= 0 {
		opts.MaxParallel = DefaultMaxParallel
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{
		scorer:      scorer,
		matcher:     matcher,
		weights:     opts.Weights,
		bands:       opts.Bands,
		maxParallel: opts.MaxParallel,
		logger:      logger,
	}
}

// Rank scores every offer that passes the filters and returns up to topN
// results sorted by score, highest first. Offers with equal scores keep
// their catalog order. topN <= 0 means no truncation. Rank never fails:
// malformed offers contribute low scores instead of errors.
func (r *Ranker) Rank(ctx context.Context, profile *types.CandidateProfile, rawOffers []types.RawOffer, topN int, filters Filters) []types.MatchResult {
	candidateText := normalize.Profile(profile)
	candidateSkills := profile.NormalizedSkills()

	records := make([]types.OfferRecord, 0, len(rawOffers))
	for _, raw := range rawOffers {
		record := offers.Canonicalize(raw)
		if filters.allows(record) {
			records = append(records, record)
		}
	}

	results := make([]types.MatchResult, len(records))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.maxParallel)
	for i, record := range records {
		group.Go(func() error {
			results[i] = r.scoreOffer(groupCtx, candidateText, candidateSkills, record)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes completion.
	_ = group.Wait()

	// Catalog order is the tie-break, so the sort must be stable.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	r.logger.Debug("ranked offers",
		zap.Int("candidates", len(rawOffers)),
		zap.Int("after_filters", len(records)),
		zap.Int("returned", len(results)),
	)
	return results
}

func (r *Ranker) scoreOffer(ctx context.Context, candidateText normalize.NormalizedText, candidateSkills []string, record types.OfferRecord) types.MatchResult {
	offerText := normalize.Offer(record)
	report := r.matcher.Match(candidateSkills, offerText.SkillTokens, offerText.FullText)
	similarity := r.scorer.Score(ctx, candidateText, offerText)

	score := round1(r.weights.Similarity*similarity.Value*100 + r.weights.SkillMatch*report.Percentage)

	return types.MatchResult{
		OfferID:            record.ID,
		Title:              record.Title,
		Organization:       record.Organization,
		Score:              score,
		Similarity:         round1(similarity.Value * 100),
		SkillMatch:         report.Percentage,
		MatchedSkills:      report.Matched,
		Explanation:        r.explain(score, report.Matched),
		SimilarityStrategy: similarity.Strategy,
	}
}

// explain builds the one-sentence rationale shown next to each result
func (r *Ranker) explain(score float64, matched []string) string {
	label := "Weak match"
	switch {
	case score >= r.bands.Strong:
		label = "Strong match"
	case score >= r.bands.Moderate:
		label = "Moderate match"
	}

	if len(matched) == 0 {
		return label + ": none of the skills this offer lists appear in your profile."
	}
	top := matched
	if len(top) > 3 {
		top = top[:3]
	}
	return fmt.Sprintf("%s: your profile covers %s from this offer's requirements.", label, joinNatural(top))
}

// joinNatural renders "a", "a and b", "a, b and c"
func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
