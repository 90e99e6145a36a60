// Package scoring computes the textual compatibility score between a
// normalized candidate profile and a normalized offer.
package scoring

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/normalize"
)

// Strategy names recorded for diagnostics
const (
	// StrategyEmbedding is cosine similarity over embedding vectors
	StrategyEmbedding = "embedding"
	// StrategyJaccard is token-overlap ratio, used when no embedding backend is available
	StrategyJaccard = "jaccard"
)

// Embedder turns text into a fixed-length numeric vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Result carries a similarity value in [0,1] and the strategy that produced
// it. Callers never need the strategy to interpret the value; it exists for
// diagnostics only.
type Result struct {
	Value    float64
	Strategy string
}

// Scorer computes similarity between two normalized texts. The primary
// strategy embeds both texts and takes their cosine similarity; when the
// embedding backend is missing or errors the scorer transparently falls back
// to Jaccard token overlap. Same inputs always produce the same score.
type Scorer struct {
	embedder Embedder
	logger   *zap.Logger
}

// NewScorer creates a Scorer. A nil embedder is valid and selects the
// Jaccard strategy for every call.
func NewScorer(embedder Embedder, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{embedder: embedder, logger: logger}
}

// Score returns the similarity of the two texts, clamped to [0,1].
// It never fails: embedding backend errors are recovered locally by the
// Jaccard fallback and logged as warnings, not surfaced to the caller.
func (s *Scorer) Score(ctx context.Context, candidate, offer normalize.NormalizedText) Result {
	if s.embedder == nil {
		return Result{Value: jaccard(candidate.FullText, offer.FullText), Strategy: StrategyJaccard}
	}

	candidateVec, err := s.embedder.Embed(ctx, candidate.FullText)
	if err == nil {
		var offerVec []float32
		offerVec, err = s.embedder.Embed(ctx, offer.FullText)
		if err == nil {
			return Result{Value: clamp01(cosine(candidateVec, offerVec)), Strategy: StrategyEmbedding}
		}
	}

	s.logger.Warn("embedding backend unavailable, falling back to token overlap",
		zap.String("fallback_strategy", StrategyJaccard),
		zap.Error(err),
	)
	return Result{Value: jaccard(candidate.FullText, offer.FullText), Strategy: StrategyJaccard}
}

// cosine returns the cosine similarity of two vectors. Mismatched or
// zero-norm vectors score 0.
func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// jaccard returns |intersection| / |union| over the word sets of both texts
func jaccard(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = true
	}
	return set
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
