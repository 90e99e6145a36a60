package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/config"
	"github.com/mathieu/applyassist/internal/db"
	"github.com/mathieu/applyassist/internal/extract"
	"github.com/mathieu/applyassist/internal/generation"
	"github.com/mathieu/applyassist/internal/logger"
	"github.com/mathieu/applyassist/internal/matching"
	"github.com/mathieu/applyassist/internal/offers"
	"github.com/mathieu/applyassist/internal/pipeline"
	"github.com/mathieu/applyassist/internal/profile"
	"github.com/mathieu/applyassist/internal/ranking"
	"github.com/mathieu/applyassist/internal/scoring"
	"github.com/mathieu/applyassist/internal/types"
)

// app bundles everything a command needs after startup
type app struct {
	cfg         *config.Config
	log         *zap.Logger
	coordinator *pipeline.Coordinator
	database    *db.DB // nil when DATABASE_URL is not configured
}

// newApp loads and validates configuration and assembles the pipeline.
// An invalid provider chain aborts here, before any request is served.
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	var embedder scoring.Embedder
	if cfg.EmbeddingModel != "" && cfg.GeminiAPIKey != "" {
		geminiEmbedder, err := scoring.NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, err
		}
		embedder = geminiEmbedder
	}

	matcher := matching.New(cfg.MissingSkillCap)
	scorer := scoring.NewScorer(embedder, log)
	ranker := ranking.New(scorer, matcher, log, ranking.Options{
		Weights: ranking.Weights{Similarity: cfg.SimilarityWeight, SkillMatch: cfg.SkillWeight},
		Bands:   ranking.Bands{Strong: cfg.StrongBand, Moderate: cfg.ModerateBand},
	})

	chain := make([]generation.ContentProvider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		switch name {
		case "groq":
			chain = append(chain, generation.NewGroqProvider(cfg.GroqAPIKey, cfg.GroqModel))
		case "gemini":
			chain = append(chain, generation.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel))
		case "template":
			chain = append(chain, generation.NewTemplateProvider())
		}
	}
	timeout := time.Duration(cfg.ProviderTimeoutSeconds) * time.Second
	orchestrator, err := generation.New(chain, timeout, log,
		generation.WithWordLimits(cfg.MinLetterWords, cfg.MaxLetterWords))
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		coordinator: pipeline.New(ranker, matcher, orchestrator, log),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.database = database
	}

	return a, nil
}

func (a *app) close() {
	if a.database != nil {
		a.database.Close()
	}
	_ = a.log.Sync()
}

// loadProfile reads a CV document and parses it into a profile
func (a *app) loadProfile(cvPath string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(cvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CV file: %w", err)
	}
	text, err := extract.Text(cvPath, data)
	if err != nil {
		return nil, err
	}
	return profile.Parse(text), nil
}

// resolveProfile accepts either a CV document to parse or an already parsed
// profile as JSON. Exactly one of the paths is set; cobra enforces that.
func (a *app) resolveProfile(cvPath, profilePath string) (*types.CandidateProfile, error) {
	if profilePath == "" {
		return a.loadProfile(cvPath)
	}
	data, err := os.ReadFile(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	var candidate types.CandidateProfile
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &candidate, nil
}

// writeJSON prints v as indented JSON to outPath, or stdout when empty.
func writeJSON(outPath string, v any) error {
	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// loadCatalog returns the offer catalog from the database when connected,
// otherwise from the configured JSON file.
func (a *app) loadCatalog(ctx context.Context, offersPath string) ([]types.RawOffer, error) {
	if offersPath == "" {
		offersPath = a.cfg.OffersPath
	}
	if a.database != nil && offersPath == "" {
		return a.database.ListOffers(ctx)
	}
	if offersPath == "" {
		return nil, fmt.Errorf("no offer source: set --offers, offers_path, or DATABASE_URL")
	}
	return offers.LoadCatalog(offersPath, a.log)
}
