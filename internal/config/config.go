// Package config provides configuration loading and validation for the
// application. Values come from defaults, then an optional JSON file, then
// environment variables, in increasing precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNoTerminalProvider is the startup-time failure for a provider chain
// that does not end with the template provider. Such a chain could exhaust
// every provider and return nothing, so it is rejected before serving.
var ErrNoTerminalProvider = fmt.Errorf("config error: provider chain must end with the 'template' provider")

// Config holds all runtime settings. All fields are optional in the JSON
// file; missing values use defaults or environment variables.
type Config struct {
	// Provider chain, tried in order. The last entry must be "template".
	Providers []string `json:"providers,omitempty" validate:"omitempty,dive,oneof=groq gemini template"`

	// Provider credentials and models
	GroqAPIKey   string `json:"groq_api_key,omitempty"`
	GroqModel    string `json:"groq_model,omitempty"`
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	GeminiModel  string `json:"gemini_model,omitempty"`

	// Embedding backend for similarity scoring; empty disables embeddings
	// and selects the token-overlap fallback.
	EmbeddingModel string `json:"embedding_model,omitempty"`

	// Per-provider timeout in seconds
	ProviderTimeoutSeconds int `json:"provider_timeout_seconds,omitempty" validate:"gte=0"`

	// Letter length policy in words
	MinLetterWords int `json:"min_letter_words,omitempty" validate:"gte=0"`
	MaxLetterWords int `json:"max_letter_words,omitempty" validate:"gte=0"`

	// Ranking policy
	SimilarityWeight float64 `json:"similarity_weight,omitempty" validate:"gte=0,lte=1"`
	SkillWeight      float64 `json:"skill_weight,omitempty" validate:"gte=0,lte=1"`
	StrongBand       float64 `json:"strong_band,omitempty" validate:"gte=0,lte=100"`
	ModerateBand     float64 `json:"moderate_band,omitempty" validate:"gte=0,lte=100"`
	TopN             int     `json:"top_n,omitempty" validate:"gte=0"`
	MissingSkillCap  int     `json:"missing_skill_cap,omitempty" validate:"gte=0"`

	// Collaborators
	DatabaseURL string `json:"database_url,omitempty"`
	OffersPath  string `json:"offers_path,omitempty"`
	ListenAddr  string `json:"listen_addr,omitempty"`

	// Logging
	LogJSON bool `json:"log_json,omitempty"`
	Verbose bool `json:"verbose,omitempty"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Providers:              []string{"groq", "gemini", "template"},
		ProviderTimeoutSeconds: 20,
		MinLetterWords:         150,
		MaxLetterWords:         600,
		SimilarityWeight:       0.6,
		SkillWeight:            0.4,
		StrongBand:             80,
		ModerateBand:           50,
		TopN:                   10,
		MissingSkillCap:        10,
		ListenAddr:             ":8080",
	}
}

// Load builds the effective configuration: defaults, overlaid by the JSON
// file at path (skipped when path is empty), overlaid by environment
// variables. The result is not yet validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

// applyEnv overrides fields from environment variables
func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.GroqAPIKey, "GROQ_API_KEY")
	setString(&c.GroqModel, "GROQ_MODEL")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.GeminiModel, "GEMINI_MODEL")
	setString(&c.EmbeddingModel, "EMBEDDING_MODEL")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.OffersPath, "OFFERS_PATH")
	setString(&c.ListenAddr, "LISTEN_ADDR")

	if v := os.Getenv("PROVIDERS"); v != "" {
		c.Providers = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Providers = append(c.Providers, name)
			}
		}
	}
}

// Validate checks field constraints and the provider chain. A chain without
// the terminal template provider is a startup-time fatal, never a
// request-time failure.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if len(c.Providers) == 0 || c.Providers[len(c.Providers)-1] != "template" {
		return ErrNoTerminalProvider
	}
	if sum := c.SimilarityWeight + c.SkillWeight; sum < 0.99 || sum > 1.01 {
		return fmt.Errorf("config error: similarity_weight and skill_weight must sum to 1, got %.2f", sum)
	}
	if c.ModerateBand > c.StrongBand {
		return fmt.Errorf("config error: moderate_band must not exceed strong_band")
	}
	if c.MinLetterWords > c.MaxLetterWords {
		return fmt.Errorf("config error: min_letter_words must not exceed max_letter_words")
	}
	return nil
}
