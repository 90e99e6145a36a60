package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"groq", "gemini", "template"}, cfg.Providers)
	assert.Equal(t, 20, cfg.ProviderTimeoutSeconds)
	assert.Equal(t, 150, cfg.MinLetterWords)
	assert.Equal(t, 600, cfg.MaxLetterWords)
	assert.Equal(t, 0.6, cfg.SimilarityWeight)
	assert.Equal(t, 0.4, cfg.SkillWeight)
	assert.NoError(t, cfg.Validate())
}

func TestLoadValidJSON(t *testing.T) {
	content := `{
		"providers": ["gemini", "template"],
		"gemini_api_key": "test-key",
		"top_n": 5,
		"strong_band": 75,
		"listen_addr": ":9090"
	}`
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"gemini", "template"}, cfg.Providers)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 75.0, cfg.StrongBand)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 0.6, cfg.SimilarityWeight)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte("{not json"), 0644))

	_, err := Load(tmpFile)
	assert.ErrorContains(t, err, "failed to parse config JSON")
}

func TestEnvOverridesFile(t *testing.T) {
	content := `{"groq_api_key": "file-key"}`
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("PROVIDERS", "groq, template")

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.GroqAPIKey)
	assert.Equal(t, []string{"groq", "template"}, cfg.Providers)
}

func TestValidateRejectsChainWithoutTemplate(t *testing.T) {
	cfg := Default()
	cfg.Providers = []string{"groq", "gemini"}
	assert.ErrorIs(t, cfg.Validate(), ErrNoTerminalProvider)

	cfg.Providers = nil
	assert.ErrorIs(t, cfg.Validate(), ErrNoTerminalProvider)

	cfg.Providers = []string{"template"}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Providers = []string{"carrier-pigeon", "template"}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := Default()
	cfg.SimilarityWeight = 0.9
	cfg.SkillWeight = 0.4
	assert.ErrorContains(t, cfg.Validate(), "must sum to 1")
}

func TestValidateRejectsInvertedBands(t *testing.T) {
	cfg := Default()
	cfg.StrongBand = 40
	cfg.ModerateBand = 60
	assert.ErrorContains(t, cfg.Validate(), "moderate_band")
}

func TestValidateRejectsInvertedWordLimits(t *testing.T) {
	cfg := Default()
	cfg.MinLetterWords = 700
	assert.ErrorContains(t, cfg.Validate(), "min_letter_words")
}
