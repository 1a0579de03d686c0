package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ModelLlama3_70B, cfg.ModelName)
	assert.Equal(t, ProviderSerpAPI, cfg.SearchProvider)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedModel)
	assert.Equal(t, "./wrench_db", cfg.VectorDBPath)
	assert.InDelta(t, 0.65, cfg.SimilarityThreshold, 1e-9)
	assert.Equal(t, 60, cfg.SessionExpiryMinutes)
	assert.Equal(t, 50, cfg.MaxHistoryLength)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.GroqAPIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WRENCH_MODEL_NAME", ModelLlama3_8B)
	t.Setenv("WRENCH_GROQ_API_KEY", "gsk_test")
	t.Setenv("WRENCH_MAX_HISTORY_LENGTH", "8")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ModelLlama3_8B, cfg.ModelName)
	assert.Equal(t, "gsk_test", cfg.GroqAPIKey)
	assert.Equal(t, 8, cfg.MaxHistoryLength)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrench.yaml")
	content := "model_name: mixtral-8x7b-32768\nsimilarity_threshold: 0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModelMixtral8x7B, cfg.ModelName)
	assert.InDelta(t, 0.5, cfg.SimilarityThreshold, 1e-9)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		ModelName:            ModelLlama3_70B,
		SearchProvider:       ProviderSerper,
		SimilarityThreshold:  0.65,
		SessionExpiryMinutes: 60,
		MaxHistoryLength:     50,
		LogLevel:             "info",
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.SearchProvider = "bing"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidSearchProvider)
}

func TestValidateGoogleRequiresCSEID(t *testing.T) {
	cfg := validConfig()
	cfg.SearchProvider = ProviderGoogle
	assert.ErrorIs(t, cfg.Validate(), ErrMissingCSEID)

	cfg.GoogleCSEID = "engine"
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownModel(t *testing.T) {
	cfg := validConfig()
	cfg.ModelName = "gpt-9"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidModel)
}

func TestValidateRejectsNonPositiveLimits(t *testing.T) {
	cfg := validConfig()
	cfg.SimilarityThreshold = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLimit)

	cfg = validConfig()
	cfg.SessionExpiryMinutes = -5
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLimit)

	cfg = validConfig()
	cfg.MaxHistoryLength = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLimit)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "verbose"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLogLevel)
}

func TestValidateAllowsMissingGroqKey(t *testing.T) {
	cfg := validConfig()
	cfg.GroqAPIKey = ""
	assert.NoError(t, cfg.Validate())
}
