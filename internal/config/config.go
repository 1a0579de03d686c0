// Package config loads application settings from environment variables and
// an optional YAML file, validates them, and hands out an immutable Config.
//
// Priority: environment (WRENCH_*) > config file > defaults. Validation is
// strict: an invalid provider, model, or limit is a startup error, not
// something to recover from mid-conversation. A missing Groq API key is the
// one exception; the assistant degrades to canned responses instead of
// refusing to start.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidSearchProvider indicates an unknown search provider name.
	ErrInvalidSearchProvider = errors.New("invalid search provider")

	// ErrInvalidModel indicates an unknown Groq model name.
	ErrInvalidModel = errors.New("invalid model")

	// ErrMissingCSEID indicates the Google provider was selected without a
	// custom search engine id.
	ErrMissingCSEID = errors.New("google_cse_id is required when search_provider is google")

	// ErrInvalidLimit indicates a non-positive numeric setting.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrInvalidLogLevel indicates an unrecognized log level string.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Search provider identifiers accepted in Config.SearchProvider.
const (
	ProviderSerpAPI = "serpapi"
	ProviderSerper  = "serper"
	ProviderBrave   = "brave"
	ProviderGoogle  = "google"
)

// Groq model identifiers accepted in Config.ModelName.
const (
	ModelLlama3_70B  = "llama3-70b-8192"
	ModelLlama3_8B   = "llama3-8b-8192"
	ModelMixtral8x7B = "mixtral-8x7b-32768"
)

// Config holds every externally supplied setting the assistant consumes.
type Config struct {
	// LLM settings. GroqAPIKey may be empty; the LLM layer then falls back
	// to canned responses.
	GroqAPIKey string `mapstructure:"groq_api_key"`
	ModelName  string `mapstructure:"model_name"`

	// Search settings. SearchAPIKey may be empty; the search engine then
	// simulates results offline.
	SearchAPIKey   string `mapstructure:"search_api_key"`
	SearchProvider string `mapstructure:"search_provider"`
	GoogleCSEID    string `mapstructure:"google_cse_id"`

	// Embedding settings.
	OllamaURL  string `mapstructure:"ollama_url"`
	EmbedModel string `mapstructure:"embed_model"`

	// Knowledge base settings.
	VectorDBPath        string  `mapstructure:"vector_db_path"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`

	// Conversation settings.
	SessionExpiryMinutes int `mapstructure:"session_expiry_minutes"`
	MaxHistoryLength     int `mapstructure:"max_history_length"`

	LogLevel string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	// Empty defaults register the key names so AutomaticEnv can find them.
	v.SetDefault("groq_api_key", "")
	v.SetDefault("search_api_key", "")
	v.SetDefault("google_cse_id", "")
	v.SetDefault("model_name", ModelLlama3_70B)
	v.SetDefault("search_provider", ProviderSerpAPI)
	v.SetDefault("ollama_url", "http://localhost:11434")
	v.SetDefault("embed_model", "nomic-embed-text")
	v.SetDefault("vector_db_path", "./wrench_db")
	v.SetDefault("similarity_threshold", 0.65)
	v.SetDefault("session_expiry_minutes", 60)
	v.SetDefault("max_history_length", 50)
	v.SetDefault("log_level", "info")
}

// Load reads configuration from the environment and, when path is non-empty,
// the YAML file at path. A missing file at the default location is fine; an
// explicitly named file that cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WRENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every enum-like and numeric setting. It returns the first
// problem found; callers treat any error as fatal at startup.
func (c *Config) Validate() error {
	switch c.SearchProvider {
	case ProviderSerpAPI, ProviderSerper, ProviderBrave, ProviderGoogle:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSearchProvider, c.SearchProvider)
	}
	if c.SearchProvider == ProviderGoogle && c.GoogleCSEID == "" {
		return ErrMissingCSEID
	}

	switch c.ModelName {
	case ModelLlama3_70B, ModelLlama3_8B, ModelMixtral8x7B:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidModel, c.ModelName)
	}

	if c.SimilarityThreshold <= 0 {
		return fmt.Errorf("%w: similarity_threshold must be positive, got %v", ErrInvalidLimit, c.SimilarityThreshold)
	}
	if c.SessionExpiryMinutes <= 0 {
		return fmt.Errorf("%w: session_expiry_minutes must be positive, got %d", ErrInvalidLimit, c.SessionExpiryMinutes)
	}
	if c.MaxHistoryLength <= 0 {
		return fmt.Errorf("%w: max_history_length must be positive, got %d", ErrInvalidLimit, c.MaxHistoryLength)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	return nil
}
