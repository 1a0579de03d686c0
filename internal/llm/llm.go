// Package llm provides chat-completion clients. The orchestrator only
// depends on the Client interface; the concrete backend is chosen at
// startup from configuration.
package llm

import (
	"context"
	"log/slog"

	"wrench/internal/config"
)

// Message represents a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles used in prompt assembly.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client is any chat-completion backend: a role-tagged message sequence in,
// plain text out.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// NewFromConfig returns a Groq-backed client when an API key is configured.
// Without a key it logs a warning and returns the canned StaticClient so the
// assistant stays demonstrably functional offline.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) Client {
	if cfg.GroqAPIKey == "" {
		logger.Warn("no Groq API key configured, using canned responses")
		return NewStaticClient()
	}
	return NewGroqClient(cfg.GroqAPIKey, cfg.ModelName)
}
