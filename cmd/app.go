package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"wrench/internal/config"
	"wrench/internal/embedder"
	"wrench/internal/kb"
	"wrench/internal/llm"
	"wrench/internal/log"
	"wrench/internal/rag"
	"wrench/internal/search"
	"wrench/internal/session"
)

// embedDimension matches the nomic-embed-text output size.
const embedDimension = 768

// app bundles the wired components every command needs.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	kb       *kb.KnowledgeBase
	searcher *search.Engine
	client   llm.Client
	sessions *session.Manager
	orch     *rag.Orchestrator
}

// newApp loads configuration and wires the full pipeline. Nothing touches
// the network or disk yet; the knowledge base is opened lazily by the
// command that needs it.
func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	level, ok := log.ParseLevel(cfg.LogLevel)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	logger := log.New(log.Config{Level: level})

	emb := embedder.NewOllamaEmbedder(cfg.OllamaURL, cfg.EmbedModel, embedDimension)
	knowledge := kb.New(cfg.VectorDBPath, cfg.SimilarityThreshold, emb, logger)

	searcher, err := search.NewEngine(cfg, logger)
	if err != nil {
		return nil, err
	}

	client := llm.NewFromConfig(cfg, logger)
	sessions := session.NewManager(cfg.MaxHistoryLength,
		time.Duration(cfg.SessionExpiryMinutes)*time.Minute, logger)
	orch := rag.New(knowledge, searcher, client, logger, kb.DefaultRetrievalK)

	return &app{
		cfg:      cfg,
		logger:   logger,
		kb:       knowledge,
		searcher: searcher,
		client:   client,
		sessions: sessions,
		orch:     orch,
	}, nil
}

func (a *app) Close() {
	a.kb.Close()
}
