// Package search answers free-text queries against an internet search
// backend, with a deterministic offline simulation when no backend is
// usable. The orchestrator always gets a non-empty result list back.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"wrench/internal/config"
)

// Result is one search hit. Results are produced fresh per call and never
// cached across queries.
type Result struct {
	Title   string
	Snippet string
	URL     string
}

// Provider is a single search backend.
type Provider interface {
	Search(ctx context.Context, query string, n int) ([]Result, error)
}

// queryPrefix biases every outgoing query toward the domain.
const queryPrefix = "car repair "

// defaultNumResults is used when the caller asks for zero or fewer results.
const defaultNumResults = 3

// httpTimeout bounds every provider call. One attempt, no retry.
const httpTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// Engine dispatches to the configured provider and falls back to the
// offline simulation when no key is configured or a live call fails.
type Engine struct {
	provider Provider
	logger   *slog.Logger
}

// NewEngine builds an engine from configuration. With no API key the engine
// is simulation-only; this is logged once at construction.
func NewEngine(cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	logger = logger.With("component", "search")

	if cfg.SearchAPIKey == "" {
		logger.Warn("no search API key configured, internet search will be simulated")
		return &Engine{logger: logger}, nil
	}

	var p Provider
	switch cfg.SearchProvider {
	case config.ProviderSerpAPI:
		p = newSerpAPI(cfg.SearchAPIKey)
	case config.ProviderSerper:
		p = newSerper(cfg.SearchAPIKey)
	case config.ProviderBrave:
		p = newBrave(cfg.SearchAPIKey)
	case config.ProviderGoogle:
		p = newGoogleCSE(cfg.SearchAPIKey, cfg.GoogleCSEID)
	default:
		return nil, fmt.Errorf("unsupported search provider: %q", cfg.SearchProvider)
	}
	return &Engine{provider: p, logger: logger}, nil
}

// NewEngineWithProvider wraps an explicit provider; used in tests.
func NewEngineWithProvider(p Provider, logger *slog.Logger) *Engine {
	return &Engine{provider: p, logger: logger.With("component", "search")}
}

// Search prefixes the query with the domain context, dispatches to the live
// provider, and degrades to the simulation on any error. It never returns an
// empty, error-free result set.
func (e *Engine) Search(ctx context.Context, query string, n int) []Result {
	if n <= 0 {
		n = defaultNumResults
	}

	if e.provider == nil {
		return Simulate(query)
	}

	results, err := e.provider.Search(ctx, queryPrefix+query, n)
	if err != nil {
		e.logger.Error("internet search failed, using simulated results", "error", err)
		return Simulate(query)
	}
	if len(results) == 0 {
		e.logger.Warn("internet search returned nothing, using simulated results", "query", query)
		return Simulate(query)
	}
	return results
}
