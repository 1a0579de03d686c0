// Package rag routes each question to the knowledge base or to internet
// search, assembles a conversation-aware prompt for the chosen path, and
// invokes the LLM. Failures never escape: anything that would interrupt the
// conversation degrades into a valid assistant message.
package rag

import (
	"context"
	"log/slog"

	"wrench/internal/kb"
	"wrench/internal/llm"
	"wrench/internal/search"
)

// Source identifies which path produced an answer.
type Source string

const (
	SourceKnowledgeBase Source = "knowledge-base"
	SourceWeb           Source = "web-search"
)

// Reply is an answer plus the path that produced it.
type Reply struct {
	Text   string
	Source Source
}

// apology is the user-visible text for an LLM failure. Error detail goes to
// the log, not the conversation.
const apology = "I'm sorry, I ran into a problem while answering that. Please try asking again in a moment."

// KnowledgeSource is the knowledge-base surface the orchestrator needs.
type KnowledgeSource interface {
	HasRelevantInfo(ctx context.Context, query string) (bool, []kb.Chunk, error)
	RelevantDocuments(ctx context.Context, query string, k int) ([]kb.Chunk, error)
}

// Searcher is the web-search surface the orchestrator needs.
type Searcher interface {
	Search(ctx context.Context, query string, n int) []search.Result
}

// Orchestrator decides the retrieval path per query and dispatches to the
// LLM. One query is fully resolved before the next is accepted.
type Orchestrator struct {
	kb         KnowledgeSource
	searcher   Searcher
	client     llm.Client
	logger     *slog.Logger
	retrievalK int
}

// New creates an orchestrator. retrievalK <= 0 uses the default context
// size.
func New(source KnowledgeSource, searcher Searcher, client llm.Client, logger *slog.Logger, retrievalK int) *Orchestrator {
	if retrievalK <= 0 {
		retrievalK = kb.DefaultRetrievalK
	}
	return &Orchestrator{
		kb:         source,
		searcher:   searcher,
		client:     client,
		logger:     logger.With("component", "rag"),
		retrievalK: retrievalK,
	}
}

// Answer resolves one query: relevance gate, retrieval or search, prompt
// assembly, LLM call. Only the chosen path performs any index or network
// I/O. Errors are logged and converted to degraded replies, never returned.
func (o *Orchestrator) Answer(ctx context.Context, query string, history []llm.Message) Reply {
	relevant, _, err := o.kb.HasRelevantInfo(ctx, query)
	if err != nil {
		// Can't consult the knowledge base; the web path still works.
		o.logger.Error("relevance check failed, falling back to web search", "error", err)
		relevant = false
	}

	var msgs []llm.Message
	var source Source

	if relevant {
		o.logger.Info("using knowledge base", "query", query)
		chunks, err := o.kb.RelevantDocuments(ctx, query, o.retrievalK)
		if err != nil {
			o.logger.Error("retrieval failed, falling back to web search", "error", err)
			relevant = false
		} else {
			msgs = buildMessages(kbSystemPrompt, history, query, formatChunks(chunks), "the knowledge base")
			source = SourceKnowledgeBase
		}
	}

	if !relevant {
		o.logger.Info("using internet search", "query", query)
		results := o.searcher.Search(ctx, query, o.retrievalK)
		msgs = buildMessages(webSystemPrompt, history, query, formatResults(results), "internet search results")
		source = SourceWeb
	}

	answer, err := o.client.Generate(ctx, msgs)
	if err != nil {
		o.logger.Error("llm call failed", "error", err)
		return Reply{Text: apology, Source: source}
	}
	return Reply{Text: answer, Source: source}
}
