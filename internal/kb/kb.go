// Package kb manages the persistent car-repair knowledge base: building it
// from documents, loading it from disk, and answering relevance and
// retrieval queries against it.
package kb

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"wrench/internal/embedder"
)

const (
	dbFileName     = "kb.db"
	embedBatchSize = 32
	metaEmbedModel = "embedding_model"

	// gateK is how many neighbors the relevance gate inspects.
	gateK = 2
	// DefaultRetrievalK is the context size handed to the LLM.
	DefaultRetrievalK = 3
)

// KnowledgeBase owns zero-or-one open store. Load/CreateFromDocuments/Reset
// replace the open store wholesale; they must not run concurrently with
// reads.
type KnowledgeBase struct {
	dir       string
	threshold float64
	emb       embedder.Embedder
	logger    *slog.Logger
	store     Store

	// openStore is swapped in tests.
	openStore func(path string, dimension int) (Store, error)
}

// New creates a knowledge base persisting under dir. threshold is the
// default relevance-gate distance cutoff.
func New(dir string, threshold float64, emb embedder.Embedder, logger *slog.Logger) *KnowledgeBase {
	return &KnowledgeBase{
		dir:       dir,
		threshold: threshold,
		emb:       emb,
		logger:    logger.With("component", "kb"),
		openStore: func(path string, dimension int) (Store, error) {
			return OpenStore(path, dimension)
		},
	}
}

func (kb *KnowledgeBase) dbPath() string {
	return filepath.Join(kb.dir, dbFileName)
}

// Loaded reports whether a store is currently open.
func (kb *KnowledgeBase) Loaded() bool { return kb.store != nil }

// Exists reports whether a persisted store is present on disk.
func (kb *KnowledgeBase) Exists() bool {
	_, err := os.Stat(kb.dbPath())
	return err == nil
}

// Load opens the persisted store. On any failure — missing directory,
// corrupt file, empty index, or an embedding-model mismatch — it rebuilds
// from the bundled sample set instead. Load never fails into an unusable
// state: after a nil return there is always an open, populated store.
// Loading when already loaded replaces the handle; it never merges.
func (kb *KnowledgeBase) Load(ctx context.Context) error {
	if kb.store != nil {
		kb.store.Close()
		kb.store = nil
	}

	if err := os.MkdirAll(kb.dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}

	st, err := kb.openStore(kb.dbPath(), kb.emb.Dimension())
	if err != nil {
		kb.logger.Warn("failed to load vector database, rebuilding from samples", "error", err)
		return kb.rebuildSamples(ctx)
	}

	n, err := st.Count()
	if err != nil {
		st.Close()
		kb.logger.Warn("vector database unreadable, rebuilding from samples", "error", err)
		return kb.rebuildSamples(ctx)
	}

	model, err := st.GetMeta(metaEmbedModel)
	if err == nil && model != "" && model != kb.embedModelName() {
		st.Close()
		kb.logger.Warn("embedding model changed, rebuilding from samples",
			"stored", model, "configured", kb.embedModelName())
		return kb.rebuildSamples(ctx)
	}

	if n == 0 {
		kb.store = st
		kb.logger.Info("vector database empty, seeding sample knowledge")
		return kb.CreateFromDocuments(ctx, SampleDocuments())
	}

	kb.store = st
	kb.logger.Info("loaded vector database", "path", kb.dbPath(), "chunks", n)
	return nil
}

func (kb *KnowledgeBase) embedModelName() string {
	type named interface{ Model() string }
	if m, ok := kb.emb.(named); ok {
		return m.Model()
	}
	return ""
}

// rebuildSamples wipes the persisted directory and seeds the sample set.
func (kb *KnowledgeBase) rebuildSamples(ctx context.Context) error {
	if err := os.RemoveAll(kb.dir); err != nil {
		return fmt.Errorf("remove db directory: %w", err)
	}
	if err := os.MkdirAll(kb.dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	st, err := kb.openStore(kb.dbPath(), kb.emb.Dimension())
	if err != nil {
		return fmt.Errorf("create vector database: %w", err)
	}
	kb.store = st
	return kb.CreateFromDocuments(ctx, SampleDocuments())
}

// CreateFromDocuments replaces the index contents with the chunked, embedded
// input documents and persists them.
func (kb *KnowledgeBase) CreateFromDocuments(ctx context.Context, docs []Document) error {
	if err := kb.ensureOpen(); err != nil {
		return err
	}
	if err := kb.store.DeleteAll(); err != nil {
		return fmt.Errorf("clear vector database: %w", err)
	}

	chunks := splitDocuments(docs)
	kb.logger.Info("creating vector database", "documents", len(docs), "chunks", len(chunks))

	if err := kb.insertChunks(ctx, chunks); err != nil {
		return err
	}
	if err := kb.store.SetMeta(metaEmbedModel, kb.embedModelName()); err != nil {
		return fmt.Errorf("set meta: %w", err)
	}
	return nil
}

// AddDocuments chunks and appends documents to the existing index, loading
// it first if needed. It does not deduplicate: re-adding the same document
// creates duplicate chunks. Known duplication risk, kept intentionally so
// re-indexing stays possible.
func (kb *KnowledgeBase) AddDocuments(ctx context.Context, docs []Document) error {
	if kb.store == nil {
		if err := kb.Load(ctx); err != nil {
			return err
		}
	}
	return kb.insertChunks(ctx, splitDocuments(docs))
}

func (kb *KnowledgeBase) ensureOpen() error {
	if kb.store != nil {
		return nil
	}
	if err := os.MkdirAll(kb.dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	st, err := kb.openStore(kb.dbPath(), kb.emb.Dimension())
	if err != nil {
		return fmt.Errorf("open vector database: %w", err)
	}
	kb.store = st
	return nil
}

// insertChunks embeds chunk texts in batches and stores them.
func (kb *KnowledgeBase) insertChunks(ctx context.Context, chunks []Chunk) error {
	for i := 0; i < len(chunks); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[i:end]

		texts := make([]string, len(batch))
		for j, c := range batch {
			texts[j] = c.Text
		}
		embeddings, err := kb.emb.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunks: %w", err)
		}
		if err := kb.store.InsertChunks(batch, embeddings); err != nil {
			return fmt.Errorf("store chunks: %w", err)
		}
	}
	return nil
}

// HasRelevantInfo runs the relevance gate with the configured threshold.
func (kb *KnowledgeBase) HasRelevantInfo(ctx context.Context, query string) (bool, []Chunk, error) {
	return kb.HasRelevantInfoThreshold(ctx, query, kb.threshold)
}

// HasRelevantInfoThreshold searches for the top-2 nearest chunks and
// compares the best distance against threshold. The store returns L2
// distance, where lower means more similar, so the query is covered exactly
// when best < threshold. Inverting this comparison silently breaks routing.
func (kb *KnowledgeBase) HasRelevantInfoThreshold(ctx context.Context, query string, threshold float64) (bool, []Chunk, error) {
	if kb.store == nil {
		if err := kb.Load(ctx); err != nil {
			return false, nil, err
		}
	}

	vec, err := kb.emb.EmbedSingle(ctx, query)
	if err != nil {
		return false, nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := kb.store.Search(vec, gateK)
	if err != nil {
		return false, nil, fmt.Errorf("vector search: %w", err)
	}
	if len(results) == 0 {
		return false, nil, nil
	}

	relevant := results[0].Distance < threshold
	chunks := make([]Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return relevant, chunks, nil
}

// RelevantDocuments returns the top-k nearest chunks for LLM context,
// independent of the relevance gate.
func (kb *KnowledgeBase) RelevantDocuments(ctx context.Context, query string, k int) ([]Chunk, error) {
	if kb.store == nil {
		if err := kb.Load(ctx); err != nil {
			return nil, err
		}
	}
	if k <= 0 {
		k = DefaultRetrievalK
	}

	vec, err := kb.emb.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	results, err := kb.store.Search(vec, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	chunks := make([]Chunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}
	return chunks, nil
}

// Reset deletes the persisted storage entirely and rebuilds from the sample
// set. Destructive; used for recovery and demo resets.
func (kb *KnowledgeBase) Reset(ctx context.Context) error {
	if kb.store != nil {
		kb.store.Close()
		kb.store = nil
	}
	kb.logger.Info("resetting vector database", "path", kb.dir)
	return kb.rebuildSamples(ctx)
}

// Count returns the number of stored chunks, loading the store if needed.
func (kb *KnowledgeBase) Count(ctx context.Context) (int, error) {
	if kb.store == nil {
		if err := kb.Load(ctx); err != nil {
			return 0, err
		}
	}
	return kb.store.Count()
}

// Close releases the underlying store.
func (kb *KnowledgeBase) Close() error {
	if kb.store == nil {
		return nil
	}
	err := kb.store.Close()
	kb.store = nil
	return err
}
