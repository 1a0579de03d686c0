package kb

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wrench/internal/log"
)

type fakeEmbedder struct {
	dim   int
	calls int
}

// Embed maps texts to keyword-frequency vectors so nearest-neighbor order
// is predictable: texts about the same part land close together.
func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	out := make([][]float32, len(texts))
	for i, t := range texts {
		lower := strings.ToLower(t)
		vec := make([]float32, f.dim)
		vec[0] = float32(strings.Count(lower, "headlight"))
		vec[1] = float32(strings.Count(lower, "brake"))
		vec[2] = float32(strings.Count(lower, "battery"))
		vec[3] = float32(len(t)%7) * 0.01
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *fakeEmbedder) Dimension() int { return f.dim }
func (f *fakeEmbedder) Model() string  { return "fake-model" }

type fakeStore struct {
	chunks    []Chunk
	vectors   [][]float32
	meta      map[string]string
	results   []ScoredChunk
	searchErr error
	closed    bool
	cleared   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{meta: map[string]string{}}
}

func (s *fakeStore) InsertChunks(chunks []Chunk, embeddings [][]float32) error {
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, embeddings...)
	return nil
}

// Search returns the preset results when given, otherwise a real
// nearest-neighbor scan over the inserted vectors (squared L2, ascending).
func (s *fakeStore) Search(queryEmbedding []float32, k int) ([]ScoredChunk, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if s.results != nil {
		if len(s.results) > k {
			return s.results[:k], nil
		}
		return s.results, nil
	}

	out := make([]ScoredChunk, 0, len(s.vectors))
	for i, vec := range s.vectors {
		var d float64
		for j := range vec {
			diff := float64(vec[j] - queryEmbedding[j])
			d += diff * diff
		}
		out = append(out, ScoredChunk{Chunk: s.chunks[i], Distance: d})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Distance < out[b].Distance })
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (s *fakeStore) Count() (int, error) { return len(s.chunks), nil }

func (s *fakeStore) GetMeta(key string) (string, error) { return s.meta[key], nil }
func (s *fakeStore) SetMeta(key, value string) error {
	s.meta[key] = value
	return nil
}
func (s *fakeStore) DeleteAll() error {
	s.chunks = nil
	s.vectors = nil
	s.cleared = true
	return nil
}
func (s *fakeStore) Close() error {
	s.closed = true
	return nil
}

func newTestKB(t *testing.T, st *fakeStore, threshold float64) *KnowledgeBase {
	t.Helper()
	knowledge := New(t.TempDir(), threshold, &fakeEmbedder{dim: 4}, log.NewNop())
	knowledge.openStore = func(path string, dimension int) (Store, error) {
		return st, nil
	}
	return knowledge
}

func scored(distance float64, text string) ScoredChunk {
	return ScoredChunk{Chunk: Chunk{Text: text}, Distance: distance}
}

func TestRelevanceGateBelowThreshold(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "seed"}}
	st.results = []ScoredChunk{scored(0.4, "headlight fix"), scored(0.9, "brake fix")}

	knowledge := newTestKB(t, st, 0.65)

	relevant, chunks, err := knowledge.HasRelevantInfo(context.Background(), "headlight out")
	require.NoError(t, err)
	assert.True(t, relevant)
	require.Len(t, chunks, 2)
	assert.Equal(t, "headlight fix", chunks[0].Text)
}

func TestRelevanceGateAboveThreshold(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "seed"}}
	st.results = []ScoredChunk{scored(0.8, "unrelated"), scored(1.2, "also unrelated")}

	knowledge := newTestKB(t, st, 0.65)

	relevant, chunks, err := knowledge.HasRelevantInfo(context.Background(), "quantum physics")
	require.NoError(t, err)
	assert.False(t, relevant)
	// Near misses are still reported so callers can log them.
	assert.Len(t, chunks, 2)
}

func TestRelevanceGateBoundaryIsNotRelevant(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "seed"}}
	st.results = []ScoredChunk{scored(0.65, "exactly at threshold")}

	knowledge := newTestKB(t, st, 0.65)

	relevant, _, err := knowledge.HasRelevantInfo(context.Background(), "edge case")
	require.NoError(t, err)
	assert.False(t, relevant)
}

func TestRelevanceGateEmptyStore(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "seed"}}

	knowledge := newTestKB(t, st, 0.65)

	relevant, chunks, err := knowledge.HasRelevantInfo(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, relevant)
	assert.Nil(t, chunks)
}

func TestRelevanceGateInspectsTopTwo(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "seed"}}
	st.results = []ScoredChunk{scored(0.1, "a"), scored(0.2, "b"), scored(0.3, "c")}

	knowledge := newTestKB(t, st, 0.65)

	_, chunks, err := knowledge.HasRelevantInfo(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestRelevantDocumentsDefaultK(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "seed"}}
	st.results = []ScoredChunk{scored(0.1, "a"), scored(0.2, "b"), scored(0.3, "c"), scored(0.4, "d")}

	knowledge := newTestKB(t, st, 0.65)

	chunks, err := knowledge.RelevantDocuments(context.Background(), "anything", 0)
	require.NoError(t, err)
	assert.Len(t, chunks, DefaultRetrievalK)
}

func TestCreateFromDocumentsClearsAndStores(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "stale"}}

	knowledge := newTestKB(t, st, 0.65)

	docs := []Document{{Text: "new knowledge", Metadata: map[string]string{"category": "test"}}}
	require.NoError(t, knowledge.CreateFromDocuments(context.Background(), docs))

	assert.True(t, st.cleared)
	require.Len(t, st.chunks, 1)
	assert.Equal(t, "new knowledge", st.chunks[0].Text)
	assert.Equal(t, "fake-model", st.meta["embedding_model"])
}

func TestLoadSeedsSamplesWhenEmpty(t *testing.T) {
	st := newFakeStore()

	knowledge := newTestKB(t, st, 0.65)

	require.NoError(t, knowledge.Load(context.Background()))
	assert.True(t, knowledge.Loaded())

	n, err := knowledge.Count(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, len(SampleDocuments()))
}

func TestAddDocumentsAppends(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "existing"}}

	knowledge := newTestKB(t, st, 0.65)

	require.NoError(t, knowledge.AddDocuments(context.Background(), []Document{{Text: "extra"}}))
	assert.Len(t, st.chunks, 2)
	assert.False(t, st.cleared)
}

func TestRelevanceGateThresholdMonotonic(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "seed"}}
	st.results = []ScoredChunk{scored(0.5, "hit")}

	knowledge := newTestKB(t, st, 0.65)
	ctx := context.Background()

	strict, _, err := knowledge.HasRelevantInfoThreshold(ctx, "q", 0.3)
	require.NoError(t, err)
	loose, _, err := knowledge.HasRelevantInfoThreshold(ctx, "q", 0.9)
	require.NoError(t, err)

	assert.False(t, strict)
	assert.True(t, loose, "raising the threshold must never lose relevance")
}

func TestCreateThenRetrieveRoundTrip(t *testing.T) {
	st := newFakeStore()
	knowledge := newTestKB(t, st, 0.65)
	ctx := context.Background()

	docs := []Document{
		{Text: "Headlight bulbs burn out and need replacement.", Metadata: map[string]string{"part": "headlight"}},
		{Text: "Brake pads wear down with use.", Metadata: map[string]string{"part": "brakes"}},
		{Text: "Coolant keeps the engine from overheating.", Metadata: map[string]string{"part": "radiator"}},
	}
	require.NoError(t, knowledge.CreateFromDocuments(ctx, docs))

	chunks, err := knowledge.RelevantDocuments(ctx, "headlight stopped working", 1)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, docs[0].Text, chunks[0].Text)
	assert.Equal(t, "headlight", chunks[0].Metadata["part"])
}

func TestHeadlightQueryRelevantAgainstSamples(t *testing.T) {
	st := newFakeStore()
	knowledge := newTestKB(t, st, 0.65)
	ctx := context.Background()

	require.NoError(t, knowledge.CreateFromDocuments(ctx, SampleDocuments()))

	relevant, chunks, err := knowledge.HasRelevantInfo(ctx, "why are my headlights not working")
	require.NoError(t, err)
	assert.True(t, relevant)
	require.NotEmpty(t, chunks)
	assert.Equal(t, "Headlight", chunks[0].Metadata["part"])

	docs, err := knowledge.RelevantDocuments(ctx, "why are my headlights not working", 3)
	require.NoError(t, err)
	require.NotEmpty(t, docs)
	assert.Equal(t, "Headlight", docs[0].Metadata["part"])
}

func TestCloseReleasesStore(t *testing.T) {
	st := newFakeStore()
	st.chunks = []Chunk{{Text: "seed"}}

	knowledge := newTestKB(t, st, 0.65)
	require.NoError(t, knowledge.Load(context.Background()))
	require.NoError(t, knowledge.Close())

	assert.True(t, st.closed)
	assert.False(t, knowledge.Loaded())
}
