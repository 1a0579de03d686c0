package kb

// Document is a raw knowledge entry before chunking. Metadata keys in use:
// category, part, issue, source.
type Document struct {
	Text     string
	Metadata map[string]string
}

// Chunk is the stored unit of retrieval: a bounded slice of a document with
// its metadata. Immutable once stored.
type Chunk struct {
	ID       int64
	Text     string
	Metadata map[string]string
}

// ScoredChunk pairs a chunk with its distance to a query embedding. Lower
// distance means more similar.
type ScoredChunk struct {
	Chunk    Chunk
	Distance float64
}
