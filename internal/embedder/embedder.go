// Package embedder turns text into vectors for the knowledge base.
package embedder

import "context"

// Embedder produces embedding vectors for batches of text. Implementations
// must return one vector per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
	// Dimension is the length of the vectors this embedder produces. The
	// store's vector table is declared with this size.
	Dimension() int
}
