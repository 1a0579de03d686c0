package kb

// Chunking parameters. Overlap keeps local context intact across chunk
// boundaries.
const (
	ChunkSize    = 1000
	ChunkOverlap = 200
)

// SplitText splits text into windows of at most size runes, with the last
// overlap runes of each window repeated at the start of the next. Texts that
// fit in one window are returned unchanged.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap >= size {
		overlap = size - 1
	}

	runes := []rune(text)
	if len(runes) <= size {
		if len(runes) == 0 {
			return nil
		}
		return []string{text}
	}

	step := size - overlap
	var parts []string
	for i := 0; i < len(runes); i += step {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[i:end]))
		if end == len(runes) {
			break
		}
	}
	return parts
}

// splitDocuments chunks each document, carrying its metadata onto every
// chunk.
func splitDocuments(docs []Document) []Chunk {
	var chunks []Chunk
	for _, d := range docs {
		for _, part := range SplitText(d.Text, ChunkSize, ChunkOverlap) {
			meta := make(map[string]string, len(d.Metadata))
			for k, v := range d.Metadata {
				meta[k] = v
			}
			chunks = append(chunks, Chunk{Text: part, Metadata: meta})
		}
	}
	return chunks
}
