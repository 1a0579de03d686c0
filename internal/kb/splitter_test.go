package kb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortTextSingleChunk(t *testing.T) {
	parts := SplitText("short text", 1000, 200)
	require.Len(t, parts, 1)
	assert.Equal(t, "short text", parts[0])
}

func TestSplitTextEmpty(t *testing.T) {
	assert.Nil(t, SplitText("", 1000, 200))
}

func TestSplitTextWindowsAndOverlap(t *testing.T) {
	text := "abcdefghijklmnopqrst" // 20 runes
	parts := SplitText(text, 10, 3)

	require.Equal(t, []string{"abcdefghij", "hijklmnopq", "opqrst"}, parts)

	// Each boundary repeats the previous window's tail.
	for i := 1; i < len(parts); i++ {
		tail := parts[i-1][len(parts[i-1])-3:]
		assert.True(t, strings.HasPrefix(parts[i], tail))
	}
}

func TestSplitTextChunkBound(t *testing.T) {
	long := strings.Repeat("word and more text ", 200)
	for _, p := range SplitText(long, ChunkSize, ChunkOverlap) {
		assert.LessOrEqual(t, len([]rune(p)), ChunkSize)
		assert.NotEmpty(t, p)
	}
}

func TestSplitTextOverlapClamped(t *testing.T) {
	// overlap >= size must not loop forever.
	parts := SplitText("abcdefghij", 4, 10)
	assert.NotEmpty(t, parts)
}

func TestSplitDocumentsCopiesMetadata(t *testing.T) {
	doc := Document{
		Text:     strings.Repeat("x", 2500),
		Metadata: map[string]string{"category": "electrical"},
	}
	chunks := splitDocuments([]Document{doc})
	require.Greater(t, len(chunks), 1)

	chunks[0].Metadata["category"] = "mutated"
	assert.Equal(t, "electrical", chunks[1].Metadata["category"])
	assert.Equal(t, "electrical", doc.Metadata["category"])
}

func TestSampleDocumentsCoverage(t *testing.T) {
	docs := SampleDocuments()
	require.Len(t, docs, 12)
	for _, d := range docs {
		assert.NotEmpty(t, d.Text)
		assert.NotEmpty(t, d.Metadata["category"])
	}
}
