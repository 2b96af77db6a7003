package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextShortInputIsSingleChunk(t *testing.T) {
	chunks, err := ChunkText("short resume", 100, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"short resume"}, chunks)
}

func TestChunkTextEmptyInput(t *testing.T) {
	chunks, err := ChunkText("", 100, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, chunks)
}

func TestChunkTextInvalidArguments(t *testing.T) {
	_, err := ChunkText("text", 0, 0)
	assert.Error(t, err)

	_, err = ChunkText("text", 10, 10)
	assert.Error(t, err, "overlap equal to chunk size can never advance")

	_, err = ChunkText("text", 10, 15)
	assert.Error(t, err)

	_, err = ChunkText("text", 10, -1)
	assert.Error(t, err)
}

func TestChunkTextNoOverlapPartitionsExactly(t *testing.T) {
	text := strings.Repeat("x", 95)
	chunks, err := ChunkText(text, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, text, strings.Join(chunks, ""), "without overlap the chunks partition the input")
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 10)
	}
}

func TestChunkTextOverlapIsSharedBetweenNeighbors(t *testing.T) {
	text := strings.Repeat("x", 100)
	overlap := 5
	chunks, err := ChunkText(text, 20, overlap)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		require.GreaterOrEqual(t, len(prev), overlap)
		assert.Equal(t, prev[len(prev)-overlap:], cur[:overlap], "chunk %d must start with the tail of chunk %d", i, i-1)
	}
}

func TestChunkTextPrefersSentenceBoundary(t *testing.T) {
	text := "This is the opening sentence right. Next one continues with more words here."
	chunks, err := ChunkText(text, 40, 0)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)
	assert.True(t, strings.HasSuffix(chunks[0], "."), "cut should land just after the sentence boundary, got %q", chunks[0])
}

func TestChunkTextTerminatesOnPathologicalInput(t *testing.T) {
	// Tiny window with boundary cuts that barely advance. The guard must
	// still walk off the end in a bounded number of steps.
	full := "A. B. C."
	chunks, err := ChunkText(full, 4, 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(chunks), 10)
	require.NotEmpty(t, chunks)

	// Every chunk must appear in order, so the walk covered the whole input.
	pos := 0
	for _, c := range chunks {
		idx := strings.Index(full[pos:], c)
		require.GreaterOrEqual(t, idx, 0, "chunk %q not found in remaining input", c)
		pos += idx
	}
	assert.True(t, strings.HasSuffix(chunks[len(chunks)-1], full[len(full)-1:]))
}
