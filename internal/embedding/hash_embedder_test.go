package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEmbedder_Deterministic(t *testing.T) {
	embedder := NewHashEmbedder(384)

	first := embedder.Embed("Title: AirMax Sneakers. Description: Running shoes. Brand: Nike.")
	second := embedder.Embed("Title: AirMax Sneakers. Description: Running shoes. Brand: Nike.")

	assert.Equal(t, first, second)
}

func TestHashEmbedder_DifferentTextsDiffer(t *testing.T) {
	embedder := NewHashEmbedder(64)

	first := embedder.Embed("product one")
	second := embedder.Embed("product two")

	assert.NotEqual(t, first, second)
}

func TestHashEmbedder_UnitNorm(t *testing.T) {
	embedder := NewHashEmbedder(384)

	vector := embedder.Embed("some product text")
	require.Len(t, vector, 384)

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}

	assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-4)
}

func TestHashEmbedder_EmptyTextZeroVector(t *testing.T) {
	embedder := NewHashEmbedder(16)

	vector := embedder.Embed("")
	require.Len(t, vector, 16)

	for _, v := range vector {
		assert.Zero(t, v)
	}
}

func TestHashEmbedder_Dimension(t *testing.T) {
	assert.Equal(t, 128, NewHashEmbedder(128).Dimension())
}

func TestHashEmbedder_BatchPreservesPositions(t *testing.T) {
	embedder := NewHashEmbedder(32)

	vectors := embedder.EmbedBatch([]string{"first", "", "third"})
	require.Len(t, vectors, 3)

	assert.Equal(t, embedder.Embed("first"), vectors[0])
	assert.Equal(t, make([]float32, 32), vectors[1])
	assert.Equal(t, embedder.Embed("third"), vectors[2])
}
