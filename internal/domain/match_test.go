package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortMatches(t *testing.T) {
	matches := []SimilarityMatch{
		{ProductID: 5, Similarity: 0.7},
		{ProductID: 3, Similarity: 0.9},
		{ProductID: 4, Similarity: 0.9},
		{ProductID: 1, Similarity: 0.9},
		{ProductID: 2, Similarity: 0.8},
	}

	SortMatches(matches)

	ids := make([]int64, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ProductID)
	}

	// Убывание близости, при равенстве — возрастание ID
	assert.Equal(t, []int64{1, 3, 4, 2, 5}, ids)
}

func TestSortMatches_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		SortMatches(nil)
		SortMatches([]SimilarityMatch{})
	})
}

func TestSimilarityMatchPriceFloat(t *testing.T) {
	var match SimilarityMatch

	_, ok := match.PriceFloat()
	assert.False(t, ok)

	price := decimal.NewFromFloat(19.99)
	match.Price = &price

	value, ok := match.PriceFloat()
	require.True(t, ok)
	assert.InDelta(t, 19.99, value, 1e-9)
}

func TestProductEmbeddingText(t *testing.T) {
	product := NewProduct("AirMax Sneakers", "Running shoes", nil, "Nike")

	assert.Equal(t, "Title: AirMax Sneakers. Description: Running shoes. Brand: Nike.", product.EmbeddingText())
}
