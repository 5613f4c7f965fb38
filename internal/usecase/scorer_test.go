package usecase

import (
	"testing"

	"github.com/authentika/go-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFakeThreshold = 0.7

func testProduct(price string, brand string) *domain.Product {
	product := domain.NewProduct("AirMax Sneakers", "Running shoes", nil, brand)
	if price != "" {
		d, err := decimal.NewFromString(price)
		if err != nil {
			panic(err)
		}
		product.Price = &d
	}

	return product
}

func testNeighbor(id int64, price string, brand string, similarity float64) domain.SimilarityMatch {
	match := domain.SimilarityMatch{
		ProductID:  id,
		Title:      "Neighbor",
		Brand:      brand,
		Similarity: similarity,
	}
	if price != "" {
		d, err := decimal.NewFromString(price)
		if err != nil {
			panic(err)
		}
		match.Price = &d
	}

	return match
}

func TestScoreAuthenticity_NoNeighbors(t *testing.T) {
	score, reasoning := ScoreAuthenticity(testProduct("10", "Nike"), nil, testFakeThreshold)

	assert.Equal(t, 0.5, score)
	assert.Equal(t, "No similar products found for comparison.", reasoning)
}

func TestScoreAuthenticity_SuspiciouslyCheapUnknownBrand(t *testing.T) {
	neighbors := []domain.SimilarityMatch{
		testNeighbor(1, "20", "Adidas", 0.9),
		testNeighbor(2, "20", "Puma", 0.8),
		testNeighbor(3, "20", "Reebok", 0.7),
	}

	score, reasoning := ScoreAuthenticity(testProduct("5", "Nike"), neighbors, testFakeThreshold)

	// Ценовой фактор: 0.8 + 0.75*0.2 = 0.95, брендовый: 0.8
	assert.InDelta(t, 0.89, score, 1e-9)
	assert.Contains(t, reasoning, "Price ($5.00) is significantly lower than average ($20.00), which is suspicious.")
	assert.Contains(t, reasoning, "Brand 'nike' differs from most similar products, which is suspicious.")
	assert.Contains(t, reasoning, "shows significant indicators of being potentially counterfeit with a fake score of 0.89.")
}

func TestScoreAuthenticity_ConsistentProduct(t *testing.T) {
	neighbors := []domain.SimilarityMatch{
		testNeighbor(1, "100", "Nike", 0.95),
		testNeighbor(2, "100", "Nike", 0.9),
	}

	score, reasoning := ScoreAuthenticity(testProduct("100", "Nike"), neighbors, testFakeThreshold)

	// Ценовой фактор: 0.3 - 0*0.3 = 0.3, брендовый: 0.2
	assert.InDelta(t, 0.26, score, 1e-9)
	assert.Contains(t, reasoning, "Price ($100.00) is within reasonable range of average ($100.00).")
	assert.Contains(t, reasoning, "Brand 'nike' is consistent with similar products.")
	assert.Contains(t, reasoning, "appears to be authentic with a fake score of 0.26.")
}

func TestScoreAuthenticity_PriceBoundaries(t *testing.T) {
	neighbors := []domain.SimilarityMatch{
		testNeighbor(1, "100", "Nike", 0.9),
	}

	t.Run("exactly half of average is not suspicious", func(t *testing.T) {
		_, reasoning := ScoreAuthenticity(testProduct("50", "Nike"), neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "is within reasonable range")
	})

	t.Run("just below half of average is suspicious", func(t *testing.T) {
		_, reasoning := ScoreAuthenticity(testProduct("49.99", "Nike"), neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "significantly lower than average")
	})

	t.Run("exactly double of average is not premium", func(t *testing.T) {
		_, reasoning := ScoreAuthenticity(testProduct("200", "Nike"), neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "is within reasonable range")
	})

	t.Run("just above double of average is premium or gouging", func(t *testing.T) {
		_, reasoning := ScoreAuthenticity(testProduct("200.01", "Nike"), neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "significantly higher than average")
	})
}

func TestScoreAuthenticity_ExtremeLowPriceStaysBelowCap(t *testing.T) {
	neighbors := []domain.SimilarityMatch{
		testNeighbor(1, "1000", "Nike", 0.9),
	}

	// Разрыв цены ниже средней не превышает единицу, поэтому фактор
	// остаётся строго меньше 1.0: 0.8 + 0.999*0.2 = 0.9998
	score, _ := ScoreAuthenticity(testProduct("1", "Nike"), neighbors, testFakeThreshold)

	// 0.6*0.9998 + 0.4*0.2 = 0.67988
	assert.InDelta(t, 0.67988, score, 1e-9)
}

func TestScoreAuthenticity_BrandRatioBoundaries(t *testing.T) {
	product := testProduct("100", "Nike")

	t.Run("ratio 0.8 counts as consistent", func(t *testing.T) {
		neighbors := []domain.SimilarityMatch{
			testNeighbor(1, "100", "Nike", 0.9),
			testNeighbor(2, "100", "Nike", 0.9),
			testNeighbor(3, "100", "Nike", 0.9),
			testNeighbor(4, "100", "Nike", 0.9),
			testNeighbor(5, "100", "Adidas", 0.9),
		}

		_, reasoning := ScoreAuthenticity(product, neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "is consistent with similar products")
	})

	t.Run("ratio 0.4 counts as partial", func(t *testing.T) {
		neighbors := []domain.SimilarityMatch{
			testNeighbor(1, "100", "Nike", 0.9),
			testNeighbor(2, "100", "Nike", 0.9),
			testNeighbor(3, "100", "Adidas", 0.9),
			testNeighbor(4, "100", "Puma", 0.9),
			testNeighbor(5, "100", "Reebok", 0.9),
		}

		_, reasoning := ScoreAuthenticity(product, neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "appears in some similar products but not all")
	})

	t.Run("ratio below 0.4 counts as divergent", func(t *testing.T) {
		neighbors := []domain.SimilarityMatch{
			testNeighbor(1, "100", "Nike", 0.9),
			testNeighbor(2, "100", "Adidas", 0.9),
			testNeighbor(3, "100", "Puma", 0.9),
		}

		_, reasoning := ScoreAuthenticity(product, neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "differs from most similar products")
	})
}

func TestScoreAuthenticity_BrandMatchIsCaseInsensitive(t *testing.T) {
	neighbors := []domain.SimilarityMatch{
		testNeighbor(1, "100", "NIKE", 0.9),
	}

	_, reasoning := ScoreAuthenticity(testProduct("100", "nike"), neighbors, testFakeThreshold)

	assert.Contains(t, reasoning, "Brand 'nike' is consistent with similar products.")
}

func TestScoreAuthenticity_MissingInformation(t *testing.T) {
	t.Run("product without price", func(t *testing.T) {
		neighbors := []domain.SimilarityMatch{testNeighbor(1, "100", "Nike", 0.9)}

		score, reasoning := ScoreAuthenticity(testProduct("", "Nike"), neighbors, testFakeThreshold)

		// 0.6*0.5 + 0.4*0.2 = 0.38
		assert.InDelta(t, 0.38, score, 1e-9)
		assert.Contains(t, reasoning, "No price information available for comparison.")
	})

	t.Run("product with zero price", func(t *testing.T) {
		neighbors := []domain.SimilarityMatch{testNeighbor(1, "100", "Nike", 0.9)}

		score, reasoning := ScoreAuthenticity(testProduct("0", "Nike"), neighbors, testFakeThreshold)

		// Нулевая цена вырождается в «цены нет», а не в ошибку
		assert.InDelta(t, 0.38, score, 1e-9)
		assert.Contains(t, reasoning, "No price information available for comparison.")
	})

	t.Run("neighbors without prices", func(t *testing.T) {
		neighbors := []domain.SimilarityMatch{testNeighbor(1, "", "Nike", 0.9)}

		_, reasoning := ScoreAuthenticity(testProduct("100", "Nike"), neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "No valid price information available for comparison.")
	})

	t.Run("product without brand", func(t *testing.T) {
		neighbors := []domain.SimilarityMatch{testNeighbor(1, "100", "Nike", 0.9)}

		_, reasoning := ScoreAuthenticity(testProduct("100", ""), neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "No brand information provided for comparison.")
	})

	t.Run("neighbors without brands", func(t *testing.T) {
		neighbors := []domain.SimilarityMatch{testNeighbor(1, "100", "", 0.9)}

		_, reasoning := ScoreAuthenticity(testProduct("100", "Nike"), neighbors, testFakeThreshold)
		assert.Contains(t, reasoning, "No brand information available for comparison.")
	})
}

func TestScoreAuthenticity_ScoreStaysInRange(t *testing.T) {
	products := []*domain.Product{
		testProduct("0.01", "Unknown"),
		testProduct("100000", "Nike"),
		testProduct("", ""),
	}
	neighbors := []domain.SimilarityMatch{
		testNeighbor(1, "50", "Nike", 0.9),
		testNeighbor(2, "55", "Adidas", 0.8),
	}

	for _, product := range products {
		score, _ := ScoreAuthenticity(product, neighbors, testFakeThreshold)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 1.0)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, ClampScore(-0.3))
	assert.Equal(t, 1.0, ClampScore(1.7))
	assert.Equal(t, 0.42, ClampScore(0.42))
}
