package usecase

import (
	"fmt"
	"strings"

	"github.com/authentika/go-backend/internal/domain"
)

// Эмпирические константы оценки. Значения сохраняются как есть ради
// поведенческой совместимости с накопленной статистикой порогов.
const (
	priceWeight = 0.6
	brandWeight = 0.4

	neutralFactor = 0.5

	lowPriceRatio  = 0.5 // цена ниже половины средней — подозрительно дёшево
	highPriceRatio = 2.0 // цена выше удвоенной средней — подозрительно дорого

	highBrandRatio    = 0.8
	partialBrandRatio = 0.4
)

const noNeighborsReasoning = "No similar products found for comparison."

// ScoreAuthenticity вычисляет эвристическую оценку подлинности товара
// по ценовой и брендовой статистике его соседей.
// Возвращает оценку в [0, 1] (0 — подлинный, 1 — подделка) и текстовое
// обоснование. Пустой список соседей — канонический сигнал
// «недостаточно данных»: ровно 0.5 с фиксированной формулировкой.
func ScoreAuthenticity(product *domain.Product, neighbors []domain.SimilarityMatch, fakeThreshold float64) (float64, string) {
	if len(neighbors) == 0 {
		return neutralFactor, noNeighborsReasoning
	}

	priceFactor, priceAnalysis := scorePriceFactor(product, neighbors)
	brandFactor, brandAnalysis := scoreBrandFactor(product, neighbors)

	score := priceWeight*priceFactor + brandWeight*brandFactor

	reasoning := priceAnalysis + " " + brandAnalysis
	if score >= fakeThreshold {
		reasoning += fmt.Sprintf(" Overall, this product shows significant indicators of being potentially counterfeit with a fake score of %.2f.", score)
	} else {
		reasoning += fmt.Sprintf(" Overall, this product appears to be authentic with a fake score of %.2f.", score)
	}

	return score, reasoning
}

// scorePriceFactor оценивает ценовой фактор (вес 0.6).
// Три режима в порядке приоритета: подозрительно дёшево, подозрительно
// дорого (меньший вес — чаще премиум-версия, чем подделка), разумный
// диапазон. Границы строгие: цена ровно в 0.5x или 2.0x средней
// попадает в разумный диапазон.
func scorePriceFactor(product *domain.Product, neighbors []domain.SimilarityMatch) (float64, string) {
	price, ok := product.PriceFloat()
	if !ok || price <= 0 {
		return neutralFactor, "No price information available for comparison."
	}

	var validPrices []float64
	for _, neighbor := range neighbors {
		if p, ok := neighbor.PriceFloat(); ok && p > 0 {
			validPrices = append(validPrices, p)
		}
	}

	if len(validPrices) == 0 {
		return neutralFactor, "No valid price information available for comparison."
	}

	var sum float64
	for _, p := range validPrices {
		sum += p
	}
	avgPrice := sum / float64(len(validPrices))

	// Фильтр положительных цен гарантирует avgPrice > 0,
	// но деление всё равно защищено.
	disparity := 1.0
	if avgPrice > 0 {
		disparity = abs(price-avgPrice) / avgPrice
	}

	switch {
	case price < avgPrice*lowPriceRatio:
		factor := 0.8 + disparity*0.2
		if factor > 1.0 {
			factor = 1.0
		}
		return factor, fmt.Sprintf("Price ($%.2f) is significantly lower than average ($%.2f), which is suspicious.", price, avgPrice)
	case price > avgPrice*highPriceRatio:
		return 0.6, fmt.Sprintf("Price ($%.2f) is significantly higher than average ($%.2f), which could indicate premium version or potential price gouging.", price, avgPrice)
	default:
		factor := 0.3 - disparity*0.3
		if factor < 0.0 {
			factor = 0.0
		}
		return factor, fmt.Sprintf("Price ($%.2f) is within reasonable range of average ($%.2f).", price, avgPrice)
	}
}

// scoreBrandFactor оценивает брендовый фактор (вес 0.4) по доле соседей
// с точно совпадающим брендом (без учёта регистра).
func scoreBrandFactor(product *domain.Product, neighbors []domain.SimilarityMatch) (float64, string) {
	brand := strings.ToLower(product.Brand)
	if brand == "" {
		return neutralFactor, "No brand information provided for comparison."
	}

	var neighborBrands []string
	for _, neighbor := range neighbors {
		if neighbor.Brand != "" {
			neighborBrands = append(neighborBrands, strings.ToLower(neighbor.Brand))
		}
	}

	if len(neighborBrands) == 0 {
		return neutralFactor, "No brand information available for comparison."
	}

	matches := 0
	for _, b := range neighborBrands {
		if b == brand {
			matches++
		}
	}

	ratio := float64(matches) / float64(len(neighborBrands))
	switch {
	case ratio >= highBrandRatio:
		return 0.2, fmt.Sprintf("Brand '%s' is consistent with similar products.", brand)
	case ratio >= partialBrandRatio:
		return 0.4, fmt.Sprintf("Brand '%s' appears in some similar products but not all.", brand)
	default:
		return 0.8, fmt.Sprintf("Brand '%s' differs from most similar products, which is suspicious.", brand)
	}
}

// ClampScore ограничивает оценку инвариантным диапазоном [0, 1].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
