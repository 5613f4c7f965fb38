package narrative

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// Simulator — встроенная замена внешней модели для окружений без
// доступа к LLM API. Отдаёт заготовленные JSON-ответы, форма которых
// совпадает с форматом, требуемым от настоящей модели.
type Simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(seed int64) *Simulator {
	return &Simulator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Invoke генерирует симулированный ответ. Ошибки невозможны.
func (s *Simulator) Invoke(_ context.Context, prompt string) (string, error) {
	lower := strings.ToLower(prompt)

	if strings.Contains(lower, "authenticity") || strings.Contains(lower, "counterfeit") {
		return s.generateProductAnalysis(), nil
	}
	if strings.Contains(lower, "json") {
		return s.generateJSONResponse(), nil
	}

	return "I'm a simulated LLM response. For this demo, I'm providing pre-written answers instead of actual AI generation.", nil
}

func (s *Simulator) generateProductAnalysis() string {
	s.mu.Lock()
	score := 0.2 + s.rng.Float64()*0.7
	s.mu.Unlock()

	if score > 0.7 {
		return fakeProductResponse(score)
	}

	return authenticProductResponse(score)
}

func authenticProductResponse(score float64) string {
	return fmt.Sprintf(`{
    "score": %.2f,
    "reasoning": "The product appears to be authentic based on consistent branding, appropriate pricing compared to similar products, and detailed product description that matches official specifications.",
    "warning_indicators": [],
    "recommendations": [
        "Verify the seller's ratings and history",
        "Check product reviews from verified purchasers",
        "Confirm the product has proper warranty information"
    ]
}`, score)
}

func fakeProductResponse(score float64) string {
	return fmt.Sprintf(`{
    "score": %.2f,
    "reasoning": "The product shows several signs of being potentially counterfeit, including significantly lower price than authentic versions, inconsistent branding elements, and vague product specifications that don't match official documentation.",
    "warning_indicators": [
        "Price is substantially below market average",
        "Brand name has subtle misspellings or variations",
        "Description contains grammatical errors or inconsistencies",
        "Images appear to be low quality or edited"
    ],
    "recommendations": [
        "Avoid purchasing this product",
        "Report the listing to the marketplace",
        "Look for authorized sellers of this brand",
        "Consider alternatives from verified sellers"
    ]
}`, score)
}

func (s *Simulator) generateJSONResponse() string {
	return `{
    "analysis": "completed",
    "score": 0.75,
    "confidence": "medium",
    "details": {
        "price_analysis": "significantly below market average",
        "description_quality": "poor",
        "brand_consistency": "suspicious",
        "overall_assessment": "likely counterfeit"
    }
}`
}
