package narrative

import (
	"fmt"
	"strings"

	"github.com/authentika/go-backend/internal/domain"
	"github.com/authentika/go-backend/internal/usecase"
)

// promptNeighborLimit ограничивает число соседей в промпте: модель
// работает лучше с тремя ближайшими, остальные только зашумляют контекст.
const promptNeighborLimit = 3

const systemPrompt = `You are a specialized product authenticity analyzer for marketplace products. Your goal is to determine
if a product is likely authentic or potentially counterfeit based on the provided information.

For each product, you'll receive:
1. Product title
2. Product description
3. Price
4. Brand
5. Similar products from the database
6. Initial authenticity score

Analyze this information to identify potential signs of counterfeit products, such as:
- Significantly lower prices compared to similar authentic products
- Inconsistent or vague product descriptions
- Misspellings or grammatical errors in product titles or descriptions
- Brand inconsistencies
- Generic product images or descriptions

Provide your analysis in JSON format with the following fields:
- score: A value between 0.0 (certainly authentic) and 1.0 (certainly fake)
- reasoning: Your detailed reasoning for the score
- warning_indicators: List of specific red flags that indicate potential counterfeiting
- recommendations: List of recommendations for the user

Base your analysis on factual patterns rather than speculation. If information is insufficient,
indicate this in your reasoning.`

const analysisPromptTemplate = `Analyze the following marketplace product for authenticity:

PRODUCT DETAILS:
Title: %s
Description: %s
Price: $%.2f
Brand: %s

INITIAL ANALYSIS:
Initial Score: %.2f (0.0 = certainly authentic, 1.0 = certainly fake)
Initial Reasoning: %s

SIMILAR PRODUCTS FOR COMPARISON:
%s

Based on all this information, provide a comprehensive analysis of whether this product is authentic or potentially counterfeit.

Analyze:
1. Price comparison with similar products
2. Brand consistency
3. Description quality and accuracy
4. Any red flags in the product details

Format your response as JSON with these fields:
- score: A value between 0.0 (certainly authentic) and 1.0 (certainly fake)
- reasoning: Your detailed reasoning for the score
- warning_indicators: List of specific red flags that indicate potential counterfeiting
- recommendations: List of recommendations for the user

JSON RESPONSE:`

// buildAnalysisPrompt собирает промпт анализа из данных товара,
// эвристической оценки и ближайших соседей.
func buildAnalysisPrompt(req *usecase.NarrativeReq) string {
	price, _ := req.Product.PriceFloat()

	return fmt.Sprintf(
		analysisPromptTemplate,
		req.Product.Title,
		req.Product.Description,
		price,
		req.Product.Brand,
		req.HeuristicScore,
		req.HeuristicReasoning,
		formatNeighbors(req.Neighbors),
	)
}

// formatNeighbors форматирует блок соседей для промпта.
func formatNeighbors(neighbors []domain.SimilarityMatch) string {
	var sb strings.Builder

	for idx, neighbor := range neighbors {
		if idx == promptNeighborLimit {
			break
		}

		price, _ := neighbor.PriceFloat()
		sb.WriteString(fmt.Sprintf("Product %d:\n", idx+1))
		sb.WriteString(fmt.Sprintf("Title: %s\n", neighbor.Title))
		sb.WriteString(fmt.Sprintf("Brand: %s\n", neighbor.Brand))
		sb.WriteString(fmt.Sprintf("Price: $%.2f\n", price))
		sb.WriteString(fmt.Sprintf("Similarity: %.2f\n\n", neighbor.Similarity))
	}

	return sb.String()
}
