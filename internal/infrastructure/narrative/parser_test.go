package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_JSONBlock(t *testing.T) {
	response := `Here is my analysis:
{
    "score": 0.85,
    "reasoning": "Price is far below market average.",
    "warning_indicators": ["Price is substantially below market average"],
    "recommendations": ["Avoid purchasing this product"]
}
Let me know if you need more detail.`

	parsed := parseResponse(response)

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.85, parsed.score)
	assert.Equal(t, "Price is far below market average.", parsed.reasoning)
	assert.Equal(t, []string{"Price is substantially below market average"}, parsed.warningIndicators)
	assert.Equal(t, []string{"Avoid purchasing this product"}, parsed.recommendations)
}

func TestParseResponse_JSONWithoutScore(t *testing.T) {
	parsed := parseResponse(`{"reasoning": "Looks fine."}`)

	assert.False(t, parsed.scoreSet)
	assert.Equal(t, "Looks fine.", parsed.reasoning)
}

func TestParseResponse_JSONExplicitZeroScore(t *testing.T) {
	parsed := parseResponse(`{"score": 0.0, "reasoning": "This product is certainly authentic."}`)

	// Явный 0.0 — валидная оценка, а не сигнал "оценки нет"
	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.0, parsed.score)
}

func TestParseResponse_StructuredText(t *testing.T) {
	response := `Score: 0.9
Reasoning: The brand name contains a misspelling.
This matches known counterfeit patterns.
Warning indicators:
- Misspelled brand name
- Price far below market
Recommendations:
- Avoid purchasing`

	parsed := parseResponse(response)

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.9, parsed.score)
	assert.Equal(t, "The brand name contains a misspelling. This matches known counterfeit patterns.", parsed.reasoning)
	assert.Equal(t, []string{"Misspelled brand name", "Price far below market"}, parsed.warningIndicators)
	assert.Equal(t, []string{"Avoid purchasing"}, parsed.recommendations)
}

func TestParseResponse_StructuredScoreWithText(t *testing.T) {
	parsed := parseResponse("Score: approximately 0.75 based on the evidence\nAnalysis: mixed signals.")

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.75, parsed.score)
}

func TestParseResponse_KeywordInferenceFake(t *testing.T) {
	parsed := parseResponse("Assessment: this listing is almost certainly a counterfeit copy.")

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.8, parsed.score)
}

func TestParseResponse_KeywordInferenceNotAuthentic(t *testing.T) {
	// "not authentic" содержит "authentic": негативные слова обязаны
	// проверяться первыми
	parsed := parseResponse("Assessment: the product is not authentic.")

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.8, parsed.score)
}

func TestParseResponse_KeywordInferenceAuthentic(t *testing.T) {
	parsed := parseResponse("Assessment: the product appears genuine and well documented.")

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.2, parsed.score)
}

func TestParseResponse_KeywordInferenceNeutral(t *testing.T) {
	parsed := parseResponse("Assessment: insufficient information to decide.")

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.5, parsed.score)
}

func TestParseResponse_ExplicitScoreSkipsInference(t *testing.T) {
	// Явная оценка 0.1 не перетирается инференсом, хотя reasoning
	// содержит слово "counterfeit"
	parsed := parseResponse("Score: 0.1\nReasoning: no counterfeit signs found.")

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.1, parsed.score)
}

func TestParseResponse_EmptyResponse(t *testing.T) {
	parsed := parseResponse("")

	require.True(t, parsed.scoreSet)
	assert.Equal(t, 0.5, parsed.score)
	assert.Empty(t, parsed.reasoning)
	assert.Empty(t, parsed.warningIndicators)
	assert.Empty(t, parsed.recommendations)
}

func TestExtractJSON_MalformedBlockFallsThrough(t *testing.T) {
	_, ok := extractJSON("{score: not json}")
	assert.False(t, ok)
}
