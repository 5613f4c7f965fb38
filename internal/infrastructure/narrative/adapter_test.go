package narrative

import (
	"context"
	"errors"
	"testing"

	"github.com/authentika/go-backend/internal/domain"
	"github.com/authentika/go-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) Invoke(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}

	return s.response, nil
}

func testNarrativeReq() *usecase.NarrativeReq {
	product := domain.NewProduct("AirMax Sneakers", "Running shoes", nil, "Nike")

	return usecase.NewNarrativeReq(product, 0.35, "Price ($90.00) is within reasonable range of average ($100.00).", nil)
}

func TestAdapter_ParsesGeneratorResponse(t *testing.T) {
	gen := &stubGenerator{
		response: `{"score": 0.9, "reasoning": "Counterfeit indicators found.", "warning_indicators": ["misspelled brand"], "recommendations": ["avoid purchase"]}`,
	}
	adapter := NewAdapter(gen, nopLogger{})

	res := adapter.AnalyzeWithNarrative(context.Background(), testNarrativeReq())

	require.NotNil(t, res)
	assert.Equal(t, 0.9, res.Score)
	assert.Equal(t, "Counterfeit indicators found.", res.Reasoning)
	assert.Equal(t, []string{"misspelled brand"}, res.WarningIndicators)
	assert.Equal(t, []string{"avoid purchase"}, res.Recommendations)
}

func TestAdapter_FallbackOnGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	adapter := NewAdapter(gen, nopLogger{})

	req := testNarrativeReq()
	res := adapter.AnalyzeWithNarrative(context.Background(), req)

	require.NotNil(t, res)
	assert.Equal(t, req.HeuristicScore, res.Score)
	assert.Equal(t, "LLM analysis failed: connection refused. Using initial assessment: "+req.HeuristicReasoning, res.Reasoning)
	assert.Empty(t, res.WarningIndicators)
	assert.Equal(t, []string{"Manually verify this product due to analysis error."}, res.Recommendations)
}

func TestAdapter_MissingScoreUsesHeuristic(t *testing.T) {
	gen := &stubGenerator{response: `{"reasoning": "Unclear result."}`}
	adapter := NewAdapter(gen, nopLogger{})

	req := testNarrativeReq()
	res := adapter.AnalyzeWithNarrative(context.Background(), req)

	assert.Equal(t, req.HeuristicScore, res.Score)
	assert.Equal(t, "Unclear result.", res.Reasoning)
}

func TestAdapter_EmptyReasoningGetsPlaceholder(t *testing.T) {
	gen := &stubGenerator{response: `{"score": 0.4}`}
	adapter := NewAdapter(gen, nopLogger{})

	res := adapter.AnalyzeWithNarrative(context.Background(), testNarrativeReq())

	assert.Equal(t, 0.4, res.Score)
	assert.Equal(t, "Analysis incomplete. Using initial assessment.", res.Reasoning)
}

func TestAdapter_ClampsOutOfRangeScore(t *testing.T) {
	gen := &stubGenerator{response: `{"score": 1.8, "reasoning": "Overconfident model."}`}
	adapter := NewAdapter(gen, nopLogger{})

	res := adapter.AnalyzeWithNarrative(context.Background(), testNarrativeReq())

	assert.Equal(t, 1.0, res.Score)
}

func TestAdapter_PromptContainsProductAndHeuristic(t *testing.T) {
	gen := &stubGenerator{response: `{"score": 0.5, "reasoning": "ok"}`}
	adapter := NewAdapter(gen, nopLogger{})

	adapter.AnalyzeWithNarrative(context.Background(), testNarrativeReq())

	assert.Contains(t, gen.prompt, "Title: AirMax Sneakers")
	assert.Contains(t, gen.prompt, "Initial Score: 0.35")
	assert.Contains(t, gen.prompt, "Price ($90.00) is within reasonable range of average ($100.00).")
}

func TestFormatNeighbors_TopThreeOnly(t *testing.T) {
	neighbors := make([]domain.SimilarityMatch, 0, 5)
	for i := int64(1); i <= 5; i++ {
		neighbors = append(neighbors, domain.SimilarityMatch{
			ProductID:  i,
			Title:      "Neighbor",
			Brand:      "Nike",
			Similarity: 0.9,
		})
	}

	formatted := formatNeighbors(neighbors)

	assert.Contains(t, formatted, "Product 3:")
	assert.NotContains(t, formatted, "Product 4:")
}
