package narrative

import (
	"context"
	"fmt"

	"github.com/authentika/go-backend/internal/usecase"
	"github.com/authentika/go-backend/pkg/logger"
)

// Generator порождает текстовый ответ на промпт. Реализации: HTTP-клиент
// совместимого с OpenAI API и встроенный симулятор.
type Generator interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Adapter превращает ответ генератора в структурированный результат
// анализа. Сбой генератора или разбора деградирует до эвристической
// оценки: конвейер анализа продолжает работу в любом случае.
type Adapter struct {
	gen    Generator
	logger logger.Logger
}

func NewAdapter(gen Generator, logger logger.Logger) *Adapter {
	return &Adapter{
		gen:    gen,
		logger: logger,
	}
}

// AnalyzeWithNarrative выполняет текстовый анализ товара.
// Ошибки не возвращаются: любой сбой даёт fallback-результат
// с эвристической оценкой.
func (a *Adapter) AnalyzeWithNarrative(ctx context.Context, req *usecase.NarrativeReq) *usecase.NarrativeRes {
	const op = "narrative.Adapter.AnalyzeWithNarrative"

	response, err := a.gen.Invoke(ctx, buildAnalysisPrompt(req))
	if err != nil {
		a.logger.Warnf("Narrative generation failed, falling back to heuristic assessment: %v", err)

		return usecase.NewNarrativeRes(
			req.HeuristicScore,
			fmt.Sprintf("LLM analysis failed: %v. Using initial assessment: %s", err, req.HeuristicReasoning),
			nil,
			[]string{"Manually verify this product due to analysis error."},
		)
	}

	parsed := parseResponse(response)

	score := req.HeuristicScore
	if parsed.scoreSet {
		score = usecase.ClampScore(parsed.score)
	}

	reasoning := parsed.reasoning
	if reasoning == "" {
		reasoning = "Analysis incomplete. Using initial assessment."
	}

	a.logger.Debugf("%s: narrative score %.2f (heuristic %.2f)", op, score, req.HeuristicScore)

	return usecase.NewNarrativeRes(score, reasoning, parsed.warningIndicators, parsed.recommendations)
}
