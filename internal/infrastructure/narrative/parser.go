package narrative

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// parsedAnalysis — промежуточный результат разбора ответа модели.
// scoreSet отличает явно разобранную оценку от нулевого значения:
// «модель ответила 0.0» и «оценки в ответе не было» — разные случаи.
type parsedAnalysis struct {
	score             float64
	scoreSet          bool
	reasoning         string
	warningIndicators []string
	recommendations   []string
}

type analysisJSON struct {
	Score             *float64 `json:"score"`
	Reasoning         *string  `json:"reasoning"`
	WarningIndicators []string `json:"warning_indicators"`
	Recommendations   []string `json:"recommendations"`
}

var scorePattern = regexp.MustCompile(`(\d+(\.\d+)?)`)

var (
	fakeKeywords      = []string{"fake", "counterfeit", "suspicious", "not authentic"}
	authenticKeywords = []string{"authentic", "genuine", "legitimate"}
)

// parseResponse разбирает ответ модели в два уровня: сначала попытка
// вытащить JSON-блок, затем построчный разбор структурированного текста.
func parseResponse(response string) parsedAnalysis {
	if result, ok := extractJSON(response); ok {
		return result
	}

	return parseStructured(response)
}

// extractJSON выделяет JSON-блок от первой '{' до последней '}' и
// декодирует его. Ответы моделей часто оборачивают JSON пояснительным
// текстом или markdown-ограждениями, поэтому границы ищутся вручную.
func extractJSON(response string) (parsedAnalysis, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return parsedAnalysis{}, false
	}

	var decoded analysisJSON
	if err := json.Unmarshal([]byte(response[start:end+1]), &decoded); err != nil {
		return parsedAnalysis{}, false
	}

	result := parsedAnalysis{
		warningIndicators: decoded.WarningIndicators,
		recommendations:   decoded.Recommendations,
	}
	if decoded.Score != nil {
		result.score = *decoded.Score
		result.scoreSet = true
	}
	if decoded.Reasoning != nil {
		result.reasoning = *decoded.Reasoning
	}

	return result, true
}

// parseStructured разбирает текстовый ответ построчно: заголовки секций
// переключают состояние, маркированные строки пополняют списки. Если
// явной оценки не нашлось, она выводится по ключевым словам reasoning.
func parseStructured(response string) parsedAnalysis {
	var result parsedAnalysis

	var currentSection string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "score:"):
			currentSection = "score"
			if _, after, found := strings.Cut(line, ":"); found {
				if match := scorePattern.FindString(after); match != "" {
					if v, ok := parseFloat(match); ok {
						result.score = v
						result.scoreSet = true
					}
				}
			}
		case containsAny(lower, "reasoning:", "analysis:", "assessment:"):
			currentSection = "reasoning"
			if _, after, found := strings.Cut(line, ":"); found {
				result.reasoning = strings.TrimSpace(after)
			} else {
				result.reasoning = line
			}
		case containsAny(lower, "warning", "indicator", "red flag"):
			currentSection = "warnings"
			if _, after, found := strings.Cut(line, ":"); found {
				if indicator := strings.TrimSpace(after); indicator != "" {
					result.warningIndicators = append(result.warningIndicators, indicator)
				}
			}
		case containsAny(lower, "recommendation", "suggest"):
			currentSection = "recommendations"
			if _, after, found := strings.Cut(line, ":"); found {
				if recommendation := strings.TrimSpace(after); recommendation != "" {
					result.recommendations = append(result.recommendations, recommendation)
				}
			}
		case currentSection == "reasoning":
			result.reasoning += " " + line
		case currentSection == "warnings" && strings.HasPrefix(line, "-"):
			result.warningIndicators = append(result.warningIndicators, strings.TrimSpace(line[1:]))
		case currentSection == "recommendations" && strings.HasPrefix(line, "-"):
			result.recommendations = append(result.recommendations, strings.TrimSpace(line[1:]))
		}
	}

	if !result.scoreSet {
		result.score = inferScoreFromReasoning(result.reasoning)
		result.scoreSet = true
	}

	return result
}

// inferScoreFromReasoning выводит оценку по ключевым словам. Негативные
// слова проверяются первыми: "not authentic" содержит "authentic" и
// обратный порядок дал бы ложную оценку подлинности.
func inferScoreFromReasoning(reasoning string) float64 {
	lower := strings.ToLower(reasoning)

	for _, keyword := range fakeKeywords {
		if strings.Contains(lower, keyword) {
			return 0.8
		}
	}
	for _, keyword := range authenticKeywords {
		if strings.Contains(lower, keyword) {
			return 0.2
		}
	}

	return 0.5
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
