package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/authentika/go-backend/internal/cfg"
	"github.com/authentika/go-backend/pkg/e"
	"github.com/jimlawless/whereami"
)

// HTTPGenerator вызывает совместимый с OpenAI chat-completions endpoint.
type HTTPGenerator struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

func NewHTTPGenerator(cfg *cfg.NarrativeCfg) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint:    cfg.Endpoint,
		apiKey:      cfg.ApiKey,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Invoke отправляет системный промпт и промпт анализа одним запросом
// и возвращает текст первого choice.
func (g *HTTPGenerator) Invoke(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(&chatCompletionRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", e.Wrap(whereami.WhereAmI(), fmt.Errorf("chat completions request failed: %s", resp.Status))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	if completion.Error != nil {
		return "", e.Wrap(whereami.WhereAmI(), fmt.Errorf("chat completions error: %s", completion.Error.Message))
	}

	if len(completion.Choices) == 0 {
		return "", e.Wrap(whereami.WhereAmI(), fmt.Errorf("chat completions response has no choices"))
	}

	return completion.Choices[0].Message.Content, nil
}
