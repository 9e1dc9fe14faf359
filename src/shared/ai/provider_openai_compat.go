package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/solethus/slack-ollama/src/shared/httpx"
)

func init() {
	RegisterProvider("openai-compat", func(cfg FactoryConfig) (Client, error) {
		if strings.TrimSpace(cfg.Model) == "" {
			return nil, fmt.Errorf("openai-compat: model name is required")
		}
		return newOpenAICompatClient(cfg), nil
	}, "openai")
}

// openAICompatClient speaks the Chat Completions wire format. Ollama serves it
// at /v1 alongside its native API, so the same host works for either provider.
type openAICompatClient struct {
	host       string
	model      string
	apiKey     string
	temp       float64
	httpClient *http.Client
}

func newOpenAICompatClient(cfg FactoryConfig) *openAICompatClient {
	return &openAICompatClient{
		host:       valueOrDefault(cfg.Host, "http://localhost:11434"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		temp:       orFloat(cfg.Temperature, 0.7),
		httpClient: httpx.NewDefault(300 * time.Second),
	}
}

func (c *openAICompatClient) Chat(ctx context.Context, question string) (string, error) {
	return c.complete(ctx, chatPrompt(question))
}

func (c *openAICompatClient) Summarize(ctx context.Context, transcript string) (string, error) {
	return c.complete(ctx, summarizePrompt(transcript))
}

func (c *openAICompatClient) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": c.temp,
	}
	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.host, "/")+"/v1/chat/completions", bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completions API error: %s", string(body))
	}
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

func valueOrDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

func orFloat(v, d float64) float64 {
	if v != 0 {
		return v
	}
	return d
}
