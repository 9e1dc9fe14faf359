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
	RegisterProvider("ollama", func(cfg FactoryConfig) (Client, error) {
		if strings.TrimSpace(cfg.Model) == "" {
			return nil, fmt.Errorf("ollama: model name is required")
		}
		return newOllamaClient(cfg), nil
	}, "local")
}

type ollamaClient struct {
	host       string
	model      string
	temp       float64
	httpClient *http.Client
}

func newOllamaClient(cfg FactoryConfig) *ollamaClient {
	return &ollamaClient{
		host:       valueOrDefault(cfg.Host, "http://localhost:11434"),
		model:      cfg.Model,
		temp:       orFloat(cfg.Temperature, 0.7),
		httpClient: httpx.NewDefault(300 * time.Second),
	}
}

func (c *ollamaClient) Chat(ctx context.Context, question string) (string, error) {
	return c.generate(ctx, chatPrompt(question))
}

func (c *ollamaClient) Summarize(ctx context.Context, transcript string) (string, error) {
	return c.generate(ctx, summarizePrompt(transcript))
}

func (c *ollamaClient) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
		"options": map[string]interface{}{
			"temperature": c.temp,
		},
	}
	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, "POST", strings.TrimRight(c.host, "/")+"/api/generate", bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
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
		return "", fmt.Errorf("ollama API error: %s", string(body))
	}
	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	return strings.TrimSpace(result.Response), nil
}
