// internal/clients/genai/gemini.go
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"travel-assistant/internal/common/config"
	httpclient "travel-assistant/internal/common/http"
	"travel-assistant/internal/common/logger"
)

// GeminiClient speaks the generativelanguage generateContent API.
type GeminiClient struct {
	cfg    config.GenAIConfig
	http   *httpclient.Client
	logger logger.Logger
}

func NewGeminiClient(cfg config.GenAIConfig, log logger.Logger) *GeminiClient {
	return &GeminiClient{
		cfg:    cfg,
		http:   httpclient.NewClient(cfg.TimeoutDuration()),
		logger: log.With(map[string]interface{}{"backend": "genai", "provider": "gemini"}),
	}
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (Result, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     c.cfg.Temperature,
			TopK:            32,
			TopP:            1,
			MaxOutputTokens: c.cfg.MaxTokens,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("generation API returned %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return Result{}, fmt.Errorf("empty response from generation API")
	}

	content := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if content == "" {
		return Result{}, fmt.Errorf("empty response from generation API")
	}

	c.logger.Debug("generation completed", map[string]interface{}{"chars": len(content)})
	return ParseOutput(content), nil
}
