// internal/clients/genai/openai.go
package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"travel-assistant/internal/common/config"
	"travel-assistant/internal/common/logger"
)

// OpenAIClient is the alternate generation provider, selected with
// genai.provider: openai.
type OpenAIClient struct {
	cfg    config.GenAIConfig
	client openai.Client
	logger logger.Logger
}

func NewOpenAIClient(cfg config.GenAIConfig, log logger.Logger) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{
		cfg:    cfg,
		client: openai.NewClient(opts...),
		logger: log.With(map[string]interface{}{"backend": "genai", "provider": "openai"}),
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.TimeoutDuration())
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(c.cfg.Temperature),
		MaxCompletionTokens: openai.Int(int64(c.cfg.MaxTokens)),
	})
	if err != nil {
		return Result{}, err
	}

	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("empty response from generation API")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return Result{}, fmt.Errorf("empty response from generation API")
	}

	c.logger.Debug("generation completed", map[string]interface{}{"chars": len(content)})
	return ParseOutput(content), nil
}
