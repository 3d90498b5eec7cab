// internal/clients/genai/genai.go
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"travel-assistant/internal/common/config"
	"travel-assistant/internal/common/logger"
)

// Generator is the opaque generation capability: prompt in, structured
// or raw text out. Implementations must not retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Result, error)
}

// Result is a tagged union of generation output. The model may answer
// with a JSON object or with free text; callers pattern-match instead
// of probing for key presence.
type Result struct {
	structured map[string]interface{}
	freeform   string
}

// NewStructured wraps a parsed JSON object.
func NewStructured(obj map[string]interface{}) Result {
	return Result{structured: obj}
}

// NewFreeform wraps raw model text.
func NewFreeform(text string) Result {
	return Result{freeform: text}
}

// Object returns the structured variant when present.
func (r Result) Object() (map[string]interface{}, bool) {
	if r.structured != nil {
		return r.structured, true
	}
	return nil, false
}

// IsStructured reports whether the result carries a JSON object.
func (r Result) IsStructured() bool {
	return r.structured != nil
}

// AnswerText flattens the result to plain answer text. For the
// structured variant this is the "output" field, empty when the object
// has no such string.
func (r Result) AnswerText() string {
	if r.structured != nil {
		if out, ok := r.structured["output"].(string); ok {
			return out
		}
		return ""
	}
	return r.freeform
}

// MarshalJSON preserves the wire shape of the original API: a
// structured result serializes as the object itself, a freeform result
// as {"output": text}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.structured != nil {
		return json.Marshal(r.structured)
	}
	return json.Marshal(map[string]string{"output": r.freeform})
}

var jsonBlock = regexp.MustCompile(`\{[\s\S]+\}`)

// ParseOutput converts raw model text into a Result. A JSON object
// embedded anywhere in the text wins; everything else is freeform.
// Malformed JSON is not an error, it is the freeform variant.
func ParseOutput(content string) Result {
	content = strings.TrimSpace(content)
	candidate := content
	if match := jsonBlock.FindString(content); match != "" {
		candidate = match
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &obj); err == nil {
		return NewStructured(obj)
	}
	return NewFreeform(content)
}

// ParseKeywordList splits a comma-separated keyword answer into clean
// tokens. Used on the preference keyword extraction response.
func ParseKeywordList(r Result) []string {
	raw := r.AnswerText()
	if raw == "" {
		if obj, ok := r.Object(); ok {
			raw = fmt.Sprintf("%v", obj)
		}
	}

	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// New selects a provider implementation from configuration.
func New(cfg config.GenAIConfig, log logger.Logger) (Generator, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiClient(cfg, log), nil
	case "openai":
		return NewOpenAIClient(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown genai provider %q", cfg.Provider)
	}
}
