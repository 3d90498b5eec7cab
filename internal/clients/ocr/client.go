// internal/clients/ocr/client.go
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"

	"travel-assistant/internal/common/config"
	httpclient "travel-assistant/internal/common/http"
	"travel-assistant/internal/common/logger"
)

// Client extracts text from ticket images through an OCR.Space style
// HTTP API. The backend is an opaque capability: image bytes in, text
// or nothing out.
type Client struct {
	cfg    config.OCRConfig
	http   *httpclient.Client
	logger logger.Logger
}

func NewClient(cfg config.OCRConfig, log logger.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   httpclient.NewClient(cfg.TimeoutDuration()),
		logger: log.With(map[string]interface{}{"backend": "ocr"}),
	}
}

type apiResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool        `json:"IsErroredOnProcessing"`
	ErrorMessage          interface{} `json:"ErrorMessage"`
}

// ExtractText runs OCR on image and returns the cleaned text. An empty
// return with a nil error means the backend answered but read nothing;
// the caller decides whether that is terminal.
func (c *Client) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(image); err != nil {
		return "", err
	}
	_ = writer.WriteField("language", "eng")
	_ = writer.WriteField("isOverlayRequired", "false")
	_ = writer.WriteField("OCREngine", fmt.Sprintf("%d", c.cfg.Engine))
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("apikey", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("OCR API returned %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("OCR API processing error: %v", parsed.ErrorMessage)
	}

	if len(parsed.ParsedResults) == 0 {
		return "", nil
	}
	text := CleanText(parsed.ParsedResults[0].ParsedText)
	if text != "" {
		c.logger.Debug("OCR extracted text", map[string]interface{}{"chars": len(text)})
	}
	return text, nil
}

var (
	nonASCII   = regexp.MustCompile(`[^\x00-\x7F]+`)
	blankLines = regexp.MustCompile(`\n{2,}`)
)

// CleanText normalizes raw OCR output: strips non-ASCII noise and
// collapses repeated blank lines.
func CleanText(text string) string {
	text = nonASCII.ReplaceAllString(text, "")
	text = blankLines.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
