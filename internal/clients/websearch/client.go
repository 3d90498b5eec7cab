// internal/clients/websearch/client.go
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"travel-assistant/internal/common/config"
	apperrors "travel-assistant/internal/common/errors"
	httpclient "travel-assistant/internal/common/http"
	"travel-assistant/internal/common/logger"
	"travel-assistant/internal/models"
)

// listicleMarkers flag generic "Top 10 ..." style results that carry
// no venue-specific information when the snippet is also empty.
var listicleMarkers = []string{"top", "best"}

// Client queries a SearxNG meta-search instance. A transport failure
// never propagates: it degrades to a single error-tagged result so the
// pipeline stays best-effort.
type Client struct {
	cfg    config.SearchConfig
	http   *httpclient.Client
	cache  *cache.Cache
	logger logger.Logger
}

func NewClient(cfg config.SearchConfig, log logger.Logger) *Client {
	c := &Client{
		cfg:    cfg,
		http:   httpclient.NewClient(cfg.TimeoutDuration()),
		logger: log.With(map[string]interface{}{"backend": "websearch"}),
	}
	if cfg.CacheTTL > 0 {
		ttl := time.Duration(cfg.CacheTTL) * time.Second
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

type searxResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type searxResponse struct {
	Results []searxResult `json:"results"`
}

// Search sends query to the search backend and returns up to
// maxResults normalized hits tagged with category. Results whose title
// contains a listicle marker and whose snippet is empty are dropped;
// when filtering empties the list the filter is abandoned and the raw
// head of the response is used instead. Repeated URLs within one
// response keep only their first hit.
func (c *Client) Search(ctx context.Context, query string, category models.Category, maxResults int) []models.SearchResult {
	if category == "" {
		category = models.CategoryGeneral
	}

	raw, err := c.fetch(ctx, query)
	if err != nil {
		pe := apperrors.NewSearchBackendError(err)
		c.logger.Warn("live search failed, degrading to error result", map[string]interface{}{
			"query": query,
			"code":  string(pe.Code),
			"error": pe.Details,
		})
		return []models.SearchResult{{
			Title:    "Search Backend Error",
			URL:      c.cfg.BaseURL,
			Snippet:  fmt.Sprintf("%s: %s", pe.Message, pe.Details),
			Category: models.CategoryError,
		}}
	}

	filtered := make([]searxResult, 0, len(raw))
	for _, r := range raw {
		if isListicle(r.Title) && strings.TrimSpace(r.Content) == "" {
			continue
		}
		filtered = append(filtered, r)
	}
	if len(filtered) == 0 {
		filtered = raw
	}
	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}

	seen := make(map[string]bool, len(filtered))
	out := make([]models.SearchResult, 0, len(filtered))
	for _, r := range filtered {
		if strings.TrimSpace(r.Content) == "" {
			continue
		}
		link := strings.TrimSpace(r.URL)
		if link != "" && seen[link] {
			continue
		}
		seen[link] = true
		out = append(out, models.SearchResult{
			Title:    strings.TrimSpace(r.Title),
			URL:      strings.TrimSpace(r.URL),
			Snippet:  strings.TrimSpace(r.Content),
			Category: category,
		})
	}

	c.logger.Debug("search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(out),
	})
	return out
}

func (c *Client) fetch(ctx context.Context, query string) ([]searxResult, error) {
	if c.cache != nil {
		if hit, ok := c.cache.Get(query); ok {
			return hit.([]searxResult), nil
		}
	}

	endpoint, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse search URL: %w", err)
	}
	params := url.Values{}
	params.Add("q", query)
	params.Add("categories", "general")
	params.Add("language", c.cfg.Language)
	params.Add("format", "json")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var parsed searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(query, parsed.Results, cache.DefaultExpiration)
	}
	return parsed.Results, nil
}

func isListicle(title string) bool {
	lowered := strings.ToLower(title)
	for _, marker := range listicleMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
