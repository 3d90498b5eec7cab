// internal/itinerary/service.go

// Package itinerary orchestrates the boarding-pass pipeline: preference
// interpretation, extraction, session context merge, the category
// search fan-out, price classification, prompt assembly and the final
// generation call.
package itinerary

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"travel-assistant/internal/clients/genai"
	"travel-assistant/internal/common/config"
	apperrors "travel-assistant/internal/common/errors"
	"travel-assistant/internal/common/logger"
	"travel-assistant/internal/common/metrics"
	"travel-assistant/internal/models"
	"travel-assistant/internal/pipeline/extraction"
	"travel-assistant/internal/pipeline/preferences"
	"travel-assistant/internal/pipeline/pricing"
	"travel-assistant/internal/prompt"
	"travel-assistant/internal/session"
)

// Searcher is the slice of the web search client the fan-out needs.
type Searcher interface {
	Search(ctx context.Context, query string, category models.Category, maxResults int) []models.SearchResult
}

// Request is one itinerary build request.
type Request struct {
	SessionID      string
	Image          []byte
	Filename       string
	RawPreferences string
	TopK           int
}

// Response mirrors the display-itinerary API payload.
type Response struct {
	Itinerary   genai.Result       `json:"itinerary"`
	City        string             `json:"city"`
	Origin      string             `json:"origin,omitempty"`
	Airport     string             `json:"airport,omitempty"`
	ArrivalTime string             `json:"arrival_time,omitempty"`
	Facts       models.TravelFacts `json:"-"`
}

type Service struct {
	cfg       config.PipelineConfig
	extractor *extraction.Extractor
	search    Searcher
	generator genai.Generator
	store     session.Store
	logger    logger.Logger
}

func NewService(cfg config.PipelineConfig, ex *extraction.Extractor, search Searcher, gen genai.Generator, store session.Store, log logger.Logger) *Service {
	return &Service{
		cfg:       cfg,
		extractor: ex,
		search:    search,
		generator: gen,
		store:     store,
		logger:    log.With(map[string]interface{}{"service": "itinerary"}),
	}
}

// categoryQuery is one planned fan-out call. Queries run concurrently
// and merge back in plan order, which fixes the category order of the
// candidate pool.
type categoryQuery struct {
	query    string
	category models.Category
}

// Build runs the full pipeline for one boarding-pass upload.
func (s *Service) Build(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("itinerary").Observe(time.Since(start).Seconds())
	}()

	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.DefaultTopK
	}
	flags, residual := preferences.Interpret(req.RawPreferences)

	facts, err := s.extractor.Extract(ctx, req.Image, req.Filename)
	if err != nil {
		return Response{}, err
	}

	// The session context is merged before searching so a follow-up
	// /ask sees the trip even if this request fails later.
	if _, err := s.store.Mutate(ctx, req.SessionID, func(d *session.Data) error {
		d.MergeFacts(facts)
		return nil
	}); err != nil {
		return Response{}, apperrors.NewSessionStoreError(err)
	}

	pool := s.fanOut(ctx, s.planQueries(ctx, facts.Destination, flags, residual), int(float64(topK)*s.cfg.SearchMultiplier))
	if s.cfg.DedupeResults {
		pool = dedupeByURL(pool)
	}
	pool = tagCheapTitles(pool)

	byCategory := groupByCategory(pool)
	result := s.generate(ctx, prompt.Itinerary(prompt.ItineraryInput{
		Facts:       facts,
		Preferences: residual,
		Flags:       flags,
		TopK:        topK,
		Pool:        byCategory,
	}))

	return Response{
		Itinerary:   result,
		City:        facts.Destination,
		Origin:      facts.Origin,
		Airport:     facts.Airport,
		ArrivalTime: facts.ArrivalTime,
		Facts:       facts,
	}, nil
}

// planQueries lays out the fan-out in fixed category order. Skip flags
// drop whole categories before any call is made.
func (s *Service) planQueries(ctx context.Context, city string, flags preferences.ExclusionFlags, residual []string) []categoryQuery {
	var plan []categoryQuery
	if !flags.SkipRestaurants {
		plan = append(plan,
			categoryQuery{fmt.Sprintf("best restaurants in %s", city), models.CategoryRestaurant},
			categoryQuery{fmt.Sprintf("cheap restaurants in %s", city), models.CategoryRestaurant},
		)
	}
	if !flags.SkipHotels {
		plan = append(plan,
			categoryQuery{fmt.Sprintf("best hotels in %s", city), models.CategoryHotel},
			categoryQuery{fmt.Sprintf("budget hotels in %s", city), models.CategoryHotel},
		)
	}
	if !flags.SkipRentals {
		plan = append(plan, categoryQuery{fmt.Sprintf("car rentals in %s", city), models.CategoryRental})
	}
	for _, kw := range s.preferenceKeywords(ctx, residual) {
		plan = append(plan, categoryQuery{fmt.Sprintf("%s in %s", kw, city), models.CategoryGeneral})
	}
	return plan
}

// preferenceKeywords asks the generation backend to distill residual
// preferences into search keywords. A backend failure just skips the
// general searches; the itinerary is still buildable without them.
func (s *Service) preferenceKeywords(ctx context.Context, residual []string) []string {
	interests := lo.Filter(residual, func(p string, _ int) bool {
		return !strings.HasPrefix(p, "Skip ")
	})
	if len(interests) == 0 {
		return nil
	}
	result, err := s.generator.Generate(ctx, prompt.KeywordPrompt(interests))
	if err != nil {
		s.logger.Warn("keyword extraction failed, skipping general searches", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	keywords := genai.ParseKeywordList(result)
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	return keywords
}

// fanOut runs the planned queries concurrently and merges results back
// in plan order. Error-tagged results are dropped from the pool here;
// a category whose every call failed simply comes back empty.
func (s *Service) fanOut(ctx context.Context, plan []categoryQuery, searchK int) []models.SearchResult {
	slots := make([][]models.SearchResult, len(plan))
	var wg sync.WaitGroup
	for i, q := range plan {
		wg.Add(1)
		go func(i int, q categoryQuery) {
			defer wg.Done()
			metrics.SearchFanout.WithLabelValues(string(q.category)).Inc()
			defer metrics.SearchFanout.WithLabelValues(string(q.category)).Dec()
			slots[i] = s.search.Search(ctx, q.query, q.category, searchK)
		}(i, q)
	}
	wg.Wait()

	var pool []models.SearchResult
	for i := range slots {
		for _, r := range slots[i] {
			if r.IsError() {
				metrics.StageFailures.WithLabelValues("search", "backend").Inc()
				continue
			}
			pool = append(pool, r)
		}
	}
	return pool
}

// generate calls the generation backend. A failure degrades in place to
// an error object instead of surfacing as a transport error; the
// traveler still gets the structured context back.
func (s *Service) generate(ctx context.Context, itineraryPrompt string) genai.Result {
	result, err := s.generator.Generate(ctx, itineraryPrompt)
	if err != nil {
		metrics.StageFailures.WithLabelValues("generation", "backend").Inc()
		s.logger.Error("itinerary generation failed", map[string]interface{}{"error": err.Error()})
		return genai.NewStructured(map[string]interface{}{
			"error":   string(apperrors.ErrCodeGenerationFailed),
			"message": "Itinerary generation is temporarily unavailable. Please try again.",
		})
	}
	return result
}

var cheapTitleCues = []string{"cheap", "budget", "affordable"}

func tagCheapTitles(pool []models.SearchResult) []models.SearchResult {
	return lo.Map(pool, func(r models.SearchResult, _ int) models.SearchResult {
		lowered := strings.ToLower(r.Title)
		for _, cue := range cheapTitleCues {
			if strings.Contains(lowered, cue) {
				r.PriceTag = "cheap"
				break
			}
		}
		return r
	})
}

func dedupeByURL(pool []models.SearchResult) []models.SearchResult {
	return lo.UniqBy(pool, func(r models.SearchResult) string {
		if r.URL != "" {
			return r.URL
		}
		return r.Title
	})
}

// groupByCategory partitions the pool and classifies each category's
// results into price tiers, keeping the pool's relative order.
func groupByCategory(pool []models.SearchResult) map[models.Category][]models.SearchResult {
	out := make(map[models.Category][]models.SearchResult)
	for _, r := range pool {
		out[r.Category] = append(out[r.Category], r)
	}
	for category, results := range out {
		buckets := pricing.Classify(results)
		tiered := make([]models.SearchResult, 0, len(results))
		for _, tier := range models.Tiers {
			tiered = append(tiered, buckets[tier]...)
		}
		out[category] = tiered
	}
	return out
}
