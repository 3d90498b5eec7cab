// internal/itinerary/service_test.go

package itinerary

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-assistant/internal/clients/genai"
	"travel-assistant/internal/common/config"
	"travel-assistant/internal/common/logger"
	"travel-assistant/internal/gazetteer"
	"travel-assistant/internal/models"
	"travel-assistant/internal/pipeline/extraction"
	"travel-assistant/internal/session"
)

const extractionJSON = `{"origin": "Islamabad", "destination": "Dubai", "airport_name": "Dubai International Airport", "flight_number": "PK-301", "arrival_time": "14:30"}`

type stubOCR struct{ text string }

func (s stubOCR) ExtractText(_ context.Context, _ []byte, _ string) (string, error) {
	return s.text, nil
}

// routingGenerator answers each prompt shape differently so one stub
// can serve the extraction, keyword, and itinerary calls.
type routingGenerator struct {
	keywords     string
	itinerary    string
	itineraryErr error
}

func (g routingGenerator) Generate(_ context.Context, p string) (genai.Result, error) {
	switch {
	case strings.Contains(p, "single JSON object"):
		return genai.ParseOutput(extractionJSON), nil
	case strings.Contains(p, "comma separated"):
		return genai.ParseOutput(g.keywords), nil
	default:
		if g.itineraryErr != nil {
			return genai.Result{}, g.itineraryErr
		}
		return genai.ParseOutput(g.itinerary), nil
	}
}

type recordingSearcher struct {
	mu      sync.Mutex
	queries []string
	maxes   []int
	results map[string][]models.SearchResult
}

func (s *recordingSearcher) Search(_ context.Context, query string, category models.Category, maxResults int) []models.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	s.maxes = append(s.maxes, maxResults)
	if rs, ok := s.results[query]; ok {
		return rs
	}
	return nil
}

func (s *recordingSearcher) sortedQueries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]string(nil), s.queries...)
	sort.Strings(out)
	return out
}

func newService(t *testing.T, gen routingGenerator, search Searcher) (*Service, session.Store) {
	t.Helper()
	store, err := session.NewStore(session.StoreTypeMemory)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := logger.NewNoOpLogger()
	cities := gazetteer.NewWithCities([]string{"Dubai", "Islamabad"})
	ex := extraction.New(stubOCR{text: "PK-301 ISB DXB"}, gen, cities, log)

	cfg := config.PipelineConfig{DefaultTopK: 3, SearchMultiplier: 2.5, AskMaxResults: 6, HistoryLimit: 5}
	return NewService(cfg, ex, search, gen, store, log), store
}

func TestBuildHappyPath(t *testing.T) {
	search := &recordingSearcher{results: map[string][]models.SearchResult{
		"best restaurants in Dubai": {
			{Title: "Pierchic", URL: "https://example.com/p", Snippet: "fine dining", Category: models.CategoryRestaurant},
		},
	}}
	svc, store := newService(t, routingGenerator{itinerary: "Enjoy Dubai!"}, search)

	resp, err := svc.Build(context.Background(), Request{SessionID: "s1", Image: []byte("img"), Filename: "pass.jpg"})
	require.NoError(t, err)

	assert.Equal(t, "Dubai", resp.City)
	assert.Equal(t, "Islamabad", resp.Origin)
	assert.Equal(t, "14:30", resp.ArrivalTime)
	assert.Equal(t, "Enjoy Dubai!", resp.Itinerary.AnswerText())

	// No residual preferences, so only the five category queries run.
	assert.Equal(t, []string{
		"best hotels in Dubai",
		"best restaurants in Dubai",
		"budget hotels in Dubai",
		"car rentals in Dubai",
		"cheap restaurants in Dubai",
	}, search.sortedQueries())

	// search_k = int(3 * 2.5)
	for _, m := range search.maxes {
		assert.Equal(t, 7, m)
	}

	// The trip context is merged into the session before generation.
	data, err := store.Get(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "Dubai", data.Context.Destination)
}

func TestBuildSkipFlagsSuppressQueries(t *testing.T) {
	search := &recordingSearcher{}
	svc, _ := newService(t, routingGenerator{itinerary: "ok"}, search)

	_, err := svc.Build(context.Background(), Request{
		SessionID:      "s1",
		RawPreferences: "have a car, already booked hotel, no food",
	})
	require.NoError(t, err)

	queries := search.sortedQueries()
	for _, q := range queries {
		assert.NotContains(t, q, "restaurants")
		assert.NotContains(t, q, "hotels")
		assert.NotContains(t, q, "rentals")
	}
}

func TestBuildKeywordSearchesTaggedGeneral(t *testing.T) {
	search := &recordingSearcher{}
	svc, _ := newService(t, routingGenerator{keywords: "museums, desert safari", itinerary: "ok"}, search)

	_, err := svc.Build(context.Background(), Request{
		SessionID:      "s1",
		RawPreferences: "loves museums",
	})
	require.NoError(t, err)

	queries := search.sortedQueries()
	assert.Contains(t, queries, "museums in Dubai")
	assert.Contains(t, queries, "desert safari in Dubai")
}

func TestBuildGenerationFailureDegradesInPlace(t *testing.T) {
	svc, _ := newService(t, routingGenerator{itineraryErr: errors.New("quota exceeded")}, &recordingSearcher{})

	resp, err := svc.Build(context.Background(), Request{SessionID: "s1"})
	require.NoError(t, err)

	obj, ok := resp.Itinerary.Object()
	require.True(t, ok)
	assert.Equal(t, "GENERATION_FAILED", obj["error"])
	assert.Equal(t, "Dubai", resp.City)
}

func TestBuildTopKOverride(t *testing.T) {
	search := &recordingSearcher{}
	svc, _ := newService(t, routingGenerator{itinerary: "ok"}, search)

	_, err := svc.Build(context.Background(), Request{SessionID: "s1", TopK: 4})
	require.NoError(t, err)

	for _, m := range search.maxes {
		assert.Equal(t, 10, m)
	}
}

func TestTagCheapTitles(t *testing.T) {
	pool := tagCheapTitles([]models.SearchResult{
		{Title: "Budget eats downtown"},
		{Title: "Pierchic"},
	})

	assert.Equal(t, "cheap", pool[0].PriceTag)
	assert.Empty(t, pool[1].PriceTag)
}

func TestDedupeByURL(t *testing.T) {
	pool := dedupeByURL([]models.SearchResult{
		{Title: "A", URL: "https://example.com/x"},
		{Title: "B", URL: "https://example.com/x"},
		{Title: "C", URL: "https://example.com/y"},
	})

	require.Len(t, pool, 2)
	assert.Equal(t, "A", pool[0].Title)
}

func TestGroupByCategoryTiersInOrder(t *testing.T) {
	grouped := groupByCategory([]models.SearchResult{
		{Title: "Grand Palace Hotel", Snippet: "five star suites", Category: models.CategoryHotel},
		{Title: "Budget hostel", Snippet: "cheap beds", Category: models.CategoryHotel},
	})

	hotels := grouped[models.CategoryHotel]
	require.Len(t, hotels, 2)
	assert.Equal(t, models.TierCheap, hotels[0].PriceTier)
	assert.Equal(t, models.TierLuxury, hotels[1].PriceTier)
}
