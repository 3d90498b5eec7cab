// internal/pipeline/pricing/pricing_test.go

package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-assistant/internal/models"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Rooms from AED 250 per night", "from AED 250"},
		{"Dinner ~$45 per person", "~$45"},
		{"starting at Rs 4000", "starting at Rs 4000"},
		{"Great views and friendly staff", ""},
		{"Open until 9pm", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractPrice(tt.text), tt.text)
	}
}

func TestGuessTier(t *testing.T) {
	tier, ok := GuessTier("Affordable street food near the bazaar")
	assert.True(t, ok)
	assert.Equal(t, models.TierCheap, tier)

	tier, ok = GuessTier("A five star resort with fine dining")
	assert.True(t, ok)
	assert.Equal(t, models.TierLuxury, tier)

	_, ok = GuessTier("A quiet place near the park")
	assert.False(t, ok)
}

func TestGuessTierLuxuryCuesWinOverDollarSigns(t *testing.T) {
	tests := []struct {
		text string
		want models.Tier
	}{
		{"$$ fine-dining experience downtown", models.TierLuxury},
		{"A Michelin-starred tasting menu", models.TierLuxury},
		{"$$$ rooftop restaurant with a view", models.TierLuxury},
		{"Charming boutique stay near the park", models.TierMidRange},
		{"$$ bistro with outdoor seating", models.TierMidRange},
		{"$ slices at the corner pizza joint", models.TierCheap},
	}
	for _, tt := range tests {
		tier, ok := GuessTier(tt.text)
		assert.True(t, ok, tt.text)
		assert.Equal(t, tt.want, tier, tt.text)
	}
}

func TestTierForExplicitPriceLandsInMidRange(t *testing.T) {
	r := models.SearchResult{
		Title:   "Budget stay downtown",
		Snippet: "Rooms from $39 a night, hostel style",
	}
	// The explicit amount wins over the cheap keywords around it.
	assert.Equal(t, models.TierMidRange, TierFor(r))
}

func TestTierForTitleFallback(t *testing.T) {
	r := models.SearchResult{
		Title:   "Luxury rooftop dining",
		Snippet: "Reservations recommended on weekends",
	}
	assert.Equal(t, models.TierLuxury, TierFor(r))
}

func TestTierForCheapTagHint(t *testing.T) {
	r := models.SearchResult{
		Title:    "Ten places to eat",
		Snippet:  "A round-up of local favourites",
		PriceTag: "cheap",
	}
	assert.Equal(t, models.TierCheap, TierFor(r))
}

func TestClassifyPartitions(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Budget hostel", Snippet: "cheap beds in the old town"},
		{Title: "Grand Palace Hotel", Snippet: "five star suites"},
		{Title: "City Inn", Snippet: "close to the station"},
	}

	buckets := Classify(results)

	total := 0
	for _, tier := range models.Tiers {
		total += len(buckets[tier])
	}
	assert.Equal(t, len(results), total)
	require.Len(t, buckets[models.TierCheap], 1)
	require.Len(t, buckets[models.TierLuxury], 1)
	require.Len(t, buckets[models.TierMidRange], 1)
	assert.Equal(t, models.TierMidRange, buckets[models.TierMidRange][0].PriceTier)
}

func TestClassifyIdempotent(t *testing.T) {
	results := []models.SearchResult{
		{Title: "Budget hostel", Snippet: "cheap beds"},
		{Title: "City Inn", Snippet: "near the station"},
	}
	first := Classify(results)

	var flattened []models.SearchResult
	for _, tier := range models.Tiers {
		flattened = append(flattened, first[tier]...)
	}
	second := Classify(flattened)

	for _, tier := range models.Tiers {
		assert.Equal(t, len(first[tier]), len(second[tier]), string(tier))
	}
}

func TestFallbackVenues(t *testing.T) {
	venues := FallbackVenues(models.CategoryHotel, "Dubai")
	require.NotEmpty(t, venues)
	for _, v := range venues {
		assert.Equal(t, models.CategoryHotel, v.Category)
		assert.NotEmpty(t, v.PriceTier)
		assert.Contains(t, v.URL, "google.com/search")
		assert.Contains(t, v.URL, "Dubai")
	}

	names := func(vs []models.SearchResult) []string {
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = v.Title
		}
		return out
	}
	assert.Contains(t, names(venues), "The Jane Hotel")
	assert.Contains(t, names(venues), "Four Seasons Hotel")
	assert.Contains(t, names(FallbackVenues(models.CategoryRestaurant, "Dubai")), "Joe's Pizza")
	assert.Contains(t, names(FallbackVenues(models.CategoryRental, "Dubai")), "Hertz")

	assert.Empty(t, FallbackVenues(models.CategoryGeneral, "Dubai"))
}
