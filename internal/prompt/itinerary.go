// internal/prompt/itinerary.go

package prompt

import (
	"fmt"
	"strings"

	"travel-assistant/internal/models"
	"travel-assistant/internal/pipeline/preferences"
	"travel-assistant/internal/pipeline/pricing"
)

// sectionOrder fixes the category order of the rendered itinerary.
var sectionOrder = []struct {
	category models.Category
	heading  string
}{
	{models.CategoryRestaurant, "Restaurants"},
	{models.CategoryHotel, "Hotels"},
	{models.CategoryRental, "Car Rentals"},
}

// ItineraryInput carries everything the itinerary prompt is built from.
// Pool holds classified results keyed by category; error-tagged entries
// must already be stripped.
type ItineraryInput struct {
	Facts       models.TravelFacts
	Preferences []string
	Flags       preferences.ExclusionFlags
	TopK        int
	Pool        map[models.Category][]models.SearchResult
}

// Itinerary renders the generation prompt. With any usable result in
// the pool the live shape is used; an empty pool falls back to the
// general-knowledge shape.
func Itinerary(in ItineraryInput) string {
	total := 0
	for _, rs := range in.Pool {
		total += len(rs)
	}
	if total == 0 {
		return fallbackItinerary(in)
	}
	return liveItinerary(in)
}

func liveItinerary(in ItineraryInput) string {
	var b strings.Builder
	b.WriteString(liveHeader)
	b.WriteString("\n\n")
	b.WriteString(contextBlock(factLines(in.Facts)))
	b.WriteString("\n")
	b.WriteString(preferencesBlock(in.Preferences))
	b.WriteString("\n")
	if in.TopK > 0 {
		fmt.Fprintf(&b, "Show exactly %d recommendations per price tier. Always return %d, even if some are estimated from your own knowledge.\n\n", in.TopK, in.TopK)
	}

	for _, section := range sectionOrder {
		if skipped(in.Flags, section.category) {
			continue
		}
		results := in.Pool[section.category]
		if len(results) == 0 {
			results = pricing.FallbackVenues(section.category, in.Facts.Destination)
		}
		writeTieredSection(&b, section.heading, results, in.TopK)
	}

	if general := in.Pool[models.CategoryGeneral]; len(general) > 0 {
		if in.TopK > 0 && len(general) > in.TopK {
			general = general[:in.TopK]
		}
		b.WriteString("## Additional Suggestions\n")
		for _, r := range general {
			writeResultLine(&b, r)
		}
		b.WriteString("\n")
	}

	b.WriteString(weatherGuidance)
	b.WriteString("\n\nWrite the itinerary now.")
	return b.String()
}

func fallbackItinerary(in ItineraryInput) string {
	var b strings.Builder
	b.WriteString(fallbackHeader)
	b.WriteString("\n\n")
	b.WriteString(contextBlock(factLines(in.Facts)))
	b.WriteString("\n")
	b.WriteString(preferencesBlock(in.Preferences))
	b.WriteString("\n")

	var wanted []string
	for _, section := range sectionOrder {
		if !skipped(in.Flags, section.category) {
			wanted = append(wanted, strings.ToLower(section.heading))
		}
	}
	fmt.Fprintf(&b, "Cover: %s.\n\n", strings.Join(wanted, ", "))
	b.WriteString(weatherGuidance)
	b.WriteString("\n\nWrite the itinerary now.")
	return b.String()
}

func writeTieredSection(b *strings.Builder, heading string, results []models.SearchResult, topK int) {
	fmt.Fprintf(b, "## %s\n", heading)
	byTier := make(map[models.Tier][]models.SearchResult)
	for _, r := range results {
		byTier[r.PriceTier] = append(byTier[r.PriceTier], r)
	}
	for _, tier := range models.Tiers {
		fmt.Fprintf(b, "### %s\n", tier)
		entries := byTier[tier]
		if topK > 0 && len(entries) > topK {
			entries = entries[:topK]
		}
		if len(entries) == 0 {
			b.WriteString(NoTierOptionsMarker + "\n")
			continue
		}
		for _, r := range entries {
			writeResultLine(b, r)
		}
	}
	b.WriteString("\n")
}

func writeResultLine(b *strings.Builder, r models.SearchResult) {
	if r.URL != "" {
		fmt.Fprintf(b, "- [%s](%s): %s\n", r.Title, r.URL, r.Snippet)
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", r.Title, r.Snippet)
}

func factLines(facts models.TravelFacts) []string {
	lines := []string{}
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", label, value))
		}
	}
	add("Arriving in", facts.Destination)
	add("Coming from", facts.Origin)
	add("Arrival airport", facts.Airport)
	add("Flight", facts.FlightNumber)
	add("Boarding time", facts.BoardingTime)
	add("Arrival time", facts.ArrivalTime)
	add("Arrival date", facts.ArrivalDate)
	return lines
}

func skipped(flags preferences.ExclusionFlags, category models.Category) bool {
	switch category {
	case models.CategoryRestaurant:
		return flags.SkipRestaurants
	case models.CategoryHotel:
		return flags.SkipHotels
	case models.CategoryRental:
		return flags.SkipRentals
	}
	return false
}
