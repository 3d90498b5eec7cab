// internal/pipeline/pricing/fallback.go

package pricing

import (
	"fmt"
	"net/url"

	"travel-assistant/internal/models"
)

// Well-known venue names used when the search backend returned nothing
// for a category. The rendered itinerary links each to a web search so
// the traveler can still follow up.
var fallbackNames = map[models.Category]map[models.Tier][]string{
	models.CategoryRestaurant: {
		models.TierCheap:    {"Joe's Pizza", "Superiority Burger", "Mamoun's Falafel"},
		models.TierMidRange: {"Shake Shack", "The Smith", "ABC Kitchen"},
		models.TierLuxury:   {"Le Bernardin", "Per Se", "Guy Savoy"},
	},
	models.CategoryHotel: {
		models.TierCheap:    {"The Jane Hotel", "Pod 39", "The Local NYC"},
		models.TierMidRange: {"Arlo Hotels", "The Library Hotel", "The Hoxton"},
		models.TierLuxury:   {"Four Seasons Hotel", "The Peninsula Paris", "Hotel Plaza Athénée"},
	},
	models.CategoryRental: {
		models.TierMidRange: {"Hertz", "Avis", "Enterprise"},
	},
}

// SearchURL builds a web search link for a venue name in a city.
func SearchURL(name, city string) string {
	q := url.QueryEscape(name + " " + city)
	return "https://www.google.com/search?q=" + q
}

// FallbackVenues returns the static stand-in results for a category,
// already tiered and linked. General has no fallback; an empty slice is
// returned for it.
func FallbackVenues(category models.Category, city string) []models.SearchResult {
	tiers, ok := fallbackNames[category]
	if !ok {
		return nil
	}
	var out []models.SearchResult
	for _, tier := range models.Tiers {
		for _, name := range tiers[tier] {
			out = append(out, models.SearchResult{
				Title:     name,
				URL:       SearchURL(name, city),
				Snippet:   fmt.Sprintf("Suggested %s option in %s. Availability and pricing not verified.", category, city),
				Category:  category,
				PriceTier: tier,
			})
		}
	}
	return out
}
