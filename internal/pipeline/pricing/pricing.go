// internal/pipeline/pricing/pricing.go

// Package pricing buckets search results into price tiers for the
// prompt assembler. Classification is heuristic: an explicit amount in
// the snippet, then keyword cues, then a Mid-Range default.
package pricing

import (
	"regexp"
	"strings"

	"travel-assistant/internal/models"
)

// Matches "from AED 250", "~$120.50", "starting at Rs 4000" and the like.
var priceRe = regexp.MustCompile(`(?i)(?:from|starting at)?\s*(?:~)?\s*(AED|USD|PKR|INR|₹|\$|€|£|Rs)\s?\d{2,6}(?:\.\d{1,2})?`)

// Cue lists are written in hyphen-folded form; GuessTier folds the
// input the same way before matching.
var luxuryCues = []string{
	"$$$", "fine dining", "michelin", "luxury", "five star", "expensive",
	"suite", "penthouse", "exclusive", "high end", "gourmet",
}

var midRangeCues = []string{
	"$$", "mid range", "bistro", "popular", "moderate", "brasserie",
	"boutique", "modern", "4 star", "casual dining", "stylish", "quality food",
}

var cheapCues = []string{
	"$", "affordable", "cheap", "budget", "fast food", "pizza", "diner",
	"grab and go", "street food", "food court", "local eatery",
	"value for money",
}

// ExtractPrice returns the first explicit price expression found in
// text, or the empty string.
func ExtractPrice(text string) string {
	return strings.TrimSpace(priceRe.FindString(text))
}

// GuessTier inspects text for price-level keywords. Luxury cues are
// checked first, then mid-range, then cheap, so "$$$" is never
// shadowed by the "$" containment check. Hyphens are folded to spaces
// so "fine-dining" and "five star" hit the same cue. The bool reports
// whether any cue matched.
func GuessTier(text string) (models.Tier, bool) {
	lowered := strings.ReplaceAll(strings.ToLower(text), "-", " ")
	for _, cue := range luxuryCues {
		if strings.Contains(lowered, cue) {
			return models.TierLuxury, true
		}
	}
	for _, cue := range midRangeCues {
		if strings.Contains(lowered, cue) {
			return models.TierMidRange, true
		}
	}
	for _, cue := range cheapCues {
		if strings.Contains(lowered, cue) {
			return models.TierCheap, true
		}
	}
	return models.TierMidRange, false
}

// TierFor assigns a single tier to one result. An explicit price in
// the snippet takes precedence and lands in Mid-Range, the tier shown
// alongside concrete amounts in the rendered itinerary.
func TierFor(r models.SearchResult) models.Tier {
	if ExtractPrice(r.Snippet) != "" {
		return models.TierMidRange
	}
	if tier, ok := GuessTier(r.Snippet); ok {
		return tier
	}
	if tier, ok := GuessTier(r.Title); ok {
		return tier
	}
	if r.PriceTag == "cheap" {
		return models.TierCheap
	}
	return models.TierMidRange
}

// Classify partitions results into tiers. Every input lands in exactly
// one tier and the PriceTier field on the returned copies is filled in.
// The function is pure; classifying its own output is a no-op.
func Classify(results []models.SearchResult) map[models.Tier][]models.SearchResult {
	buckets := make(map[models.Tier][]models.SearchResult, len(models.Tiers))
	for _, tier := range models.Tiers {
		buckets[tier] = nil
	}
	for _, r := range results {
		tier := r.PriceTier
		if tier == "" {
			tier = TierFor(r)
		}
		r.PriceTier = tier
		buckets[tier] = append(buckets[tier], r)
	}
	return buckets
}
