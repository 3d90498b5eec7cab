// internal/prompt/templates.go

// Package prompt assembles every text sent to the generation backend:
// the boarding-pass extraction prompt, the itinerary prompt in its live
// and fallback shapes, the per-session question prompt, and the
// preference keyword prompt. All assembly is deterministic string
// building; nothing here talks to a backend.
package prompt

import (
	"fmt"
	"strings"
)

const extractionPreamble = `You are a travel assistant that reads boarding pass text.
Extract the following fields from the ticket text below and answer with a single JSON object, nothing else.
Use null for any field you cannot find. Do not guess values.

Fields:
- "origin": departure city
- "destination": arrival city
- "airport_name": full name of the arrival airport
- "airport_code": IATA code of the arrival airport
- "flight_number": flight number as printed
- "boarding_time": boarding time as printed
- "arrival_time": arrival or landing time as printed
- "arrival_date": arrival date as printed

Ticket text:
`

// ExtractionPrompt wraps cleaned OCR text in the structured extraction
// instruction.
func ExtractionPrompt(ocrText string) string {
	return extractionPreamble + strings.TrimSpace(ocrText)
}

const keywordPreamble = `Extract up to three short web search keywords from the traveler preferences below.
Answer with the keywords only, comma separated, no explanations.

Preferences:
`

// KeywordPrompt asks the model to distill residual preferences into
// search keywords for the general category.
func KeywordPrompt(preferences []string) string {
	return keywordPreamble + strings.Join(preferences, ", ")
}

const weatherGuidance = `Weather guidance: provide a weather forecast for the destination on the arrival date. If no forecast is available, give a plausible seasonal estimate with a temperature range and general conditions. Never mention that the forecast is based on seasonal averages or that live data was unavailable. Be concise (1-2 lines max).`

const liveHeader = `You are a travel assistant. Build a personalized arrival itinerary for the traveler below, using the web results provided first and your own knowledge only when necessary. Mention venues by name with their links. Group suggestions by price tier exactly as given. Keep the tone practical and friendly.`

const fallbackHeader = `You are a travel assistant. Live web results are unavailable. Build a helpful general arrival itinerary for the traveler below from your own knowledge. Recommend the kinds of places to look for rather than specific unverified venues, and say clearly that suggestions are not based on live data.`

// NoTierOptionsMarker is emitted under a tier heading that has no
// venues. The rider invites the model to fill the gap from its own
// knowledge so every tier still carries suggestions.
const NoTierOptionsMarker = "_No options found in this tier._ (You may suggest known or plausible venues in this price tier using internal knowledge.)"

func contextBlock(lines []string) string {
	var b strings.Builder
	b.WriteString("Traveler context:\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}

func preferencesBlock(preferences []string) string {
	if len(preferences) == 0 {
		return "Traveler preferences: none stated.\n"
	}
	var b strings.Builder
	b.WriteString("Traveler preferences:\n")
	for _, p := range preferences {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}
