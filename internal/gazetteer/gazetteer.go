// internal/gazetteer/gazetteer.go

// Package gazetteer corrects misspelled city names against a static
// list of known world cities. OCR output routinely mangles city names
// ("Londin", "Dubay"); a close-enough fuzzy match is substituted,
// anything below threshold passes through unchanged.
package gazetteer

import (
	"strings"

	"github.com/agext/levenshtein"
)

// similarityThreshold is the minimum match score (0..1) required to
// substitute a known city for the input.
const similarityThreshold = 0.85

type Gazetteer struct {
	cities []string
	params *levenshtein.Params
}

// New builds a gazetteer over the default world-city list.
func New() *Gazetteer {
	return NewWithCities(worldCities)
}

// NewWithCities builds a gazetteer over a caller-supplied city list.
func NewWithCities(cities []string) *Gazetteer {
	return &Gazetteer{
		cities: cities,
		params: levenshtein.NewParams(),
	}
}

// Correct returns the best-matching known city when similarity clears
// the threshold, otherwise the title-cased input unchanged.
func (g *Gazetteer) Correct(name string) string {
	name = titleCase(strings.TrimSpace(name))
	if name == "" {
		return name
	}

	best := ""
	bestScore := 0.0
	for _, city := range g.cities {
		// Match weights a shared prefix; OCR tends to mangle word
		// endings rather than beginnings.
		score := levenshtein.Match(name, city, g.params)
		if score > bestScore {
			best = city
			bestScore = score
		}
	}

	if bestScore >= similarityThreshold {
		return best
	}
	return name
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
