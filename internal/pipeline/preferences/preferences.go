// internal/pipeline/preferences/preferences.go

// Package preferences turns free-form traveler preference text into
// exclusion flags plus the residual preference list handed to the
// prompt assembler.
package preferences

import (
	"strings"

	"github.com/samber/lo"
)

// ExclusionFlags suppress both the category search calls and the
// matching prompt sections. Flags are monotonic within one request:
// once a token sets a flag it stays set.
type ExclusionFlags struct {
	SkipHotels      bool `json:"skip_hotels"`
	SkipRentals     bool `json:"skip_rentals"`
	SkipRestaurants bool `json:"skip_restaurants"`
}

// Trigger phrase sets. A token matches when it contains any phrase as
// a substring, case-insensitive.
var (
	rentalTriggers = []string{
		"have a car", "has a car", "own car", "my car", "rented a car", "already have car",
		"don't need rental", "rental not needed", "rental sorted", "car sorted",
		"bringing my own car", "using personal car", "self-driving", "car arranged",
	}

	hotelTriggers = []string{
		"have accommodation", "hotel is booked", "already booked hotel",
		"no hotel", "don't need hotel", "staying at", "staying with",
		"place to stay", "friend's place", "airbnb", "lodging sorted",
		"arranged stay", "accommodation sorted", "sleeping at relative's",
		"guesthouse booked", "residence arranged", "living with someone",
	}

	restaurantTriggers = []string{
		"no food", "skip meals", "don't want restaurants", "bring my own food",
		"meals are sorted", "eating at hotel", "already have food", "eating with family",
		"self-catering", "meal plan included", "staying with someone who'll feed me",
		"homemade meals", "not interested in dining out", "food taken care of",
		"will cook", "will order in", "on a diet", "not eating out",
	}
)

// Notices appended to the residual preferences when a flag is set, so
// the generated prompt explains the omission instead of silently
// dropping a section.
const (
	RentalSkipNotice     = "Skip car rental suggestions — traveler already has a vehicle."
	HotelSkipNotice      = "Skip hotel suggestions — traveler already has accommodation."
	RestaurantSkipNotice = "Skip restaurant suggestions."
)

// Interpret splits raw comma-separated preference text into tokens,
// derives exclusion flags, and returns the residual preference list:
// every original token, plus one synthesized notice per set flag.
func Interpret(raw string) (ExclusionFlags, []string) {
	tokens := lo.FilterMap(strings.Split(raw, ","), func(tok string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(tok)
		return trimmed, trimmed != ""
	})

	var flags ExclusionFlags
	for _, tok := range tokens {
		lowered := strings.ToLower(tok)
		if containsAny(lowered, rentalTriggers) {
			flags.SkipRentals = true
		}
		if containsAny(lowered, hotelTriggers) {
			flags.SkipHotels = true
		}
		if containsAny(lowered, restaurantTriggers) {
			flags.SkipRestaurants = true
		}
	}

	residual := append([]string(nil), tokens...)
	if flags.SkipRentals {
		residual = append(residual, RentalSkipNotice)
	}
	if flags.SkipHotels {
		residual = append(residual, HotelSkipNotice)
	}
	if flags.SkipRestaurants {
		residual = append(residual, RestaurantSkipNotice)
	}

	return flags, residual
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}
