// internal/models/travel.go
package models

// Category tags a search result with the pipeline section it was
// queried for.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryHotel      Category = "hotel"
	CategoryRental     Category = "rental"
	CategoryGeneral    Category = "general"
	CategoryError      Category = "error"
)

// Tier is a price classification bucket for a venue.
type Tier string

const (
	TierCheap    Tier = "Cheap"
	TierMidRange Tier = "Mid-Range"
	TierLuxury   Tier = "Luxury"
)

// Tiers is the fixed bucket order used everywhere a tier loop appears.
var Tiers = []Tier{TierCheap, TierMidRange, TierLuxury}

// TravelFacts holds the structured fields extracted from one boarding
// pass. Empty string means the field was not resolved.
type TravelFacts struct {
	Origin       string `json:"origin,omitempty"`
	Destination  string `json:"destination,omitempty"`
	Airport      string `json:"airport,omitempty"`
	FlightNumber string `json:"flight_number,omitempty"`
	BoardingTime string `json:"boarding_time,omitempty"`
	ArrivalTime  string `json:"arrival_time,omitempty"`
	ArrivalDate  string `json:"arrival_date,omitempty"`
}

// SearchResult is one normalized web search hit. PriceTier and
// PriceTag are attached in place by the price classifier.
type SearchResult struct {
	Title     string   `json:"title"`
	URL       string   `json:"url,omitempty"`
	Snippet   string   `json:"snippet"`
	Category  Category `json:"category"`
	PriceTier Tier     `json:"price_tier,omitempty"`
	PriceTag  string   `json:"price_tag,omitempty"`
}

// IsError reports whether the result is the synthetic entry a failed
// search call degrades to. Callers treat it as "no usable results".
func (r SearchResult) IsError() bool {
	return r.Category == CategoryError
}

// ChatTurn is one question/answer pair in a session's history.
type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
