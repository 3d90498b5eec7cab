// internal/session/session.go

// Package session keys conversational state by a caller-supplied
// session identifier. It replaces what would otherwise be process-wide
// globals: concurrent conversations must not corrupt each other's trip
// context or history.
package session

import (
	"fmt"
	"time"

	"travel-assistant/internal/models"
)

// Data is the serializable per-session state.
type Data struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Context holds the last-known trip facts, sticky-merged: a field
	// once set is never cleared by a later extraction returning empty.
	Context models.TravelFacts `json:"context"`

	// History holds the most recent Q&A turns, capped by the eviction
	// limit passed to AppendTurn.
	History []models.ChatTurn `json:"history"`

	// Summary accumulates evicted turns. It only ever grows; for very
	// long sessions this is unbounded.
	Summary string `json:"summary"`

	// evicted turn count, keeps summary numbering continuous
	EvictedTurns int `json:"evicted_turns"`
}

// MergeFacts sticky-merges newly extracted facts into the session
// context. Empty fields never overwrite previously set ones.
func (d *Data) MergeFacts(f models.TravelFacts) {
	if f.Origin != "" {
		d.Context.Origin = f.Origin
	}
	if f.Destination != "" {
		d.Context.Destination = f.Destination
	}
	if f.Airport != "" {
		d.Context.Airport = f.Airport
	}
	if f.FlightNumber != "" {
		d.Context.FlightNumber = f.FlightNumber
	}
	if f.BoardingTime != "" {
		d.Context.BoardingTime = f.BoardingTime
	}
	if f.ArrivalTime != "" {
		d.Context.ArrivalTime = f.ArrivalTime
	}
	if f.ArrivalDate != "" {
		d.Context.ArrivalDate = f.ArrivalDate
	}
}

const summaryHeader = "SUMMARY OF EARLIER CONVERSATION:\n"

// AppendTurn records a Q&A turn. When the history exceeds limit, the
// oldest turns are evicted and rendered into the cumulative summary
// (appended, never regenerated).
func (d *Data) AppendTurn(turn models.ChatTurn, limit int) {
	d.History = append(d.History, turn)
	if len(d.History) <= limit {
		return
	}

	evicted := d.History[:len(d.History)-limit]
	d.History = append([]models.ChatTurn(nil), d.History[len(d.History)-limit:]...)

	if d.Summary == "" {
		d.Summary = summaryHeader
	}
	for _, old := range evicted {
		d.EvictedTurns++
		d.Summary += fmt.Sprintf("%d. Q: %s\n   A: %s\n", d.EvictedTurns, old.Question, old.Answer)
	}
}
