// internal/assistant/service.go

// Package assistant answers follow-up questions against the trip
// context a session already holds.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-assistant/internal/clients/genai"
	"travel-assistant/internal/common/config"
	apperrors "travel-assistant/internal/common/errors"
	"travel-assistant/internal/common/logger"
	"travel-assistant/internal/common/metrics"
	"travel-assistant/internal/itinerary"
	"travel-assistant/internal/models"
	"travel-assistant/internal/prompt"
	"travel-assistant/internal/session"
)

const unavailableAnswer = "The assistant is temporarily unavailable. Please try again."

// Response mirrors the ask API payload.
type Response struct {
	Answer  string            `json:"answer"`
	History []models.ChatTurn `json:"history"`
	Summary string            `json:"summary,omitempty"`
}

type Service struct {
	cfg       config.PipelineConfig
	search    itinerary.Searcher
	generator genai.Generator
	store     session.Store
	logger    logger.Logger
}

func NewService(cfg config.PipelineConfig, search itinerary.Searcher, gen genai.Generator, store session.Store, log logger.Logger) *Service {
	return &Service{
		cfg:       cfg,
		search:    search,
		generator: gen,
		store:     store,
		logger:    log.With(map[string]interface{}{"service": "assistant"}),
	}
}

// Ask answers one traveler question in the context of their session. A
// generation failure degrades to a canned answer and records nothing;
// the session history only ever holds real exchanges.
func (s *Service) Ask(ctx context.Context, sessionID, question string) (Response, error) {
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("ask").Observe(time.Since(start).Seconds())
	}()

	data, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return Response{}, apperrors.NewSessionStoreError(err)
	}
	var facts models.TravelFacts
	var history []models.ChatTurn
	var summary string
	if data != nil {
		facts = data.Context
		history = data.History
		summary = data.Summary
	}

	snippets := s.searchContext(ctx, enhanceQuestion(question, facts))

	result, err := s.generator.Generate(ctx, prompt.Question(prompt.QuestionInput{
		Facts:    facts,
		Summary:  summary,
		History:  history,
		Question: question,
		Snippets: snippets,
	}))
	if err != nil {
		metrics.StageFailures.WithLabelValues("generation", "backend").Inc()
		s.logger.Error("answer generation failed", map[string]interface{}{"error": err.Error()})
		return Response{Answer: unavailableAnswer, History: history, Summary: summary}, nil
	}
	answer := result.AnswerText()

	updated, err := s.store.Mutate(ctx, sessionID, func(d *session.Data) error {
		d.AppendTurn(models.ChatTurn{Question: question, Answer: answer}, s.cfg.HistoryLimit)
		return nil
	})
	if err != nil {
		return Response{}, apperrors.NewSessionStoreError(err)
	}

	return Response{Answer: answer, History: updated.History, Summary: updated.Summary}, nil
}

// searchContext runs one general search for the enhanced question and
// drops the synthetic error entry a failed call degrades to.
func (s *Service) searchContext(ctx context.Context, query string) []models.SearchResult {
	raw := s.search.Search(ctx, query, models.CategoryGeneral, s.cfg.AskMaxResults)
	out := make([]models.SearchResult, 0, len(raw))
	for _, r := range raw {
		if r.IsError() {
			metrics.StageFailures.WithLabelValues("search", "backend").Inc()
			continue
		}
		out = append(out, r)
	}
	return out
}

// enhanceQuestion grounds the search query in the known trip facts so
// "where can I eat" becomes a destination-specific search. Unset facts,
// TBD placeholders and facts the question already mentions are skipped.
func enhanceQuestion(question string, facts models.TravelFacts) string {
	enhanced := question
	add := func(format, value string) {
		if value == "" || value == "TBD" {
			return
		}
		if strings.Contains(strings.ToLower(question), strings.ToLower(value)) {
			return
		}
		enhanced += fmt.Sprintf(format, value)
	}
	add(" in %s", facts.Destination)
	add(" near %s", facts.Airport)
	add(" arriving at %s", facts.ArrivalTime)
	add(" on %s", facts.ArrivalDate)
	return enhanced
}
