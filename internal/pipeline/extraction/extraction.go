// internal/pipeline/extraction/extraction.go

// Package extraction turns a boarding-pass image into TravelFacts:
// OCR, structured generation, schema validation, then city correction.
package extraction

import (
	"context"

	"travel-assistant/internal/clients/genai"
	apperrors "travel-assistant/internal/common/errors"
	"travel-assistant/internal/common/logger"
	"travel-assistant/internal/common/metrics"
	"travel-assistant/internal/common/validation"
	"travel-assistant/internal/gazetteer"
	"travel-assistant/internal/models"
	"travel-assistant/internal/prompt"
)

// OCRBackend is the slice of the OCR client this stage needs.
type OCRBackend interface {
	ExtractText(ctx context.Context, image []byte, filename string) (string, error)
}

type Extractor struct {
	ocr       OCRBackend
	generator genai.Generator
	cities    *gazetteer.Gazetteer
	logger    logger.Logger
}

func New(ocr OCRBackend, generator genai.Generator, cities *gazetteer.Gazetteer, log logger.Logger) *Extractor {
	return &Extractor{
		ocr:       ocr,
		generator: generator,
		cities:    cities,
		logger:    log.With(map[string]interface{}{"stage": "extraction"}),
	}
}

// Extract runs the image through OCR and the extraction prompt and
// returns the corrected facts. A missing destination is terminal: there
// is nothing to build an itinerary around.
func (e *Extractor) Extract(ctx context.Context, image []byte, filename string) (models.TravelFacts, error) {
	text, err := e.ocr.ExtractText(ctx, image, filename)
	if err != nil {
		metrics.StageFailures.WithLabelValues("ocr", "backend").Inc()
		return models.TravelFacts{}, apperrors.NewOCRFailedError("OCR backend call failed: " + err.Error())
	}
	if text == "" {
		metrics.StageFailures.WithLabelValues("ocr", "empty").Inc()
		return models.TravelFacts{}, apperrors.NewOCRFailedError("no text could be read from the ticket image")
	}

	result, err := e.generator.Generate(ctx, prompt.ExtractionPrompt(text))
	if err != nil {
		metrics.StageFailures.WithLabelValues("extraction", "backend").Inc()
		return models.TravelFacts{}, apperrors.NewExtractionFailedError("generation backend call failed: " + err.Error())
	}

	obj, ok := result.Object()
	if !ok {
		metrics.StageFailures.WithLabelValues("extraction", "freeform").Inc()
		return models.TravelFacts{}, apperrors.NewExtractionFailedError("extraction answer was not a JSON object")
	}
	if err := validation.ValidateTravelFacts(obj); err != nil {
		metrics.StageFailures.WithLabelValues("extraction", "schema").Inc()
		return models.TravelFacts{}, apperrors.NewExtractionFailedError("extraction answer failed validation: " + err.Error())
	}

	facts := factsFromObject(obj)
	if facts.Destination == "" {
		metrics.StageFailures.WithLabelValues("extraction", "no_destination").Inc()
		return models.TravelFacts{}, apperrors.NewExtractionFailedError("could not determine the destination city")
	}

	facts.Origin = e.cities.Correct(facts.Origin)
	facts.Destination = e.cities.Correct(facts.Destination)

	e.logger.Info("extracted travel facts", map[string]interface{}{
		"destination": facts.Destination,
		"origin":      facts.Origin,
		"flight":      facts.FlightNumber,
	})
	return facts, nil
}

// factsFromObject maps the loose JSON object onto TravelFacts. The
// airport field prefers the full name over the IATA code, and arrival
// time and date get a visible placeholder so downstream prompts never
// render an empty slot.
func factsFromObject(obj map[string]interface{}) models.TravelFacts {
	str := func(key string) string {
		if v, ok := obj[key].(string); ok {
			return v
		}
		return ""
	}

	facts := models.TravelFacts{
		Origin:       str("origin"),
		Destination:  str("destination"),
		Airport:      str("airport_name"),
		FlightNumber: str("flight_number"),
		BoardingTime: str("boarding_time"),
		ArrivalTime:  str("arrival_time"),
		ArrivalDate:  str("arrival_date"),
	}
	if facts.Airport == "" {
		facts.Airport = str("airport_code")
	}
	if facts.ArrivalTime == "" {
		facts.ArrivalTime = "TBD"
	}
	if facts.ArrivalDate == "" {
		facts.ArrivalDate = "TBD"
	}
	return facts
}
