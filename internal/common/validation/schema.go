// Package validation gates structured output from the generation
// backend before its keys are trusted.
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// travelFactsSchema describes the JSON object the extraction prompt
// asks for. Every field is optional and nullable; the model is told to
// return null for anything it cannot read off the ticket.
var travelFactsSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"origin":        map[string]interface{}{"type": []string{"string", "null"}},
		"destination":   map[string]interface{}{"type": []string{"string", "null"}},
		"airport_name":  map[string]interface{}{"type": []string{"string", "null"}},
		"airport_code":  map[string]interface{}{"type": []string{"string", "null"}},
		"flight_number": map[string]interface{}{"type": []string{"string", "null"}},
		"boarding_time": map[string]interface{}{"type": []string{"string", "null"}},
		"arrival_time":  map[string]interface{}{"type": []string{"string", "null"}},
		"arrival_date":  map[string]interface{}{"type": []string{"string", "null"}},
	},
	"additionalProperties": true,
}

// ValidateTravelFacts checks that data has the shape of an extraction
// result. A failure means the payload must be treated as freeform
// output, not as an error.
func ValidateTravelFacts(data map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(travelFactsSchema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("extraction payload validation failed: %v", errs)
	}

	return nil
}
