// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// analysisResponseSchema is the JSON schema every analysis document must
// satisfy before it may leave the service, whether it came from the upstream
// model or from the static fallback.
var analysisResponseSchema = map[string]interface{}{
	"type": "object",
	"required": []string{
		"gco_score", "analysis_summary", "missing_elements", "optimized_structure",
	},
	"properties": map[string]interface{}{
		"gco_score": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
			"maximum": 100,
		},
		"analysis_summary": map[string]interface{}{
			"type": "string",
		},
		"missing_elements": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"optimized_structure": map[string]interface{}{
			"type":     "object",
			"required": []string{"fact_table", "scenarios", "faq"},
			"properties": map[string]interface{}{
				"fact_table": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":     "object",
						"required": []string{"key", "value"},
						"properties": map[string]interface{}{
							"key":   map[string]interface{}{"type": "string"},
							"value": map[string]interface{}{"type": "string"},
						},
					},
				},
				"scenarios": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":     "object",
						"required": []string{"scenario", "pain_point", "solution"},
						"properties": map[string]interface{}{
							"scenario":   map[string]interface{}{"type": "string"},
							"pain_point": map[string]interface{}{"type": "string"},
							"solution":   map[string]interface{}{"type": "string"},
						},
					},
				},
				"faq": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":     "object",
						"required": []string{"question", "answer"},
						"properties": map[string]interface{}{
							"question": map[string]interface{}{"type": "string"},
							"answer":   map[string]interface{}{"type": "string"},
						},
					},
				},
			},
		},
	},
}

// ValidateAnalysisDocument validates a candidate analysis document (struct or
// map) against the response schema.
func ValidateAnalysisDocument(doc interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(analysisResponseSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("analysis document validation failed: %v", errs)
	}

	return nil
}

// ValidateAnalysisJSON validates raw JSON bytes against the response schema.
func ValidateAnalysisJSON(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(analysisResponseSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("analysis document validation failed: %v", errs)
	}

	return nil
}
