// internal/models/analysis_test.go
package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResponse() AnalysisResponse {
	return AnalysisResponse{
		GCOScore:        50,
		AnalysisSummary: "ok",
		MissingElements: []string{},
		OptimizedStructure: OptimizedStructure{
			FactTable: []FactItem{},
			Scenarios: []ScenarioItem{},
			FAQ:       []FAQItem{},
		},
	}
}

func TestAnalysisResponse_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *AnalysisResponse)
		wantErr bool
	}{
		{"valid", func(r *AnalysisResponse) {}, false},
		{"score at lower bound", func(r *AnalysisResponse) { r.GCOScore = 0 }, false},
		{"score at upper bound", func(r *AnalysisResponse) { r.GCOScore = 100 }, false},
		{"score below range", func(r *AnalysisResponse) { r.GCOScore = -1 }, true},
		{"score above range", func(r *AnalysisResponse) { r.GCOScore = 101 }, true},
		{"nil missing_elements", func(r *AnalysisResponse) { r.MissingElements = nil }, true},
		{"nil fact_table", func(r *AnalysisResponse) { r.OptimizedStructure.FactTable = nil }, true},
		{"nil scenarios", func(r *AnalysisResponse) { r.OptimizedStructure.Scenarios = nil }, true},
		{"nil faq", func(r *AnalysisResponse) { r.OptimizedStructure.FAQ = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResponse()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalysisRequest_DistinguishesAbsentFromEmpty(t *testing.T) {
	var absent AnalysisRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.Nil(t, absent.OriginalText)

	var empty AnalysisRequest
	require.NoError(t, json.Unmarshal([]byte(`{"original_text": ""}`), &empty))
	require.NotNil(t, empty.OriginalText)
	assert.Equal(t, "", *empty.OriginalText)
}
