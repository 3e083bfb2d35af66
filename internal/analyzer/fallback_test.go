// internal/analyzer/fallback_test.go
package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semantix-api/internal/common/validation"
	"semantix-api/internal/models"
)

func TestFallbackResponse_SchemaValid(t *testing.T) {
	fb := FallbackResponse()

	require.NoError(t, fb.Validate())
	require.NoError(t, validation.ValidateAnalysisDocument(fb))
	assert.Equal(t, 75, fb.GCOScore)
	assert.Len(t, fb.MissingElements, 3)
	assert.Len(t, fb.OptimizedStructure.FactTable, 5)
	assert.Len(t, fb.OptimizedStructure.Scenarios, 2)
	assert.Len(t, fb.OptimizedStructure.FAQ, 2)
}

func TestFallbackResponse_JSONRoundTrip(t *testing.T) {
	fb := FallbackResponse()

	data, err := json.Marshal(fb)
	require.NoError(t, err)

	var decoded models.AnalysisResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fb, &decoded)

	// Re-serializing yields a structurally identical document.
	again, err := json.Marshal(&decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestFallbackResponse_ReturnsIndependentCopies(t *testing.T) {
	first := FallbackResponse()
	second := FallbackResponse()

	first.GCOScore = 0
	first.OptimizedStructure.FactTable[0].Value = "mutated"

	assert.Equal(t, 75, second.GCOScore)
	assert.Equal(t, "100% Organic Cotton", second.OptimizedStructure.FactTable[0].Value)
}
