// internal/analyzer/handler_test.go
package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"semantix-api/internal/cache"
	"semantix-api/internal/common/logger"
	"semantix-api/internal/models"
)

// stubProvider records invocations and returns a canned document.
type stubProvider struct {
	calls  int
	result *models.AnalysisResponse
}

func (s *stubProvider) Analyze(ctx context.Context, originalText string) *models.AnalysisResponse {
	s.calls++
	return s.result
}

func liveDocument() *models.AnalysisResponse {
	return &models.AnalysisResponse{
		GCOScore:        92,
		AnalysisSummary: "Strong listing. Scenarios could be deeper.",
		MissingElements: []string{},
		OptimizedStructure: models.OptimizedStructure{
			FactTable: []models.FactItem{{Key: "Material", Value: "Linen"}},
			Scenarios: []models.ScenarioItem{{Scenario: "Summer", PainPoint: "Heat", Solution: "Breathable weave"}},
			FAQ:       []models.FAQItem{{Question: "Lined?", Answer: "No"}},
		},
	}
}

func newTestHandler(t *testing.T, provider Provider, resultCache cache.Cache) *Handler {
	t.Helper()
	return NewHandler(provider, resultCache, time.Minute, "Semantix MVP API", logger.NewTestLogger(t))
}

func postAnalyze(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)
	return rec
}

func TestHandler_MissingOriginalText_RejectsWithoutCallingProvider(t *testing.T) {
	provider := &stubProvider{result: liveDocument()}
	h := newTestHandler(t, provider, nil)

	rec := postAnalyze(h, `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, provider.calls)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_REQUEST", envelope.Error.Code)
}

func TestHandler_MalformedBody_Returns400(t *testing.T) {
	provider := &stubProvider{result: liveDocument()}
	h := newTestHandler(t, provider, nil)

	rec := postAnalyze(h, `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, provider.calls)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, &stubProvider{result: liveDocument()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/analyze", nil)
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandler_EmptyOriginalText_IsValid(t *testing.T) {
	provider := &stubProvider{result: FallbackResponse()}
	h := newTestHandler(t, provider, nil)

	rec := postAnalyze(h, `{"original_text": ""}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, provider.calls)

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 75, resp.GCOScore)
}

func TestHandler_NoCredential_ServesExactFallback(t *testing.T) {
	// Real provider with no API key: fallback without any network attempt.
	provider := NewProvider(&Config{Model: "deepseek-chat", Timeout: time.Second}, logger.NewTestLogger(t))
	h := newTestHandler(t, provider, nil)

	rec := postAnalyze(h, `{"original_text": "Plain cotton t-shirt."}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 75, resp.GCOScore)
	assert.Contains(t, resp.AnalysisSummary, FallbackSummary)
	assert.Equal(t, FallbackResponse(), &resp)
	assert.GreaterOrEqual(t, resp.GCOScore, 0)
	assert.LessOrEqual(t, resp.GCOScore, 100)
}

func TestHandler_ProviderReturnsInvalidDocument_Returns422(t *testing.T) {
	invalid := &models.AnalysisResponse{
		GCOScore:        120,
		AnalysisSummary: "out of range",
		MissingElements: []string{},
	}
	h := newTestHandler(t, &stubProvider{result: invalid}, nil)

	rec := postAnalyze(h, `{"original_text": "something"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "SCHEMA_VALIDATION_FAILED", envelope.Error.Code)
}

func TestHandler_CacheHitSkipsProvider(t *testing.T) {
	provider := &stubProvider{result: liveDocument()}
	h := newTestHandler(t, provider, cache.NewMemoryCache())

	first := postAnalyze(h, `{"original_text": "Linen shirt."}`)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, 1, provider.calls)

	second := postAnalyze(h, `{"original_text": "Linen shirt."}`)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, provider.calls)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestHandler_FallbackIsNeverCached(t *testing.T) {
	provider := &stubProvider{result: FallbackResponse()}
	h := newTestHandler(t, provider, cache.NewMemoryCache())

	postAnalyze(h, `{"original_text": "Linen shirt."}`)
	postAnalyze(h, `{"original_text": "Linen shirt."}`)

	assert.Equal(t, 2, provider.calls)
}

func TestHandler_Root(t *testing.T) {
	h := newTestHandler(t, &stubProvider{result: liveDocument()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Root(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Semantix MVP API is running", body["message"])
}

func TestHandler_Root_UnknownPath404(t *testing.T) {
	h := newTestHandler(t, &stubProvider{result: liveDocument()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	h.Root(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
