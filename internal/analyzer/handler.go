// internal/analyzer/handler.go
package analyzer

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"semantix-api/internal/cache"
	stderrors "semantix-api/internal/common/errors"
	"semantix-api/internal/common/logger"
	"semantix-api/internal/common/metrics"
	"semantix-api/internal/common/validation"
	"semantix-api/internal/models"
)

// Handler serves the analysis endpoints. The provider is invoked exactly once
// per request; there are no retries at this layer.
type Handler struct {
	provider Provider
	cache    cache.Cache // nil disables caching
	cacheTTL time.Duration
	appName  string
	logger   logger.Logger
}

func NewHandler(provider Provider, resultCache cache.Cache, cacheTTL time.Duration, appName string, log logger.Logger) *Handler {
	return &Handler{
		provider: provider,
		cache:    resultCache,
		cacheTTL: cacheTTL,
		appName:  appName,
		logger: log.With(map[string]interface{}{
			"component": "analyze-handler",
		}),
	}
}

// Analyze handles POST /analyze.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.analyze(w, r)
	metrics.AnalyzeRequests.WithLabelValues(strconv.Itoa(status)).Inc()
	metrics.AnalyzeRequestDuration.Observe(time.Since(start).Seconds())
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) int {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return http.StatusMethodNotAllowed
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, stderrors.NewInvalidRequestError("invalid request body"))
		return http.StatusBadRequest
	}

	// Absence is rejected before the provider is ever consulted; an empty
	// description is a valid input.
	if req.OriginalText == nil {
		err := stderrors.NewInvalidRequestError("original_text is required")
		h.writeError(w, err.HTTPStatus(), err)
		return err.HTTPStatus()
	}
	originalText := *req.OriginalText

	ctx := r.Context()
	cacheKey := cache.Key(originalText)

	if h.cache != nil {
		cached, err := h.cache.Get(ctx, cacheKey)
		if err != nil {
			h.logger.WithError(err).Warn("cache get failed", map[string]interface{}{"key": cacheKey})
			metrics.CacheOperations.WithLabelValues("get", "error").Inc()
		} else if cached != nil {
			metrics.CacheOperations.WithLabelValues("get", "hit").Inc()
			h.writeJSON(w, http.StatusOK, cached)
			return http.StatusOK
		} else {
			metrics.CacheOperations.WithLabelValues("get", "miss").Inc()
		}
	}

	result := h.provider.Analyze(ctx, originalText)

	// Final schema guard: the only client-visible server-side failure. The
	// shipped provider validates its own output, so this fires only for a
	// misbehaving Provider implementation.
	resultJSON, err := json.Marshal(result)
	if err == nil {
		err = validation.ValidateAnalysisJSON(resultJSON)
	}
	if err != nil {
		h.logger.WithError(err).Error("assembled response failed schema validation", nil)
		valErr := stderrors.NewSchemaValidationError(err.Error())
		h.writeError(w, valErr.HTTPStatus(), valErr)
		return valErr.HTTPStatus()
	}

	if h.cache != nil && !isFallback(result) {
		if err := h.cache.Set(ctx, cacheKey, result, h.cacheTTL); err != nil {
			h.logger.WithError(err).Warn("cache set failed", map[string]interface{}{"key": cacheKey})
			metrics.CacheOperations.WithLabelValues("set", "error").Inc()
		} else {
			metrics.CacheOperations.WithLabelValues("set", "ok").Inc()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resultJSON)
	return http.StatusOK
}

// Root handles GET /, the liveness message.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"message": h.appName + " is running",
	})
}

// isFallback reports whether a result is the static fallback document.
// Fallback answers are never cached so a transient outage cannot pin stale
// placeholder content for the TTL.
func isFallback(resp *models.AnalysisResponse) bool {
	return reflect.DeepEqual(resp, FallbackResponse())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Error("write response failed", nil)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, stdErr *stderrors.StandardError) {
	h.writeJSON(w, status, map[string]interface{}{
		"error": stdErr,
	})
}
