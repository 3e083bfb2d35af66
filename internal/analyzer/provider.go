// internal/analyzer/provider.go
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	stderrors "semantix-api/internal/common/errors"
	"semantix-api/internal/common/httpclient"
	"semantix-api/internal/common/logger"
	"semantix-api/internal/common/metrics"
	"semantix-api/internal/common/validation"
	"semantix-api/internal/models"
)

// Provider produces an analysis document for a product description. It never
// fails: every upstream problem is absorbed into the static fallback.
type Provider interface {
	Analyze(ctx context.Context, originalText string) *models.AnalysisResponse
}

// DeepSeekProvider calls the DeepSeek chat-completions API with a fixed
// auditing prompt and falls back to the static document on any failure.
type DeepSeekProvider struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewProvider(cfg *Config, log logger.Logger) *DeepSeekProvider {
	return &DeepSeekProvider{
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout),
		logger: log.With(map[string]interface{}{
			"component": "deepseek-provider",
		}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Analyze returns the live analysis when the upstream call succeeds and the
// model's answer is schema-valid, and the static fallback in every other
// case. No credential means no network attempt at all.
func (p *DeepSeekProvider) Analyze(ctx context.Context, originalText string) *models.AnalysisResponse {
	if p.config.APIKey == "" {
		p.logger.Debug("no API key configured, serving fallback", nil)
		metrics.FallbackResponses.WithLabelValues("not_configured").Inc()
		return FallbackResponse()
	}

	result, err := p.callUpstream(ctx, originalText)
	if err != nil {
		reason := "upstream_error"
		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) {
			switch stdErr.Code {
			case stderrors.ErrCodeUpstreamTimeout:
				reason = "upstream_timeout"
			case stderrors.ErrCodeSchemaValidationFailed:
				reason = "invalid_schema"
			}
		}
		p.logger.WithError(err).Warn("serving fallback", map[string]interface{}{
			"reason": reason,
		})
		metrics.FallbackResponses.WithLabelValues(reason).Inc()
		return FallbackResponse()
	}

	metrics.UpstreamCalls.WithLabelValues("success").Inc()
	return result
}

func (p *DeepSeekProvider) callUpstream(ctx context.Context, originalText string) (*models.AnalysisResponse, error) {
	reqBody := chatRequest{
		Model: p.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: originalText},
		},
		ResponseFormat: responseFormat{Type: "json"},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		metrics.UpstreamCalls.WithLabelValues("error").Inc()
		return nil, stderrors.NewUpstreamCallError(fmt.Sprintf("marshal request: %v", err))
	}

	endpoint := strings.TrimRight(p.config.BaseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		metrics.UpstreamCalls.WithLabelValues("error").Inc()
		return nil, stderrors.NewUpstreamCallError(fmt.Sprintf("create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			metrics.UpstreamCalls.WithLabelValues("timeout").Inc()
			return nil, stderrors.NewUpstreamTimeoutError(err.Error())
		}
		metrics.UpstreamCalls.WithLabelValues("error").Inc()
		return nil, stderrors.NewUpstreamCallError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		metrics.UpstreamCalls.WithLabelValues("error").Inc()
		return nil, stderrors.NewUpstreamCallError(fmt.Sprintf("status %d: %s", resp.StatusCode, string(body)))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		metrics.UpstreamCalls.WithLabelValues("error").Inc()
		return nil, stderrors.NewUpstreamCallError(fmt.Sprintf("decode response: %v", err))
	}

	if len(chatResp.Choices) == 0 {
		metrics.UpstreamCalls.WithLabelValues("error").Inc()
		return nil, stderrors.NewUpstreamCallError("no choices in completion response")
	}

	content := extractJSON(chatResp.Choices[0].Message.Content)

	if err := validation.ValidateAnalysisJSON([]byte(content)); err != nil {
		metrics.UpstreamCalls.WithLabelValues("invalid_schema").Inc()
		return nil, stderrors.NewSchemaValidationError(err.Error())
	}

	var result models.AnalysisResponse
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		metrics.UpstreamCalls.WithLabelValues("error").Inc()
		return nil, stderrors.NewUpstreamCallError(fmt.Sprintf("parse content: %v", err))
	}

	return &result, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Timeout()
	}
	return false
}

// extractJSON strips markdown code fences the model sometimes wraps around
// its JSON answer.
func extractJSON(response string) string {
	re := regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")
	matches := re.FindStringSubmatch(response)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end > start {
		return response[start : end+1]
	}

	return response
}
