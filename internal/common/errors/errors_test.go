// internal/common/errors/errors_test.go
package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err    *StandardError
		status int
	}{
		{NewInvalidRequestError("missing field"), http.StatusUnprocessableEntity},
		{NewSchemaValidationError("bad shape"), http.StatusUnprocessableEntity},
		{NewUpstreamCallError("boom"), http.StatusBadGateway},
		{NewUpstreamTimeoutError("slow"), http.StatusGatewayTimeout},
		{NewCacheUnavailableError("down"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestStandardError_SerializesCode(t *testing.T) {
	e := NewSchemaValidationError("gco_score out of range")

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "SCHEMA_VALIDATION_FAILED", decoded["code"])
	assert.Equal(t, "analysis result failed schema validation", decoded["message"])
	assert.NotEmpty(t, decoded["timestamp"])
}

func TestStandardError_ErrorString(t *testing.T) {
	e := NewInvalidRequestError("original_text is required")
	assert.Contains(t, e.Error(), "INVALID_REQUEST")
}
