// internal/analyzer/config.go
package analyzer

import (
	"time"

	"semantix-api/internal/common/config"
)

// Config holds the provider settings, resolved once at construction time.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewConfig maps the deepseek section of the application config.
func NewConfig(ds config.DeepSeekConfig) *Config {
	return &Config{
		APIKey:  ds.APIKey,
		BaseURL: ds.BaseURL,
		Model:   ds.Model,
		Timeout: config.GetDuration(ds.Timeout),
	}
}
