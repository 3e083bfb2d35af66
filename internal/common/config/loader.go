// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration once at process start: yaml base config, optional
// environment-specific overlay, environment variable overrides, defaults,
// then validation. The result is injected into components at construction;
// nothing reads the environment at request time.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like DEEPSEEK_API_KEY
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// bindEnvKeys registers the keys that have no yaml counterpart so
// AutomaticEnv picks them up even when the config file omits the section.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"server.port",
		"server.allowed_origin",
		"deepseek.api_key",
		"deepseek.base_url",
		"deepseek.model",
		"deepseek.timeout",
		"cache.backend",
		"cache.ttl",
		"cache.redis.address",
		"cache.redis.password",
		"cache.postgres.host",
		"logging.level",
		"logging.format",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// overrideEmptyConfig fills fields that are still empty from their
// conventional environment variable names.
func overrideEmptyConfig(cfg *Config) {
	if cfg.DeepSeek.APIKey == "" {
		if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
			cfg.DeepSeek.APIKey = val
		}
	}
	if cfg.Server.Port == "" {
		if val := os.Getenv("PORT"); val != "" {
			cfg.Server.Port = val
		}
	}
	if cfg.Cache.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Cache.Redis.Address = val
		}
	}
	if cfg.Cache.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Cache.Postgres.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "semantix-api"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8000"
	}
	if cfg.Server.AllowedOrigin == "" {
		cfg.Server.AllowedOrigin = "http://localhost:3000"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	if cfg.DeepSeek.BaseURL == "" {
		cfg.DeepSeek.BaseURL = "https://api.deepseek.com"
	}
	if cfg.DeepSeek.Model == "" {
		cfg.DeepSeek.Model = "deepseek-chat"
	}
	if cfg.DeepSeek.Timeout == 0 {
		cfg.DeepSeek.Timeout = 60000
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "none"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 3600
	}
	if cfg.Cache.Postgres.Port == 0 {
		cfg.Cache.Postgres.Port = 5432
	}
	if cfg.Cache.Postgres.SSLMode == "" {
		cfg.Cache.Postgres.SSLMode = "disable"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig validates critical configuration fields. A missing DeepSeek
// API key is deliberately not an error: the provider falls back to the static
// payload when unconfigured.
func validateConfig(cfg *Config) error {
	switch cfg.Cache.Backend {
	case "none", "memory":
	case "redis":
		if cfg.Cache.Redis.Address == "" {
			return fmt.Errorf("cache.redis.address is required for the redis backend")
		}
	case "postgres":
		if cfg.Cache.Postgres.Host == "" {
			return fmt.Errorf("cache.postgres.host is required for the postgres backend")
		}
		if cfg.Cache.Postgres.Database == "" {
			return fmt.Errorf("cache.postgres.database is required for the postgres backend")
		}
		if cfg.Cache.Postgres.User == "" {
			return fmt.Errorf("cache.postgres.user is required for the postgres backend")
		}
	default:
		return fmt.Errorf("cache.backend must be one of none, memory, redis, postgres")
	}

	if cfg.DeepSeek.Timeout < 0 {
		return fmt.Errorf("deepseek.timeout must not be negative")
	}

	return nil
}
