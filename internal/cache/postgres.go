// internal/cache/postgres.go
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"semantix-api/internal/common/config"
	"semantix-api/internal/models"
)

// PostgresCache stores analysis documents in an analysis_cache table with a
// row-level expiry checked at read time.
type PostgresCache struct {
	db *sql.DB
}

// NewPostgresCache opens the connection and verifies it.
func NewPostgresCache(cfg config.PostgresConfig) (*PostgresCache, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresCache{db: db}, nil
}

// NewPostgresCacheFromDB wraps an existing connection (used by tests).
func NewPostgresCacheFromDB(db *sql.DB) *PostgresCache {
	return &PostgresCache{db: db}
}

func (c *PostgresCache) Get(ctx context.Context, key string) (*models.AnalysisResponse, error) {
	query := `
	SELECT data
	FROM analysis_cache
	WHERE cache_key = $1 AND expires_at > NOW()
	`

	var dataJSON []byte
	err := c.db.QueryRowContext(ctx, query, key).Scan(&dataJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp models.AnalysisResponse
	if err := json.Unmarshal(dataJSON, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *PostgresCache) Set(ctx context.Context, key string, resp *models.AnalysisResponse, ttl time.Duration) error {
	dataJSON, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(ttl)

	query := `
	INSERT INTO analysis_cache (cache_key, data, created_at, expires_at)
	VALUES ($1, $2, NOW(), $3)
	ON CONFLICT (cache_key)
	DO UPDATE SET data = $2, created_at = NOW(), expires_at = $3
	`

	_, err = c.db.ExecContext(ctx, query, key, dataJSON, expiresAt)
	return err
}

func (c *PostgresCache) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM analysis_cache WHERE cache_key = $1`
	_, err := c.db.ExecContext(ctx, query, key)
	return err
}

// CleanExpired removes rows past their expiry.
func (c *PostgresCache) CleanExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM analysis_cache WHERE expires_at < NOW()`
	result, err := c.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Close closes the database connection
func (c *PostgresCache) Close() error {
	return c.db.Close()
}
