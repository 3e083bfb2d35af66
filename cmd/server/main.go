// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"semantix-api/internal/analyzer"
	"semantix-api/internal/cache"
	"semantix-api/internal/common/config"
	"semantix-api/internal/common/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = zapLogger.Sync() }()
	log := logger.NewZapAdapter(zapLogger)

	if cfg.DeepSeek.APIKey == "" {
		log.Warn("DEEPSEEK_API_KEY not configured, all analyses will use the static fallback", nil)
	}

	resultCache := buildCache(cfg, log)

	provider := analyzer.NewProvider(analyzer.NewConfig(cfg.DeepSeek), log)
	handler := analyzer.NewHandler(
		provider,
		resultCache,
		time.Duration(cfg.Cache.TTL)*time.Second,
		cfg.App.Name,
		log,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.Root)
	mux.HandleFunc("/analyze", handler.Analyze)
	mux.Handle("/metrics", promhttp.Handler())

	root := corsMiddleware(cfg.Server.AllowedOrigin, requestLogging(log, mux))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: root,
	}

	go func() {
		log.Info("server starting", map[string]interface{}{
			"port":          cfg.Server.Port,
			"cache_backend": cfg.Cache.Backend,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("server failed", nil)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("shutting down", map[string]interface{}{"signal": sig.String()})

	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed", nil)
	}

	if closer, ok := resultCache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

// buildCache selects the result cache backend. A backend that cannot connect
// degrades to the in-memory cache with a warning rather than blocking
// startup; "none" disables caching entirely.
func buildCache(cfg *config.Config, log logger.Logger) cache.Cache {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryCache()
	case "redis":
		c, err := cache.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, using memory cache", nil)
			return cache.NewMemoryCache()
		}
		return c
	case "postgres":
		c, err := cache.NewPostgresCache(cfg.Cache.Postgres)
		if err != nil {
			log.WithError(err).Warn("postgres unavailable, using memory cache", nil)
			return cache.NewMemoryCache()
		}
		return c
	default:
		return nil
	}
}

// corsMiddleware permits browser calls from exactly one configured origin.
func corsMiddleware(allowedOrigin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogging(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info("request handled", map[string]interface{}{
			"requestId":  requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"durationMs": time.Since(start).Milliseconds(),
		})
	})
}
