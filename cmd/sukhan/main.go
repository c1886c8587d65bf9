package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sukhanhub/sukhan/internal/config"
	dbRedis "github.com/sukhanhub/sukhan/internal/db/redis"
	logpkg "github.com/sukhanhub/sukhan/internal/logger"
	"github.com/sukhanhub/sukhan/internal/metrics"
	verserepo "github.com/sukhanhub/sukhan/internal/repository/verse"
	chiTransport "github.com/sukhanhub/sukhan/internal/transport/chi"
	healthuc "github.com/sukhanhub/sukhan/internal/usecase/health"
	searchuc "github.com/sukhanhub/sukhan/internal/usecase/search"
	suggestuc "github.com/sukhanhub/sukhan/internal/usecase/suggest"
	"github.com/sukhanhub/sukhan/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting sukhan API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register domain metrics explicitly (no init())
	metrics.RegisterSuggestMetrics()

	// Repositories — one per content collection
	timeout := time.Duration(cfg.Suggest.RetrievalTimeoutSec) * time.Second
	poemsRepo := verserepo.New(store, verserepo.Poems(cfg.Storage.KeyPrefix), logger).
		WithTimeout(timeout).
		WithFallbackCounter(metrics.RetrievalFallbackTotal)
	stanzasRepo := verserepo.New(store, verserepo.Stanzas(cfg.Storage.KeyPrefix), logger).
		WithTimeout(timeout).
		WithFallbackCounter(metrics.RetrievalFallbackTotal)

	// Build the full-text indexes when the server carries the search
	// module; without it the repositories run on the scan fallback.
	if store.SupportsTextSearch(ctx) {
		if err := poemsRepo.EnsureIndex(ctx, store); err != nil {
			logger.Fatal("Failed to create poems index", zap.Error(err))
		}
		if err := stanzasRepo.EnsureIndex(ctx, store); err != nil {
			logger.Fatal("Failed to create stanzas index", zap.Error(err))
		}
		logger.Info("Full-text indexes ready")
	} else {
		logger.Warn("Text search module missing, suggestions will use the scan fallback")
	}

	// Use case services
	suggestSvc := suggestuc.New(poemsRepo, stanzasRepo, logger).
		WithCommonTerms(cfg.Suggest.CommonTerms)
	searchSvc := searchuc.New(
		poemsRepo, stanzasRepo,
		cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize,
		logger,
	)
	healthSvc := healthuc.New(store, store)

	// Create chi server
	server := chiTransport.NewServer(suggestSvc, searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
