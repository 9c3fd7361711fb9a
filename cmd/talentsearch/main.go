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
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/intransparency/talentsearch/internal/config"
	"github.com/intransparency/talentsearch/internal/db/postgres"
	dbRedis "github.com/intransparency/talentsearch/internal/db/redis"
	"github.com/intransparency/talentsearch/internal/domain"
	logpkg "github.com/intransparency/talentsearch/internal/logger"
	"github.com/intransparency/talentsearch/internal/metrics"
	ratelimitrepo "github.com/intransparency/talentsearch/internal/repository/ratelimit"
	searchrepo "github.com/intransparency/talentsearch/internal/repository/search"
	"github.com/intransparency/talentsearch/internal/transport/assistant"
	chiTransport "github.com/intransparency/talentsearch/internal/transport/chi"
	openaiClassifier "github.com/intransparency/talentsearch/internal/transport/openai"
	"github.com/intransparency/talentsearch/internal/usecase/classify"
	"github.com/intransparency/talentsearch/internal/usecase/extract"
	healthuc "github.com/intransparency/talentsearch/internal/usecase/health"
	ratelimituc "github.com/intransparency/talentsearch/internal/usecase/ratelimit"
	searchuc "github.com/intransparency/talentsearch/internal/usecase/search"
	"github.com/intransparency/talentsearch/internal/version"
)

const sweepInterval = time.Minute

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

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

	logger.Info("Starting talentsearch gateway",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("assistant_provider", cfg.Assistant.Provider),
		zap.String("ratelimit_driver", cfg.RateLimit.Driver),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Datastore
	store, err := postgres.NewStore(ctx, postgres.Config{
		DSN:      cfg.Database.DSN,
		MaxConns: cfg.Database.MaxConns,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Rate limiter store
	limitStore, limitHealth := buildLimitStore(ctx, cfg.RateLimit, logger)
	if closer, ok := limitHealth.(interface{ Close() }); ok {
		defer closer.Close()
	}
	limiter := ratelimituc.New(
		limitStore,
		cfg.RateLimit.Limit,
		time.Duration(cfg.RateLimit.WindowSec)*time.Second,
		logger,
	)

	// Classification: assistant first, vocabulary extractor as fallback
	assistantTimeout := time.Duration(cfg.Assistant.TimeoutSec) * time.Second
	primary := buildClassifier(cfg.Assistant, assistantTimeout, logger)
	resolver := classify.New(primary, extract.Extractor{}, assistantTimeout, logger)

	// Search
	repo := searchrepo.New(store, time.Duration(cfg.Database.QueryTimeoutSec)*time.Second)
	searchSvc := searchuc.New(limiter, resolver, repo, searchuc.Options{
		ResultLimit:       cfg.Search.ResultLimit,
		FollowUpDetection: cfg.Search.FollowUpDetection,
	})

	// Health service. Pass nil interfaces, not typed nil pointers.
	var assistantChecker healthuc.AssistantChecker
	if hc, ok := primary.(domain.HealthChecker); ok {
		assistantChecker = hc
	}
	healthSvc := healthuc.New(store, assistantChecker, limitHealth)

	server := chiTransport.NewServer(searchSvc, healthSvc, cfg.HTTP.MaxBodyBytes, logger)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(corsHandler.Handler)
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildLimitStore selects the rate-limit backend. The in-memory store gets a
// janitor goroutine bound to ctx and has no health check.
func buildLimitStore(
	ctx context.Context, cfg config.RateLimitConfig, logger *zap.Logger,
) (ratelimituc.Store, healthuc.DBPinger) {
	switch cfg.Driver {
	case "redis":
		rs, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create rate limit store", zap.Error(err))
		}
		if err := rs.WaitForReady(ctx, 10*time.Second); err != nil {
			logger.Fatal("Rate limit store not ready", zap.Error(err))
		}
		logger.Info("Rate limiting via redis", zap.Strings("addrs", cfg.Addrs))
		return ratelimitrepo.NewRedisStore(rs, cfg.KeyPrefix), rs
	default:
		ms := ratelimitrepo.NewMemoryStore()
		go ms.Run(ctx, sweepInterval)
		logger.Info("Rate limiting in process memory")
		return ms, nil
	}
}

// buildClassifier creates the primary language-understanding provider.
// Returns nil for provider "none".
func buildClassifier(cfg config.AssistantConfig, timeout time.Duration, logger *zap.Logger) domain.Classifier {
	switch cfg.Provider {
	case "openai":
		return openaiClassifier.NewClassifier(&openaiClassifier.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Logger:  logger,
		})
	case "service":
		return assistant.NewClient(&assistant.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: timeout,
			Logger:  logger,
		})
	default:
		logger.Info("Assistant disabled, using vocabulary extraction only")
		return nil
	}
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
						"error": "Internal server error",
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("client", chiTransport.ClientKey(r)),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
