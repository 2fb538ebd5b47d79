package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/yojanadost/yojana/internal/config"
	"github.com/yojanadost/yojana/internal/db"
	"github.com/yojanadost/yojana/internal/db/memory"
	dbRedis "github.com/yojanadost/yojana/internal/db/redis"
	"github.com/yojanadost/yojana/internal/domain"
	logpkg "github.com/yojanadost/yojana/internal/logger"
	"github.com/yojanadost/yojana/internal/metrics"
	datasetrepo "github.com/yojanadost/yojana/internal/repository/dataset"
	personalrepo "github.com/yojanadost/yojana/internal/repository/personalization"
	"github.com/yojanadost/yojana/internal/repository/replycache"
	chiTransport "github.com/yojanadost/yojana/internal/transport/chi"
	"github.com/yojanadost/yojana/internal/transport/httpbot"
	openaiChat "github.com/yojanadost/yojana/internal/transport/openai"
	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
	chatuc "github.com/yojanadost/yojana/internal/usecase/chat"
	healthuc "github.com/yojanadost/yojana/internal/usecase/health"
	personaluc "github.com/yojanadost/yojana/internal/usecase/personalization"
	pipelineuc "github.com/yojanadost/yojana/internal/usecase/pipeline"
	"github.com/yojanadost/yojana/internal/version"
)

const memoryCleanupInterval = 10 * time.Minute

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

	logger.Info("Starting yojana API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("dataset_source", cfg.Dataset.Source),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("chat_provider", cfg.Chat.Provider),
	)

	store, err := openStore(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to create storage", zap.Error(err))
	}
	defer store.Close()

	// Wait for storage to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Storage not ready", zap.Error(err))
	}
	logger.Info("Connected to storage", zap.String("driver", cfg.Storage.Driver))

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterDatasetMetrics()
	metrics.RegisterChatMetrics()

	// Dataset snapshot. A failed first load is not fatal: queries answer 503
	// until an admin reload succeeds.
	loader := datasetrepo.NewLoader(cfg.Dataset.Source, time.Duration(cfg.Dataset.TimeoutSec)*time.Second)
	dataset := datasetrepo.New(loader, datasetrepo.Metrics{
		Loads:    metrics.DatasetLoadsTotal,
		Schemes:  metrics.DatasetSchemes,
		Duration: metrics.DatasetLoadDuration,
	}, logger)
	if n, err := dataset.Reload(ctx); err != nil {
		if errors.Is(err, domain.ErrEmptyDataset) {
			logger.Warn("Dataset is empty, every query returns zero results")
		} else {
			logger.Warn("Initial dataset load failed", zap.Error(err))
		}
	} else {
		logger.Info("Dataset ready", zap.Int("schemes", n))
	}

	// Chat: rule agent with an optional rate-limited remote responder
	remote, chatChecker := buildResponder(cfg.Chat, logger)
	agentOpts := []chatuc.Option{
		chatuc.WithLogger(logger),
		chatuc.WithRepliesCounter(metrics.ChatRepliesTotal),
	}
	if remote != nil {
		var responder chatuc.Responder = chatuc.NewLimitedResponder(remote, cfg.Chat.RatePerSec, cfg.Chat.Burst)
		if cfg.Chat.CacheTTLMin > 0 {
			// Cache hits never consume the rate budget.
			responder = replycache.New(responder, store, cfg.Storage.KeyPrefix,
				time.Duration(cfg.Chat.CacheTTLMin)*time.Minute, metrics.ChatReplyCacheTotal, logger)
		}
		agentOpts = append(agentOpts, chatuc.WithRemote(responder))
	}
	agent := chatuc.NewAgent(dataset, agentOpts...)

	// Use case services
	queries := pipelineuc.NewService(dataset,
		pipelineuc.WithPageSize(cfg.Query.DefaultPageSize),
		pipelineuc.WithMaxPageSize(cfg.Query.MaxPageSize),
	)
	catalog := cataloguc.New(dataset)
	personalRepo := personalrepo.New(store, cfg.Storage.KeyPrefix,
		time.Duration(cfg.Storage.SessionTTLHours)*time.Hour)
	personal := personaluc.New(personalRepo, dataset)
	healthSvc := healthuc.New(dataset, store, chatChecker)

	// Create chi server
	server := chiTransport.NewServer(queries, catalog, agent, personal, dataset, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r, cfg.Auth.APIKeys)

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

// openStore creates the personalization key-value store for the configured driver.
func openStore(cfg config.StorageConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(memoryCleanupInterval), nil
	case config.DriverRedis, config.DriverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Addrs,
			Username:   cfg.Username,
			Password:   cfg.Password,
			DB:         cfg.DB,
			Standalone: cfg.Standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("%s store: %w", cfg.Driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// buildResponder creates the remote chat responder, if one is configured.
// Both results are nil interfaces (not typed nil pointers) when chat is disabled.
func buildResponder(cfg config.ChatConfig, logger *zap.Logger) (chatuc.Responder, healthuc.ChatChecker) {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	switch cfg.Provider {
	case config.ChatProviderOpenAI:
		r := openaiChat.NewResponder(&openaiChat.Config{
			APIKey:       cfg.APIKey,
			BaseURL:      cfg.BaseURL,
			Model:        cfg.Model,
			SystemPrompt: cfg.SystemPrompt,
			Timeout:      timeout,
			Logger:       logger,
		})
		logger.Info("Chat responder created", zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
		return r, r
	case config.ChatProviderHTTP:
		logger.Info("Chat responder created", zap.String("provider", cfg.Provider), zap.String("endpoint", cfg.EndpointURL))
		return httpbot.New(cfg.EndpointURL, timeout), nil
	default:
		return nil, nil
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

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithEvent(logpkg.ContextWithLogger(r.Context(), reqLogger))

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			fields := append([]zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			}, logpkg.EventFields(ctx)...)
			reqLogger.Info("http_request", fields...)
		})
	}
}
