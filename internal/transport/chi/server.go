package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yojanadost/yojana/internal/domain"
	"github.com/yojanadost/yojana/internal/domain/scheme"
	cataloguc "github.com/yojanadost/yojana/internal/usecase/catalog"
	chatuc "github.com/yojanadost/yojana/internal/usecase/chat"
	healthuc "github.com/yojanadost/yojana/internal/usecase/health"
	personaluc "github.com/yojanadost/yojana/internal/usecase/personalization"
	pipelineuc "github.com/yojanadost/yojana/internal/usecase/pipeline"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Dataset is the reloadable scheme snapshot.
type Dataset interface {
	Schemes() ([]scheme.Scheme, error)
	Reload(ctx context.Context) (int, error)
}

// Server serves the scheme finder HTTP API.
type Server struct {
	queries       *pipelineuc.Service
	catalog       *cataloguc.Service
	agent         *chatuc.Agent
	personal      *personaluc.Service
	dataset       Dataset
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	queries *pipelineuc.Service,
	catalog *cataloguc.Service,
	agent *chatuc.Agent,
	personal *personaluc.Service,
	dataset Dataset,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		queries:  queries,
		catalog:  catalog,
		agent:    agent,
		personal: personal,
		dataset:  dataset,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrSchemeNotFound, http.StatusNotFound, codeSchemeNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidSession, http.StatusBadRequest, codeInvalidSession),
		sentinelHandler(domain.ErrInvalidPreferences, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrDatasetUnavailable, http.StatusServiceUnavailable, codeDatasetUnavailable),
		sentinelHandler(domain.ErrChatProviderError, http.StatusBadGateway, codeChatProviderError),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
	}
	return s
}

// Routes mounts the API on r. apiKeys guard the admin group only.
func (s *Server) Routes(r chi.Router, apiKeys []string) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/data/schemes.json", s.ExportDataset)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/schemes", s.ListSchemes)
		r.Get("/schemes/{id}", s.GetScheme)
		r.Get("/categories", s.ListCategories)
		r.Get("/states", s.ListStates)
		r.Get("/stats", s.GetStats)
		r.Get("/suggestions", s.Suggest)
		r.Post("/chat", s.Chat)

		r.Post("/sessions", s.CreateSession)
		r.Route("/sessions/{session}", func(r chi.Router) {
			r.Get("/bookmarks", s.ListBookmarks)
			r.Delete("/bookmarks", s.ClearBookmarks)
			r.Put("/bookmarks/{id}", s.ToggleBookmark)
			r.Delete("/bookmarks/{id}", s.RemoveBookmark)
			r.Get("/preferences", s.GetPreferences)
			r.Put("/preferences", s.SavePreferences)
			r.Delete("/preferences", s.ResetPreferences)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(BearerAuthMiddleware(apiKeys))
			r.Post("/dataset/reload", s.ReloadDataset)
		})
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSchemeNotFound,
		domain.ErrInvalidQuery,
		domain.ErrInvalidSession,
		domain.ErrInvalidPreferences,
		domain.ErrDatasetUnavailable,
		domain.ErrChatProviderError,
		domain.ErrRateLimited,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
