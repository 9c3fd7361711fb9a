package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/intransparency/talentsearch/internal/domain"
	healthuc "github.com/intransparency/talentsearch/internal/usecase/health"
	searchuc "github.com/intransparency/talentsearch/internal/usecase/search"
)

// Client-facing error messages.
const (
	msgInvalidBody = "Invalid request body"
	msgRateLimited = "Too many requests. Please try again later."
	msgInternal    = "Internal server error"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes = 16 << 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the search gateway API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	maxBodyBytes  int64
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. maxBodyBytes <= 0 uses DefaultMaxBodyBytes.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	maxBodyBytes int64,
	logger *zap.Logger,
) *Server {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		search:       search,
		health:       health,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, msgRateLimited),
	}
	return s
}

// Register mounts the gateway routes on r.
func (s *Server) Register(r chi.Router) {
	r.Post("/api/public/ai-search", s.Search)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchRequest struct {
	Query     string `json:"query"`
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// Search handles POST /api/public/ai-search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientKey := ClientKey(r)

	var req searchRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		// The hit still counts against the caller's window.
		if admitErr := s.search.Admit(ctx, clientKey); admitErr != nil {
			s.handleDomainError(w, admitErr)
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	resp, err := s.search.Search(ctx, clientKey, searchuc.Input{
		Query:     req.Query,
		Type:      req.Type,
		SessionID: req.SessionID,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.logger.Debug("search abandoned by client", zap.Error(err))
			return
		}
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health. Only an unhealthy report answers 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: report.Status,
		Checks: report.Checks,
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

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

// validationHandler handles ErrInvalidRequest, echoing the validation message.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidRequest) {
		return false
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Message)
		return true
	}
	writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, msgInternal)
}
