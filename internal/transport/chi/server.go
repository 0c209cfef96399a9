package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/salesgate/internal/domain"
	domsales "github.com/kailas-cloud/salesgate/internal/domain/sales"
	domstats "github.com/kailas-cloud/salesgate/internal/domain/stats"
	"github.com/kailas-cloud/salesgate/internal/logger"
	healthuc "github.com/kailas-cloud/salesgate/internal/usecase/health"
)

// SalesService answers the gateway queries.
type SalesService interface {
	Sales(ctx context.Context) ([]domsales.Document, error)
	Stats(ctx context.Context) (domstats.Stats, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the HTTP handlers of the gateway.
type Server struct {
	sales          SalesService
	health         HealthChecker
	requestTimeout time.Duration
	errorHandlers  []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(sales SalesService, health HealthChecker) *Server {
	return &Server{
		sales:  sales,
		health: health,
		errorHandlers: []errorHandler{
			sentinelHandler(domain.ErrNotReady, http.StatusServiceUnavailable),
		},
	}
}

// WithRequestTimeout bounds every store-backed request. Zero disables the bound.
func (s *Server) WithRequestTimeout(d time.Duration) *Server {
	s.requestTimeout = d
	return s
}

// ListSales handles GET /api/sales.
func (s *Server) ListSales(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	docs, err := s.sales.Sales(ctx)
	if err != nil {
		s.handleError(ctx, w, err)
		return
	}
	if docs == nil {
		docs = []domsales.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// GetStats handles GET /api/stats.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	st, err := s.sales.Stats(ctx)
	if err != nil {
		s.handleError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
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
	writeJSON(w, httpStatus, healthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.requestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), s.requestTimeout)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// sentinelHandler maps a sentinel to a status; the body carries the sentinel text only.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, sentinel.Error())
		return true
	}
}

// handleError answers with the first matching sentinel, otherwise 500 with the
// error text.
func (s *Server) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logger.FromContext(ctx)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Info("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}
