package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/salesgate/internal/metrics"
)

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	CORSOrigins []string
	APIKeys     []string
}

// NewRouter mounts the gateway routes behind recovery, request logging, CORS,
// authentication and metrics.
func NewRouter(s *Server, log *zap.Logger, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(log))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(log))
	r.Use(CORSMiddleware(opts.CORSOrigins))
	r.Use(BearerAuthMiddleware(opts.APIKeys))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api", func(r chi.Router) {
		r.Get("/sales", s.ListSales)
		r.Get("/stats", s.GetStats)
	})
	return r
}
