package restapi

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/jimmysun0815/snow-api/internal/log"
)

// Server is the Read API (§4.7): a stateless JSON service over the
// Persistence Layer, with a short-lived cache in front of the summary
// endpoint. Router shape follows the teacher's REST controller —
// mux.Router wrapped in gorilla/handlers logging/recovery middleware.
type Server struct {
	store    Store
	cache    Cache
	adminKey string
	log      *zap.SugaredLogger
	now      func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithNow overrides the clock, for tests exercising the opening-date rewrite.
func WithNow(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(store Store, cache Cache, adminKey string, log *zap.SugaredLogger, opts ...Option) *Server {
	s := &Server{store: store, cache: cache, adminKey: adminKey, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the mux.Router with every §4.7 route plus the supplemented
// quality and admin-enable endpoints, wrapped in request logging and panic
// recovery middleware.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/resorts", s.handleListResorts).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/summary", s.handleResortsSummary).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/open", s.handleOpenResorts).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/search", s.handleSearchResorts).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/nearby", s.handleNearbyResorts).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/{id:[0-9]+}", s.handleResortByID).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/slug/{slug}", s.handleResortBySlug).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/{id:[0-9]+}/trails", s.handleTrailsByID).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/slug/{slug}/trails", s.handleTrailsBySlug).Methods(http.MethodGet)
	r.HandleFunc("/api/resorts/{id:[0-9]+}/quality", s.handleQuality).Methods(http.MethodGet)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/resorts/{id:[0-9]+}", s.handleAdminDisable).Methods(http.MethodDelete)
	r.HandleFunc("/api/admin/resorts/{id:[0-9]+}/enable", s.handleAdminEnable).Methods(http.MethodPost)
	r.HandleFunc("/api/admin/logs", s.handleAdminLogs).Methods(http.MethodGet)
	r.HandleFunc("/api/admin/http-logs", s.handleAdminHTTPLogs).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = handlers.RecoveryHandler()(handler)
	handler = httpLogMiddleware(handler)
	if s.log != nil {
		handler = handlers.CombinedLoggingHandler(zapWriter{s.log}, handler)
	}
	return handler
}

// zapWriter adapts the sugared logger to an io.Writer so
// handlers.CombinedLoggingHandler can log access lines through it.
type zapWriter struct{ log *zap.SugaredLogger }

func (w zapWriter) Write(p []byte) (int, error) {
	w.log.Infow("http_access", "line", string(p))
	return len(p), nil
}

// httpLogMiddleware feeds every request into the HTTP log ring buffer
// (internal/log.LogHTTPRequest), so /api/admin/http-logs can serve access
// history, not just the combined-log-format line.
func httpLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.LogHTTPRequest(r.Method, r.URL.Path, rec.status, time.Since(start), rec.size, r.RemoteAddr, r.UserAgent(), nil)
	})
}

// statusRecorder captures the status code and bytes written so
// httpLogMiddleware can report them after the handler runs.
type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}
