package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/emiliopalmerini/mood/internal/adapters/prometheus"
	"github.com/emiliopalmerini/mood/internal/config"
	"github.com/emiliopalmerini/mood/internal/logging"
	"github.com/emiliopalmerini/mood/internal/recording"
)

type Server struct {
	router          *chi.Mux
	addr            string
	shutdownTimeout time.Duration
	service         *recording.Service
	metrics         *prometheus.Metrics
	logger          *logging.Logger
}

// NewServer wires the HTTP API over the recording service. metrics may be nil,
// in which case /metrics is not mounted.
func NewServer(cfg config.Server, svc *recording.Service, metrics *prometheus.Metrics, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		router:          chi.NewRouter(),
		addr:            cfg.Addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		service:         svc,
		metrics:         metrics,
		logger:          logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Pages
	r.Get("/", s.handleIndex)

	r.Route("/api", func(r chi.Router) {
		r.Get("/vocabulary", s.handleVocabulary)

		r.Post("/records", s.handleCreateRecord)
		r.Get("/records", s.handleListRecords)
		r.Delete("/records/{id}", s.handleDeleteRecord)
		r.Get("/stats", s.handleStats)

		r.Post("/authorization/{scope}", s.handleAuthorize)
		r.Get("/authorization/{scope}", s.handleAuthorizationStatus)
		r.Delete("/authorization/{scope}", s.handleRevoke)
	})
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("http server listening", "addr", s.addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// observe logs each request and feeds the HTTP metrics.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveRequest(r.Method, route, ww.Status(), elapsed)
		}
		s.logger.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
