// Package api serves the EduCareer session flow over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/config"
	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/mentor"
	"github.com/abhisek/educareer/internal/metrics"
	"github.com/abhisek/educareer/internal/sessions"
)

const shutdownTimeout = 30 * time.Second

// Deps are the services the server routes to. Metrics and Logger are
// optional.
type Deps struct {
	Registry sessions.Registry
	Mentor   *mentor.Service
	Catalog  *catalog.Catalog
	Metrics  *metrics.Metrics
	Logger   *logger.Logger
}

// Server is the HTTP API server.
type Server struct {
	config   config.ServerConfig
	router   *chi.Mux
	registry sessions.Registry
	mentor   *mentor.Service
	catalog  *catalog.Catalog
	metrics  *metrics.Metrics
	log      *logger.Logger
	validate *validator.Validate
}

// NewServer creates a new API server.
func NewServer(cfg config.ServerConfig, deps Deps) *Server {
	s := &Server{
		config:   cfg,
		registry: deps.Registry,
		mentor:   deps.Mentor,
		catalog:  deps.Catalog,
		metrics:  deps.Metrics,
		log:      deps.Logger,
		validate: validator.New(),
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	timeout := s.config.WriteTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	r.Use(middleware.Timeout(timeout))

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Redirect"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleListCatalog)
			r.Get("/{id}", s.handleGetTrack)
			r.Get("/{id}/levels/{level}/modules", s.handleListModules)
		})

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/resolve", s.handleResolve)
			r.Post("/language", s.handleLanguage)
			r.Post("/browse", s.handleBrowse)
			r.Post("/login", s.handleBeginLogin)
			r.Post("/select", s.handleSelect)
			r.Post("/authenticate", s.handleAuthenticate)
			r.Post("/retake", s.handleRetake)
			r.Post("/logout", s.handleLogout)

			r.Post("/assessment", s.handleStartAssessment)
			r.Post("/assessment/answers", s.handleAnswer)
			r.Post("/assessment/advance", s.handleAdvance)
			r.Post("/assessment/complete", s.handleCompleteAssessment)

			r.Get("/task", s.handleDailyTask)
			r.Post("/task/submit", s.handleSubmit)
			r.Post("/task/confirm", s.handleConfirm)
			r.Post("/chat", s.handleChat)
			r.Get("/chat", s.handleTranscript)

			r.Get("/portfolio", s.handlePortfolio)
			r.Get("/projects", s.handleProjects)
		})
	})

	s.router = r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loggingMiddleware logs each request and records its metrics under the
// matched route pattern.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			if s.metrics != nil {
				s.metrics.ObserveHTTPRequest(route, r.Method, status, elapsed)
			}
			s.log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", elapsed.Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
