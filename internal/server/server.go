// Package server is the composition root of the web application: it builds
// services and handlers on top of the database, mounts them on a chi router,
// and runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sakif/blogly/internal/config"
	"github.com/sakif/blogly/internal/handler"
	"github.com/sakif/blogly/internal/middleware"
	"github.com/sakif/blogly/internal/repository/gormdb"
	"github.com/sakif/blogly/internal/service"
	"github.com/sakif/blogly/web"
)

const shutdownTimeout = 30 * time.Second

// Server owns the router and the database handle; Start closes the database
// on the way out.
type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *slog.Logger
	db      *gormdb.DB
	handler http.Handler
}

// New wires repositories, services and handlers and registers every route.
func New(cfg *config.Config, db *gormdb.DB, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	// Spans start as "GET"; RouteSpanName appends the chi pattern once routed.
	s.handler = otelhttp.NewHandler(s.router, "blogly.http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method
		}),
	)
	return s, nil
}

// Handler returns the fully wrapped HTTP handler (used directly by tests).
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) templates() fs.FS {
	if s.config.TemplateDir != "" {
		return os.DirFS(s.config.TemplateDir)
	}
	return web.Templates()
}

// setupRoutes mounts middleware and the route table.
//
//	GET  /                       → 302 /users
//	GET  /users                  POST /users/new         GET /users/new
//	GET  /users/{id}             GET|POST /users/{id}/edit
//	POST /users/{id}/delete      GET|POST /users/{id}/posts/new
//	GET  /posts/{id}             GET|POST /posts/{id}/edit
//	POST /posts/{id}/delete
//	GET  /tags                   GET|POST /tags/new
//	GET  /tags/{id}              GET|POST /tags/{id}/edit
//	GET  /static/*, /healthz, /metrics
func (s *Server) setupRoutes() error {
	render, err := handler.NewRenderer(s.templates(), s.logger)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	// chi requires every middleware to be registered before the first route.
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RouteSpanName)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	var reg *prometheus.Registry
	if s.config.MetricsEnabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s.router.Use(middleware.NewMetrics(reg).Handler)
	}
	s.router.Use(chimiddleware.Recoverer)

	s.router.NotFound(render.NotFound)
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	s.router.Get("/healthz", s.handleHealth)
	if reg != nil {
		s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}

	// s.db implements all three repository interfaces.
	userService := service.NewUserService(s.db, s.db, s.logger)
	postService := service.NewPostService(s.db, s.db, s.db, s.logger)
	tagService := service.NewTagService(s.db, s.logger)

	homeHandler := handler.NewHomeHandler()
	userHandler := handler.NewUserHandler(userService, postService, render, s.logger)
	postHandler := handler.NewPostHandler(postService, render, s.logger)
	tagHandler := handler.NewTagHandler(tagService, render, s.logger)

	s.router.Get("/", homeHandler.HandleHome)

	s.router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.HandleList)
		r.Get("/new", userHandler.HandleNewForm)
		r.Post("/new", userHandler.HandleCreate)
		r.Get("/{id:[0-9]+}", userHandler.HandleShow)
		r.Get("/{id:[0-9]+}/edit", userHandler.HandleEditForm)
		r.Post("/{id:[0-9]+}/edit", userHandler.HandleUpdate)
		r.Post("/{id:[0-9]+}/delete", userHandler.HandleDelete)
		r.Get("/{id:[0-9]+}/posts/new", postHandler.HandleNewForm)
		r.Post("/{id:[0-9]+}/posts/new", postHandler.HandleCreate)
	})

	s.router.Route("/posts", func(r chi.Router) {
		r.Get("/{id:[0-9]+}", postHandler.HandleShow)
		r.Get("/{id:[0-9]+}/edit", postHandler.HandleEditForm)
		r.Post("/{id:[0-9]+}/edit", postHandler.HandleUpdate)
		r.Post("/{id:[0-9]+}/delete", postHandler.HandleDelete)
	})

	s.router.Route("/tags", func(r chi.Router) {
		r.Get("/", tagHandler.HandleList)
		r.Get("/new", tagHandler.HandleNewForm)
		r.Post("/new", tagHandler.HandleCreate)
		r.Get("/{id:[0-9]+}", tagHandler.HandleShow)
		r.Get("/{id:[0-9]+}/edit", tagHandler.HandleEditForm)
		r.Post("/{id:[0-9]+}/edit", tagHandler.HandleUpdate)
	})

	return nil
}

// handleHealth reports 200 when the database answers a ping, 503 otherwise.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database unavailable\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for up to
// 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("port", s.config.Port),
			slog.String("url", "http://localhost:"+s.config.Port),
			slog.String("driver", s.config.DBDriver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
