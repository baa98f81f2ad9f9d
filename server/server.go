package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newspulse/pkg/dashboard"
	"github.com/umputun/newspulse/pkg/domain"
	"github.com/umputun/newspulse/pkg/stream"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/dashboard.go -pkg mocks -skip-ensure -fmt goimports . Dashboard
//go:generate moq -out mocks/stream.go -pkg mocks -skip-ensure -fmt goimports . Stream
//go:generate moq -out mocks/status.go -pkg mocks -skip-ensure -fmt goimports . StatusProvider

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	dashboard Dashboard
	stream    Stream
	status    StatusProvider
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Dashboard serves the merged article view and the user filter
type Dashboard interface {
	View() dashboard.View
	Filter() domain.Filter
	SetFilter(ctx context.Context, f domain.Filter) error
	Stats() (domain.DashboardStats, time.Time, bool)
	Refresh()
}

// Stream controls the push connection
type Stream interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Subscribe(ctx context.Context, topics []string) error
	RequestStats(ctx context.Context) error
}

// StatusProvider reports what is known about the push connection
type StatusProvider interface {
	Health() domain.ConnectionHealth
	ServerStats() (domain.ConnectionStats, bool)
	Topics() []string
	Counters() stream.RouterCounters
	Welcome() string
	LastFrame() time.Time
	LastPong() time.Time
	Pings() (sent, missed uint64)
	Buffered() int
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, dash Dashboard, conn Stream, status StatusProvider, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		dashboard: dash,
		stream:    conn,
		status:    status,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newspulse", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64KB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /articles", s.articlesHandler)
		r.HandleFunc("GET /filter", s.getFilterHandler)
		r.HandleFunc("PUT /filter", s.setFilterHandler)
		r.HandleFunc("GET /dashboard/stats", s.dashboardStatsHandler)
		r.HandleFunc("POST /dashboard/refresh", s.refreshHandler)

		// push connection control
		r.HandleFunc("POST /connect", s.connectHandler)
		r.HandleFunc("POST /disconnect", s.disconnectHandler)
		r.HandleFunc("POST /subscribe", s.subscribeHandler)
		r.HandleFunc("POST /stats/refresh", s.requestStatsHandler)
	})
}
