package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dockpanel/internal/constants"
	"dockpanel/internal/container"
	"dockpanel/internal/lazy"
	"dockpanel/internal/logger"
	"dockpanel/internal/panel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the server configuration
type Config struct {
	// Server settings
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`

	// CORS settings
	AllowOrigins []string `toml:"allow_origins"`
	AllowHeaders []string `toml:"allow_headers"`

	// Logging
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            constants.DefaultServerHost,
		Port:            constants.DefaultServerPort,
		ReadTimeout:     constants.DefaultServerReadTimeout,
		WriteTimeout:    constants.DefaultServerWriteTimeout,
		ShutdownTimeout: constants.DefaultServerShutdownTimeout,
		AllowOrigins:    []string{"*"},
		AllowHeaders:    []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
		LogLevel:        "info",
	}
}

// Server represents the panel HTTP server
type Server struct {
	config    *Config
	echo      *echo.Echo
	panel     *panel.Panel
	runtime   container.Runtime
	startTime time.Time
	routed    bool

	// dockerStatus memoizes the availability probe behind /health
	dockerStatus *lazy.Lazy[bool]
}

// New creates a new server instance serving p
func New(cfg *Config, p *panel.Panel, runtime container.Runtime) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.LogLevel != "" {
		logger.SetLevel(cfg.LogLevel)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Set custom error handler
	e.HTTPErrorHandler = ErrorHandler
	e.Renderer = newTemplateRenderer()

	return &Server{
		config:       cfg,
		echo:         e,
		panel:        p,
		runtime:      runtime,
		startTime:    time.Now(),
		dockerStatus: lazy.NewWithTTL(func(ctx context.Context) (bool, error) {
			return runtime != nil && runtime.IsAvailable(ctx), nil
		}, constants.DockerStatusTTL),
	}
}

// Echo returns the Echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	s.setup()
	return s.echo
}

func (s *Server) setup() {
	if s.routed {
		return
	}
	s.routed = true
	s.setupMiddleware()
	s.setupRoutes()
}

// Start loads the inventory, serves until ctx is cancelled or a signal
// arrives, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.setup()

	// An initial fetch failure leaves the tables empty; the panel stays usable.
	if err := s.panel.Load(ctx); err != nil {
		logger.WithError(err).Warn("Initial inventory load failed")
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	logger.WithField("addr", addr).Info("Starting panel server")

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.echo,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(logger.RequestLogger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.config.AllowOrigins,
		AllowHeaders: s.config.AllowHeaders,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
	}))
}
