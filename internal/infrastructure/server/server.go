package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/taskmaster/matrix/docs"
	httpHandlers "github.com/taskmaster/matrix/internal/adapters/http"
	"github.com/taskmaster/matrix/internal/adapters/repository"
	"github.com/taskmaster/matrix/internal/application/services"
	"github.com/taskmaster/matrix/internal/infrastructure/config"
	"github.com/taskmaster/matrix/internal/infrastructure/database"
	"github.com/taskmaster/matrix/internal/infrastructure/logger"
	"github.com/taskmaster/matrix/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Option customises server construction
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to issue and verify session tokens
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger, opts ...Option) (*Server, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	e := echo.New()

	validate := services.NewValidator()
	e.Validator = &CustomValidator{validator: validate}

	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = customErrorHandler(appLogger, cfg.App.Debug)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	taskRepo := repository.NewTaskRepository(db.DB)

	// Initialize services
	codec := services.NewJWTCodec([]byte(cfg.JWT.Secret), cfg.JWT.ExpiresIn, cfg.JWT.Issuer)
	authService := services.NewAuthService(userRepo, codec, services.AuthOptions{
		BcryptCost:   cfg.Security.BcryptCost,
		CookieSecure: cfg.Security.CookieSecure,
		Now:          o.now,
	}, appLogger)
	taskService := services.NewTaskService(taskRepo, validate, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	server.setupMiddleware()

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	server.setupRoutes(authHandler, taskHandler, authService)

	return server, nil
}

// Handler exposes the router, e.g. for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
				"request_id", values.RequestID,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Warnw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// Session cookies require credentialed CORS, which forbids a wildcard origin
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	s.echo.Use(middleware.BodyLimit(s.config.Server.BodyLimit))

	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: s.config.Server.RequestTimeout,
		}))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, taskHandler *httpHandlers.TaskHandler, authService ports.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	api := s.echo.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/session", authHandler.Session, s.requireSession(authService))

	// Task routes (authenticated)
	taskGroup := api.Group("/tasks", s.requireSession(authService))
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.GET("/:id", taskHandler.GetTask)
	taskGroup.PUT("/:id", taskHandler.ReplaceTask)
	taskGroup.PATCH("/:id", taskHandler.PatchTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)

	// Pre-built client bundle
	if s.config.Server.StaticDir != "" {
		s.echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:  s.config.Server.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/api/")
			},
		}))
	}
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(
		requestsTotal,
		requestDuration,
		collectors.NewGoCollector(),
		collectors.NewDBStatsCollector(s.db.DB.DB, s.db.Driver()),
	)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = statusFor(err)
				}
			}

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(time.Since(start).Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET(s.config.Metrics.Path, echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.HealthCheck(c.Request().Context()); err != nil {
		s.logger.Warnw("Readiness check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"database": s.db.GetConnectionInfo(),
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Server.Address(),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.logger.Infow("Starting server", "address", srv.Addr)
	return s.echo.StartServer(srv)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}
