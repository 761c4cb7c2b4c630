// Package server exposes the task store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/zenithtodo/zenith/internal/store"
	"github.com/zenithtodo/zenith/internal/todo"
)

// Options configures the HTTP service.
type Options struct {
	// DefaultPriority is applied to created tasks that omit a priority.
	// It must be set explicitly.
	DefaultPriority todo.Priority
	// CORSOrigins lists the browser origins allowed to call the API.
	CORSOrigins []string
}

// Server is the task service.
type Server struct {
	echo   *echo.Echo
	store  store.Store
	opts   Options
	logger *log.Logger
	now    func() time.Time
}

type messageResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// New builds the service and wires its routes.
func New(s store.Store, opts Options, logger *log.Logger) (*Server, error) {
	if s == nil {
		return nil, errors.New("server: store is required")
	}
	if !opts.DefaultPriority.Valid() {
		return nil, fmt.Errorf("server: %w: default priority %q", todo.ErrInvalidPriority, opts.DefaultPriority)
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{echo: e, store: s, opts: opts, logger: logger, now: time.Now}
	e.HTTPErrorHandler = srv.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Debug("request")
			return nil
		},
	}))
	if len(opts.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     opts.CORSOrigins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowCredentials: true,
		}))
	}

	srv.routes()
	return srv, nil
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)

	api := s.echo.Group("/api")
	api.GET("/todos", s.listTodos)
	api.POST("/todos", s.createTodo)
	api.PUT("/todos/:id", s.updateTodo)
	api.DELETE("/todos/:id", s.deleteTodo)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.WithField("addr", addr).Info("server running")
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok", Message: "Server is running"})
}

// handleError is the last-resort handler for anything a route did not answer.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		s.respond(c, he.Code, messageResponse{Message: msg})
		return
	}

	s.logger.WithError(err).WithField("uri", c.Request().RequestURI).Error("unhandled error")
	s.respond(c, http.StatusInternalServerError, messageResponse{
		Error:   "Something went wrong!",
		Message: err.Error(),
	})
}

func (s *Server) respond(c echo.Context, code int, body messageResponse) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		s.logger.WithError(err).Error("failed to write error response")
	}
}
