// Package httpapi provides the HTTP ops surface for triaged.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/triaged/internal/analytics"
	"github.com/fyrsmithlabs/triaged/internal/logging"
	"github.com/fyrsmithlabs/triaged/internal/pipeline"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int

	// FeedbackRPS and FeedbackBurst bound the feedback endpoint, which
	// is the only unauthenticated write surface.
	FeedbackRPS   float64
	FeedbackBurst int
}

// Server exposes the pipeline and analytics over HTTP.
type Server struct {
	echo        *echo.Echo
	pipe        *pipeline.Pipeline
	analytics   *analytics.Service
	logger      *logging.Logger
	config      *Config
	feedbackLim *rate.Limiter
}

// NewServer creates the ops server and registers its routes.
func NewServer(pipe *pipeline.Pipeline, svc *analytics.Service, logger *logging.Logger, cfg *Config) (*Server, error) {
	if pipe == nil {
		return nil, fmt.Errorf("pipeline cannot be nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("analytics service cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host:          "127.0.0.1",
			Port:          8087,
			FeedbackRPS:   5,
			FeedbackBurst: 10,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info(c.Request().Context(), "http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:        e,
		pipe:        pipe,
		analytics:   svc,
		logger:      logger.Named("httpapi"),
		config:      cfg,
		feedbackLim: rate.NewLimiter(rate.Limit(cfg.FeedbackRPS), cfg.FeedbackBurst),
	}

	s.registerRoutes()
	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/analyze", s.handleAnalyze)
	v1.POST("/feedback", s.handleFeedback)
	v1.GET("/dashboard", s.handleDashboard)
}

// AnalyzeRequest is the request body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Text         string                 `json:"text"`
	Demographics *pipeline.Demographics `json:"demographics,omitempty"`
}

// FeedbackRequest is the request body for POST /api/v1/feedback.
type FeedbackRequest struct {
	QueryType    string               `json:"query_type"`
	Urgency      pipeline.TriageLevel `json:"urgency"`
	Rating       int                  `json:"rating"`
	Improvements []string             `json:"improvements,omitempty"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleAnalyze runs one pipeline pass and returns the enriched turn
// context.
func (s *Server) handleAnalyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(c.Request().Context(), "invalid analyze request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text field is required")
	}

	result := s.pipe.Run(c.Request().Context(), req.Text, req.Demographics)
	return c.JSON(http.StatusOK, result)
}

// handleFeedback records a user rating for a past turn.
func (s *Server) handleFeedback(c echo.Context) error {
	if !s.feedbackLim.Allow() {
		return echo.NewHTTPError(http.StatusTooManyRequests, "feedback rate limit exceeded")
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(c.Request().Context(), "invalid feedback request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.QueryType == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query_type field is required")
	}
	if req.Rating < 1 || req.Rating > 10 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 10")
	}

	s.analytics.RecordFeedback(analytics.Feedback{
		QueryType:    req.QueryType,
		Urgency:      req.Urgency,
		Rating:       req.Rating,
		Improvements: req.Improvements,
	})
	return c.NoContent(http.StatusAccepted)
}

// handleDashboard returns the current learned analytics metrics.
func (s *Server) handleDashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, s.analytics.Dashboard())
}

// SetFeedbackLimit retunes the feedback rate limiter at runtime. Used
// by config hot reload.
func (s *Server) SetFeedbackLimit(rps float64, burst int) {
	s.feedbackLim.SetLimit(rate.Limit(rps))
	s.feedbackLim.SetBurst(burst)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info(context.Background(), "starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
