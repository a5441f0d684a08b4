// Package http serves the bundle viewer and the reference API.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/showyourwork/internal/bundle"
	"github.com/fyrsmithlabs/showyourwork/internal/logging"
	"github.com/fyrsmithlabs/showyourwork/internal/reference"
	"github.com/fyrsmithlabs/showyourwork/internal/viewer"
)

// OpenFilePath is the endpoint rendered pages post clicked references to.
const OpenFilePath = "/api/v1/open-file"

// Fetcher resolves bundles by normalized ID.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*bundle.Bundle, error)
}

// Server provides the viewer endpoints.
type Server struct {
	echo     *echo.Echo
	fetcher  Fetcher
	renderer *viewer.HTMLRenderer
	panel    *viewer.Panel
	opener   viewer.Opener
	logger   *logging.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
	// WorkspaceRoots are searched, in order, for referenced files.
	WorkspaceRoots []string
}

// Option configures a Server.
type Option func(*Server)

// WithOpener sets what happens to a resolved file reference. Without one
// the location is only returned to the caller.
func WithOpener(o viewer.Opener) Option {
	return func(s *Server) {
		s.opener = o
	}
}

// NewServer creates a new HTTP server.
func NewServer(fetcher Fetcher, logger *logging.Logger, cfg *Config, opts ...Option) (*Server, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 7373,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		fetcher:  fetcher,
		renderer: viewer.NewHTMLRenderer(OpenFilePath),
		panel:    &viewer.Panel{},
		logger:   logger,
		config:   cfg,
	}
	for _, opt := range opts {
		opt(s)
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(NewHTTPMetrics().MetricsMiddleware())
	e.Use(s.requestLogger)

	s.registerRoutes()
	return s, nil
}

// requestLogger logs each request and puts its ID on the request context.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		reqID := c.Response().Header().Get(echo.HeaderXRequestID)
		ctx := logging.WithRequestID(c.Request().Context(), reqID)
		c.SetRequest(c.Request().WithContext(ctx))

		if err := next(c); err != nil {
			c.Error(err)
		}

		s.logger.Info(ctx, "http request",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", c.Response().Status),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	}
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s.echo.GET("/", s.handleCurrent)
	s.echo.GET(bundle.OpenPath, s.handleOpen)

	v1 := s.echo.Group("/api/v1")
	v1.GET("/bundles/:id", s.handleGetBundle)
	v1.POST("/references", s.handleReferences)
	v1.POST("/linkify", s.handleLinkify)
	v1.POST("/open-file", s.handleOpenFile)
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	resp := HealthResponse{Status: "ok"}
	if b, _, ok := s.panel.Current(); ok {
		resp.Current = b.ID
	}
	return c.JSON(http.StatusOK, resp)
}

// handleCurrent serves the page on display.
func (s *Server) handleCurrent(c echo.Context) error {
	_, page, ok := s.panel.Current()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no bundle open; visit /open?gist=<id>")
	}
	return c.HTML(http.StatusOK, page)
}

// handleOpen fetches a bundle, puts it on display, and serves its page.
// It is the HTTP form of the open link: /open?gist=<id-or-url>.
func (s *Server) handleOpen(c echo.Context) error {
	raw := c.QueryParam("gist")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, bundle.ErrMissingGist.Error())
	}

	ctx := c.Request().Context()
	b, err := s.fetch(ctx, raw)
	if err != nil {
		return err
	}

	page, err := s.renderer.Render(b)
	if err != nil {
		s.logger.Error(ctx, "render failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render gist")
	}

	reused := s.panel.Show(b, page)
	s.logger.Debug(ctx, "bundle on display", zap.String("bundle.id", b.ID), zap.Bool("reused", reused))
	return c.HTML(http.StatusOK, page)
}

// handleGetBundle returns a bundle as JSON.
func (s *Server) handleGetBundle(c echo.Context) error {
	b, err := s.fetch(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) fetch(ctx context.Context, raw string) (*bundle.Bundle, error) {
	id := bundle.NormalizeID(raw)
	if id == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "gist id is required")
	}

	b, err := s.fetcher.Fetch(ctx, id)
	if err != nil {
		s.logger.Warn(ctx, "gist fetch failed", zap.String("bundle.id", id), zap.Error(err))
		return nil, echo.NewHTTPError(http.StatusBadGateway,
			fmt.Sprintf("%v. Make sure you have the gh CLI installed and authenticated, or that the gist is public.", err))
	}
	return b, nil
}

// handleReferences extracts file references from text.
func (s *Server) handleReferences(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(c.Request().Context(), "invalid references request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, ReferencesResponse{References: reference.Extract(req.Text)})
}

// handleLinkify rewrites file references in text as anchors.
func (s *Server) handleLinkify(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(c.Request().Context(), "invalid linkify request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, LinkifyResponse{Text: reference.Linkify(req.Text)})
}

// handleOpenFile resolves a clicked reference against the workspace roots
// and hands it to the opener.
func (s *Server) handleOpenFile(c echo.Context) error {
	ctx := c.Request().Context()

	var req OpenFileRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn(ctx, "invalid open-file request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	payload := reference.Payload{Path: req.Path, Line: req.Line, Column: req.Column}
	if req.Href != "" {
		p, err := reference.DecodePayload(req.Href)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		payload = p
	}
	if payload.Path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "href or path is required")
	}

	loc, err := viewer.Locate(s.config.WorkspaceRoots, payload)
	switch {
	case errors.Is(err, viewer.ErrNoWorkspace):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, viewer.ErrFileNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case err != nil:
		return err
	}

	resp := OpenFileResponse{Location: loc}
	if s.opener != nil {
		if err := s.opener.Open(ctx, loc); err != nil {
			s.logger.Warn(ctx, "open file failed", zap.String("path", loc.Path), zap.Error(err))
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to open file")
		}
		resp.Opened = true
	}
	return c.JSON(http.StatusOK, resp)
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "starting http server", zap.String("addr", s.Addr()))
	return s.echo.Start(s.Addr())
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
