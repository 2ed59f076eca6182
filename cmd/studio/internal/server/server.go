// Package server exposes the studio modes over HTTP.
//
// Runs stream their progress as server-sent events:
//
//	POST /v1/runs {"mode": "story", "input": "a red fox in snow"}
//
//	event:progress  {"stage": "image", "message": "Generating image..."}
//	event:artifact  {"stage": "image", "kind": "image", "url": "/v1/artifacts/<id>", ...}
//	event:error     {"stage": "caption", "message": "Unable to generate caption for the image."}
//	event:warning   {"message": "Please enter the text to translate."}
//	event:done      {"id": "...", "ok": false, "stages": [...]}
//
// Binary artifacts are fetched from the URL in their event for a limited
// time. Pass ?stream=false to receive the whole run as one JSON document.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/haivivi/studio/pkg/studio"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 30 * time.Second

// Runner executes one request. *studio.Orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context, req studio.Request, sink studio.Sink) *studio.Report
}

// Config configures the server.
type Config struct {
	Addr string

	// AllowedOrigins lists CORS origins. Empty allows all.
	AllowedOrigins []string

	ArtifactTTL     time.Duration
	ShutdownTimeout time.Duration
}

// Server serves runs over HTTP.
type Server struct {
	runner    Runner
	cfg       Config
	artifacts *artifactCache
	engine    *gin.Engine
}

// New creates a server over runner.
func New(runner Runner, cfg Config) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	s := &Server{
		runner:    runner,
		cfg:       cfg,
		artifacts: newArtifactCache(cfg.ArtifactTTL),
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metricsMiddleware(), s.cors())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/modes", s.listModes)
	v1.POST("/runs", s.createRun)
	v1.GET("/artifacts/:id", s.getArtifact)
	return r
}

func (s *Server) cors() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.AllowedOrigins
	}
	return cors.New(cfg)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on Addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("studio server listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		slog.Info("studio server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) listModes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"modes": studio.Modes()})
}

type runRequest struct {
	Mode  string `json:"mode" binding:"required"`
	Input string `json:"input"`
}

func (s *Server) createRun(c *gin.Context) {
	var body runRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := studio.ParseMode(body.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req := studio.Request{Mode: mode, Input: body.Input}

	if c.Query("stream") == "false" {
		s.runSync(c, req)
		return
	}
	s.runStream(c, req)
}

func (s *Server) runSync(c *gin.Context, req studio.Request) {
	ctx := c.Request.Context()
	report := s.runner.Run(ctx, req, newStreamSink(ctx, s, nil))
	recordRun(report)

	artifacts := make([]artifactView, 0, len(report.Artifacts))
	for _, a := range report.Artifacts {
		artifacts = append(artifacts, s.viewArtifact(a))
	}
	c.JSON(http.StatusOK, viewRun(report, artifacts))
}

func (s *Server) runStream(c *gin.Context, req studio.Request) {
	ctx := c.Request.Context()
	events := make(chan event, 8)

	go func() {
		defer close(events)
		sink := newStreamSink(ctx, s, events)
		report := s.runner.Run(ctx, req, sink)
		recordRun(report)
		sink.send(event{eventDone, viewRun(report, nil)})
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		e, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(e.name, e.data)
		return true
	})
}

func (s *Server) getArtifact(c *gin.Context) {
	a, ok := s.artifacts.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found or expired"})
		return
	}
	c.Data(http.StatusOK, a.MIMEType, a.Data)
}
