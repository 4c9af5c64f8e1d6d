// Package devserver runs a local stand-in for the assistant endpoint so the
// client can be exercised without the real service.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/diogo/goalchat/internal/models"
	"github.com/diogo/goalchat/internal/render"
)

// Shape selects how a reply is encoded in the response body
type Shape string

const (
	// ShapeObject responds with {"reply": "..."}
	ShapeObject Shape = "object"
	// ShapeBare responds with a bare JSON string
	ShapeBare Shape = "bare"
	// ShapeEmpty responds with {} so the client shows its fallback text
	ShapeEmpty Shape = "empty"
)

// ParseShape validates a shape name; empty means ShapeObject
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case "", ShapeObject:
		return ShapeObject, nil
	case ShapeBare, ShapeEmpty:
		return Shape(s), nil
	}
	return "", errors.New("unknown reply shape: " + s)
}

// Options configures the stub
type Options struct {
	Shape Shape
	// Echo replies with the question instead of a canned answer
	Echo bool
	// Delay is applied before every reply
	Delay time.Duration
	// FailEvery makes every nth request return 500; 0 disables
	FailEvery int
}

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Server is the stub assistant
type Server struct {
	opts     Options
	logger   *zap.Logger
	requests atomic.Int64
	engine   *gin.Engine
}

// New creates a Server and its routes
func New(opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Shape == "" {
		opts.Shape = ShapeObject
	}

	s := &Server{opts: opts, logger: logger}

	r := gin.New()
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/health", s.health)
	r.POST(models.ChatPath, s.chat)
	r.GET("/preview", s.preview)

	s.engine = r
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + s.opts.Delay,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("devserver listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("devserver stopped")
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"requests":  s.requests.Load(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) chat(c *gin.Context) {
	n := s.requests.Add(1)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	if s.opts.Delay > 0 {
		select {
		case <-time.After(s.opts.Delay):
		case <-c.Request.Context().Done():
			return
		}
	}

	if s.opts.FailEvery > 0 && n%int64(s.opts.FailEvery) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "simulated failure"})
		return
	}

	reply := Answer(req.Message)
	if s.opts.Echo {
		reply = "**질문:** " + req.Message
	}

	switch s.opts.Shape {
	case ShapeBare:
		c.JSON(http.StatusOK, reply)
	case ShapeEmpty:
		c.JSON(http.StatusOK, gin.H{})
	default:
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}

// preview shows how a reply is formatted by the web widget
func (s *Server) preview(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = Answer(c.Query("q"))
	}
	page := "<!doctype html><meta charset=\"utf-8\"><div class=\"message assistant\">" +
		render.FormatHTML(text) + "</div>"
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
