// Package server exposes a translator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"edgetrans/internal/translate"
)

type Config struct {
	Addr       string
	Translator translate.Translator
	Logger     *log.Logger
	Version    string
	// RequestTimeout bounds one translate call; 0 leaves it to the client.
	RequestTimeout time.Duration
}

type Server struct {
	tr         translate.Translator
	log        *log.Logger
	addr       string
	version    string
	timeout    time.Duration
	started    time.Time
	httpServer *http.Server
}

func New(cfg Config) *Server {
	gin.SetMode(gin.ReleaseMode)
	lg := cfg.Logger
	if lg == nil {
		lg = log.New(io.Discard)
	}
	return &Server{
		tr:      cfg.Translator,
		log:     lg,
		addr:    cfg.Addr,
		version: cfg.Version,
		timeout: cfg.RequestTimeout,
		started: time.Now(),
	}
}

// Handler builds the router without binding a port.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(s.loggingMiddleware())
	router.Use(gin.Recovery())
	s.setupRoutes(router)
	return router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.addr, err)
	}
	s.httpServer = &http.Server{
		Handler:     s.Handler(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	s.log.Info("http server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}
