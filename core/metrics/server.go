package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/chroniclebot/core/logger"
)

// Server exposes a Collector over HTTP.
type Server struct {
	srv  *http.Server
	addr string
	done chan struct{}
}

// Serve binds listen and serves the collector at path until Shutdown.
func Serve(listen, path string, c *Collector) (*Server, error) {
	if path == "" {
		path = "/metrics"
	}
	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return nil, fmt.Errorf("metrics: listen %s: %w", listen, err)
	}

	mux := http.NewServeMux()
	mux.Handle(path, c.Handler())
	s := &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		addr: ln.Addr().String(),
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.MET.Error("metrics server failed",
				slog.String("event", "metrics.serve"),
				slog.String("err", err.Error()),
			)
		}
	}()

	logger.MET.Info("metrics endpoint",
		slog.String("event", "metrics.listen"),
		slog.String("listen", s.addr),
		slog.String("path", path),
	)
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}
