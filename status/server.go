package status

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server exposes the registry on /metrics
type Server struct {
	srv *http.Server
	log *zap.Logger
}

// NewServer binds a metrics endpoint to addr, nothing listens until Start
func NewServer(addr string, r *Registry, log *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: log.Named("metrics"),
	}
}

// Start listens synchronously so bind errors surface, then serves in the background via spawn
func (s *Server) Start(spawn func(func())) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.log.Info("metrics endpoint listening", zap.String("addr", ln.Addr().String()))
	spawn(func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server stopped", zap.Error(err))
		}
	})
	return nil
}

// Shutdown stops the endpoint
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
