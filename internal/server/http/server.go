package internalhttp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/kiruthikag2611/Planify/internal/app"
	"github.com/kiruthikag2611/Planify/internal/auth"
	log "github.com/sirupsen/logrus"
)

const readHeaderTimeout = 10 * time.Second

type Config struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type Server struct {
	srv  *http.Server
	addr string
	app  *app.App
	auth *auth.Authenticator
	cors []string
}

func NewServer(config Config, app *app.App, authenticator *auth.Authenticator) *Server {
	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	return &Server{
		addr: addr,
		srv:  &http.Server{Addr: addr, ReadHeaderTimeout: readHeaderTimeout},
		app:  app,
		auth: authenticator,
		cors: config.AllowedOrigins,
	}
}

// Handler returns the routed API with its middleware chain.
func (s *Server) Handler() (http.Handler, error) {
	mux := runtime.NewServeMux()
	for _, r := range s.routes() {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return nil, fmt.Errorf("failed to register %s %s: %w", r.method, r.pattern, err)
		}
	}
	return loggingMiddleware(corsMiddleware(s.cors, authMiddleware(s.auth, mux))), nil
}

func (s *Server) Start(_ context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	s.srv.Handler = handler

	log.Printf("starting http server on %s", s.addr)
	err = s.srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func getIP(req *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return "", fmt.Errorf("userip: %q is not IP:port", req.RemoteAddr)
	}

	if parsed := net.ParseIP(ip); parsed == nil {
		return "", fmt.Errorf("userip: %q is not IP:port", req.RemoteAddr)
	}
	return ip, nil
}
