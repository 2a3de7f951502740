package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/matjam/photoframe/internal/middleware"
)

const socketName = "photoframe.sock"

// SocketPath is where the control socket lives: $XDG_RUNTIME_DIR, or the
// temp dir when that is unset.
func SocketPath() string {
	sockDir := os.Getenv("XDG_RUNTIME_DIR")
	if sockDir == "" {
		sockDir = os.TempDir()
	}
	return filepath.Join(sockDir, socketName)
}

type Server struct {
	echo *echo.Echo
	path string
}

func NewServer(c Controller, path string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.CharmLog())

	RegisterRoutes(e, c, path)

	return &Server{echo: e, path: path}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Serve listens on the unix socket and blocks until Close is called. A stale
// socket file left by a previous run is replaced.
func (s *Server) Serve() error {
	if _, err := os.Stat(s.path); err == nil {
		_ = os.Remove(s.path)
	}

	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.path, err)
	}
	s.echo.Listener = listener

	log.Debugf("control socket listening on %s", s.path)
	if err := s.echo.StartServer(s.echo.Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("socket server: %w", err)
	}
	return nil
}

// Close stops the server and removes the socket file.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := s.echo.Shutdown(ctx)
	if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		err = errors.Join(err, rmErr)
	}
	return err
}
