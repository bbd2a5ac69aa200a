package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"spravochnik/converter"
	"spravochnik/internal/config"
	"spravochnik/server/handlers"
)

// Server HTTP API конвертера справочников
type Server struct {
	config     *config.Config
	handler    *handlers.Handler
	mu         sync.Mutex
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer создает сервер. history может быть nil, тогда журнал недоступен через API.
func NewServer(cfg *config.Config, conv *converter.Converter, history handlers.History, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	h := handlers.NewHandler(conv, history, handlers.Config{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		ScratchDir:     cfg.ScratchDir,
	}, logger)

	return &Server{
		config:  cfg,
		handler: h,
		logger:  logger,
	}
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	ln, err := s.listen()
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve обслуживает запросы на готовом listener
func (s *Server) Serve(ln net.Listener) error {
	return s.serve(s.prepare(), ln)
}

func (s *Server) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", ":"+s.config.Port)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on port %s: %w", s.config.Port, err)
	}
	return ln, nil
}

func (s *Server) prepare() *http.Server {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()
	return srv
}

func (s *Server) serve(srv *http.Server, ln net.Listener) error {
	s.logger.Info("Starting HTTP server", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown корректно останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.logger.Info("Initiating graceful shutdown")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	s.logger.Info("Graceful shutdown completed")
	return nil
}

// Run запускает сервер и останавливает его по отмене ctx
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.listen()
	if err != nil {
		return err
	}
	srv := s.prepare()

	errCh := make(chan error, 1)
	go func() { errCh <- s.serve(srv, ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
