// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// APIServerConfig configures the API listener. Zero durations take the
// defaults below.
type APIServerConfig struct {
	Addr string

	// RequestTimeout is the handler budget; read and write deadlines are
	// derived from it. Default: 30s
	RequestTimeout time.Duration

	// ShutdownTimeout bounds the drain of in-flight requests. Default: 10s
	ShutdownTimeout time.Duration
}

func (c APIServerConfig) withDefaults() APIServerConfig {
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}

// APIServerService serves the Marquee API router under supervision. Each
// Serve call binds a fresh listener and *http.Server, so a restart after a
// listener failure starts clean.
type APIServerService struct {
	handler http.Handler
	config  APIServerConfig
	logger  zerolog.Logger

	mu    sync.RWMutex
	bound string
}

// NewAPIServerService creates the service for handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAPIServerService(handler http.Handler, cfg APIServerConfig, logger zerolog.Logger) *APIServerService {
	return &APIServerService{
		handler: handler,
		config:  cfg.withDefaults(),
		logger:  logger.With().Str("service", "api-server").Logger(),
	}
}

// Addr returns the bound listener address, or "" while not serving.
func (s *APIServerService) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bound
}

func (s *APIServerService) setAddr(addr string) {
	s.mu.Lock()
	s.bound = addr
	s.mu.Unlock()
}

func (s *APIServerService) newServer() *http.Server {
	return &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.config.RequestTimeout,
		WriteTimeout:      s.config.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Serve implements suture.Service. It returns ctx.Err() after a clean
// shutdown and a wrapped error when binding or serving fails.
func (s *APIServerService) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("api server listen on %s: %w", s.config.Addr, err)
	}
	srv := s.newServer()
	s.setAddr(ln.Addr().String())
	defer s.setAddr("")

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("API server listening")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		// ctx is already canceled; the drain needs its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown: %w", err)
		}
		<-errCh
		s.logger.Info().Msg("API server stopped")
		return ctx.Err()
	}
}

// String implements fmt.Stringer.
func (s *APIServerService) String() string {
	return "api-server"
}
