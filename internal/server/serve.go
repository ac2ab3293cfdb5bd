package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/iwvelando/amortize/pkg/constants"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Serve listens on cfg.Address with the configured engine until ctx is
// cancelled, then shuts the server down gracefully.
func Serve(ctx context.Context, cfg *Config, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("starting server",
		zap.String("op", "server.Serve"),
		zap.String("address", cfg.Address),
		zap.String("engine", cfg.Engine),
	)

	if cfg.Engine == constants.ServerEngineFastHTTP {
		return serveFastHTTP(ctx, cfg.Address, handler, logger)
	}
	return serveNetHTTP(ctx, cfg.Address, handler, logger)
}

func serveNetHTTP(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "server.Serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewFastHTTPServer wraps handler so it can be served by fasthttp.
func NewFastHTTPServer(handler http.Handler, logger *zap.Logger) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:      fasthttpadaptor.NewFastHTTPHandler(handler),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		Logger:       zap.NewStdLog(logger),
	}
}

func serveFastHTTP(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := NewFastHTTPServer(handler, logger)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(addr); err != nil {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "server.Serve"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.ShutdownWithContext(shutdownCtx)
}
