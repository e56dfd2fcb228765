// Command api serves the mirrored catalog read-only over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookmirror/internal/catalog"
	"bookmirror/internal/config"
	"bookmirror/internal/httpx"
	"bookmirror/internal/logging"
	"bookmirror/internal/platform/postgres"
)

func main() {
	os.Exit(run())
}

func run() int {
	config.LoadEnvFiles()

	cfg, err := config.LoadAPI()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := postgres.NewPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		logger.Error("cannot open database", "error", err)
		return 1
	}
	defer dbPool.Close()

	catalogHandler := catalog.NewHTTPHandler(catalog.NewService(catalog.NewPostgresRepo(dbPool)), logger)
	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	handler := httpx.Chain(newRouter(catalogHandler, dbPool.Ping),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		httpx.ReadOnlyMiddleware,
		rateLimiter.Middleware,
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			return 1
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
			return 1
		}
		logger.Info("server stopped")
	}
	return 0
}

// newRouter registers the /v1 catalog routes and the probes. ping reports
// database readiness.
func newRouter(books *catalog.HTTPHandler, ping func(context.Context) error) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /v1/books", books.List)
	router.HandleFunc("GET /v1/books/{id}", books.Get)
	router.HandleFunc("GET /v1/books/{id}/pages", books.Pages)

	return router
}

