// Package statusapi serves the status record store the dashboard keeps its
// tasks in.
package statusapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/sadopc/mindful/internal/clock"
)

type Options struct {
	Repo    Repo
	Clock   clock.Clock
	Origins []string
	Logger  *log.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if len(opts.Origins) == 0 {
		opts.Origins = []string{"*"}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	h := &handler{repo: opts.Repo, clock: opts.Clock, logger: opts.Logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.root)
	mux.HandleFunc("GET /api/{$}", h.apiRoot)
	mux.HandleFunc("GET /api/status", h.list)
	mux.HandleFunc("POST /api/status", h.create)
	mux.HandleFunc("DELETE /api/status/{id}", h.remove)

	return chain(mux, withLogging(opts.Logger), withCORS(opts.Origins)), nil
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, opts Options) error {
	handler, err := NewHandler(opts)
	if err != nil {
		return err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("status api listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Println("status api stopped")
	return nil
}
