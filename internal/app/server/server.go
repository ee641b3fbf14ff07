package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/api"
	"github.com/Reinvik/nexus-lean-sub000/internal/app/server/config"
	"github.com/Reinvik/nexus-lean-sub000/internal/infrastructure/storage/object"
	"github.com/Reinvik/nexus-lean-sub000/internal/infrastructure/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

// Run starts the API server and blocks until SIGINT/SIGTERM.
func Run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer storage.Close()

	objects, err := newObjectStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init object store: %w", err)
	}

	mux := api.New(storage, objects, log)

	srv := &http.Server{
		Addr:    cfg.Server.RunAddress,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", cfg.Server.RunAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newObjectStore picks S3 when a bucket is configured, local disk
// otherwise.
func newObjectStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (object.Store, error) {
	if cfg.Objects.Bucket != "" {
		return object.NewS3Store(ctx, cfg.Objects.Bucket, cfg.Objects.Region, cfg.Objects.BaseURL, log)
	}
	return object.NewLocalStore(cfg.Objects.LocalDir, cfg.Objects.BaseURL, log)
}
