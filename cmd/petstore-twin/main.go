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

	"github.com/samvad-hq/petstore-client/internal/config"
	"github.com/samvad-hq/petstore-client/internal/domain"
	"github.com/samvad-hq/petstore-client/internal/logger"
	"github.com/samvad-hq/petstore-client/internal/twin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "petstore twin failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := twin.Options{APIKey: cfg.PetstoreAPIKey}
	if cfg.PetstoreAccessToken != "" {
		opts.BearerTokens = []string{cfg.PetstoreAccessToken}
	}
	store := twin.NewStore(
		domain.Pet{Name: "doggie", PhotoURLs: []string{}, Status: domain.PetStatusAvailable, Tags: []domain.Tag{{ID: 1, Name: "friendly"}}},
		domain.Pet{Name: "kitty", PhotoURLs: []string{}, Status: domain.PetStatusPending},
		domain.Pet{Name: "goldie", PhotoURLs: []string{}, Status: domain.PetStatusSold},
	)
	srv := &http.Server{
		Addr:              cfg.TwinAddr,
		Handler:           twin.New(store, opts, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.InfoObj("petstore twin listening", "twin", map[string]any{
			"addr":      cfg.TwinAddr,
			"base_path": "/v2",
		})
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
	log.InfoObj("petstore twin stopped", "reason", ctx.Err())
	return nil
}
