// Package watch polls Petstore searches and publishes pets whose state changed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/samvad-hq/petstore-client/internal/logger"
	"github.com/samvad-hq/petstore-client/internal/storage"
	"github.com/samvad-hq/petstore-client/pkg/sources"
)

const defaultConcurrency = 4

// Service coordinates polling across multiple sources.
type Service struct {
	processor   *SourceProcessor
	concurrency int
	log         logger.Logger
}

// NewService wires a watch service with the source fetcher registry.
func NewService(reg sources.FetcherRegistry, enricher Enricher, pub EventPublisher, log logger.Logger, seen storage.SeenStore) *Service {
	log = logger.OrNop(log)
	return &Service{
		processor:   NewSourceProcessor(reg, enricher, pub, log, seen),
		concurrency: defaultConcurrency,
		log:         log,
	}
}

// SetConcurrency bounds how many sources are polled at once.
func (s *Service) SetConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// Run executes one poll pass for all sources.
func (s *Service) Run(ctx context.Context, srcs []sources.Source) error {
	if s == nil || s.processor == nil || s.processor.registry == nil {
		return fmt.Errorf("watch service is not initialized")
	}
	if len(srcs) == 0 {
		return fmt.Errorf("no sources configured for polling")
	}

	if errs := s.runAll(ctx, srcs); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (s *Service) runAll(ctx context.Context, srcs []sources.Source) []error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for _, src := range srcs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := s.processor.Process(ctx, src); err != nil {
				s.log.ErrorObj("source poll failed", "source_error", map[string]any{
					"source_id": src.ID,
					"error":     err.Error(),
				})
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
