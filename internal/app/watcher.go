package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/petstore-client/internal/config"
	"github.com/samvad-hq/petstore-client/internal/logger"
	"github.com/samvad-hq/petstore-client/internal/storage"
	"github.com/samvad-hq/petstore-client/internal/watch"
	"github.com/samvad-hq/petstore-client/pkg/publishers"
	"github.com/samvad-hq/petstore-client/pkg/sources"
)

// Watcher represents the pet watch runtime. It manages the poll loop,
// coordinating between sources, the watch service, and publishers. It also
// handles storage initialization and cleanup.
type Watcher struct {
	cfg          *config.Config
	sourceReg    *sources.Registry
	fanout       *publishers.Fanout
	watchService *watch.Service
	pollInterval time.Duration
	log          logger.Logger
	store        storage.Store
}

// NewWatcher builds a watcher runtime from config files.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.OrNop(log)
	if ctx == nil {
		ctx = context.Background()
	}

	sourceReg, err := sources.LoadRegistry(cfg.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("load sources registry: %w", err)
	}
	sourceList := sourceReg.All()
	sourceIDs := make([]string, 0, len(sourceList))
	for _, s := range sourceList {
		sourceIDs = append(sourceIDs, s.ID)
	}
	log.InfoObj("sources registry loaded", "sources_meta", map[string]any{
		"count": len(sourceIDs),
		"ids":   sourceIDs,
	})

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		SeenTTL:         cfg.SeenTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"seen_ttl_seconds":         int(cfg.SeenTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	tokens, err := storage.NewTokenFile(cfg.TokenPath)
	if err != nil {
		_ = fanout.Close()
		_ = store.Close()
		return nil, fmt.Errorf("init token store: %w", err)
	}
	client, err := NewPetService(cfg, tokens, log)
	if err != nil {
		_ = fanout.Close()
		_ = store.Close()
		return nil, err
	}

	watchService := watch.NewService(
		sources.DefaultFetcherRegistry(client),
		watch.NewDetailEnricher(client, log),
		fanout,
		log,
		store,
	)

	return &Watcher{
		cfg:          cfg,
		sourceReg:    sourceReg,
		fanout:       fanout,
		watchService: watchService,
		pollInterval: cfg.PollInterval,
		log:          log,
		store:        store,
	}, nil
}

// Run starts the poll loop until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.watchService == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.close()

	srcs := w.sourceReg.All()
	if len(srcs) == 0 {
		w.log.WarnObj("no sources configured; watcher idle", "sources_file", w.cfg.SourcesFile)
		<-ctx.Done()
		return ctx.Err()
	}

	w.log.InfoObj("watcher loop starting", "watcher_state", map[string]any{
		"sources_count":    len(srcs),
		"publishers_count": w.fanout.Size(),
		"poll_interval":    w.pollInterval.String(),
	})

	if err := w.runOnce(ctx, srcs); err != nil {
		w.log.ErrorObj("initial poll failed", "error", err)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watcher loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx, srcs); err != nil {
				w.log.ErrorObj("scheduled poll failed", "error", err)
			}
		}
	}
}

// runOnce performs a single poll across all sources.
func (w *Watcher) runOnce(ctx context.Context, srcs []sources.Source) error {
	start := time.Now()
	w.log.InfoObj("poll started", "poll_meta", map[string]any{
		"sources_count": len(srcs),
		"started_at":    start.UTC(),
	})
	if err := w.watchService.Run(ctx, srcs); err != nil {
		return err
	}
	w.log.InfoObj("poll completed", "poll_meta", map[string]any{
		"sources_count": len(srcs),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases publishers and the storage backend, logging any errors encountered.
func (w *Watcher) close() {
	if err := w.fanout.Close(); err != nil {
		w.log.ErrorObj("publisher close failed", "error", err)
	}
	if w.store == nil {
		return
	}
	if err := w.store.Close(); err != nil {
		w.log.ErrorObj("storage close failed", "error", err)
	}
}
