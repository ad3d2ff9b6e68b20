package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/petstore-client/internal/domain"
	"github.com/samvad-hq/petstore-client/internal/logger"
	"github.com/samvad-hq/petstore-client/internal/storage"
	"github.com/samvad-hq/petstore-client/pkg/publishers"
	"github.com/samvad-hq/petstore-client/pkg/sources"
)

// SourceProcessor runs one source end to end: fetch, enrich, dedupe, publish.
type SourceProcessor struct {
	registry  sources.FetcherRegistry
	enricher  Enricher
	publisher EventPublisher
	log       logger.Logger
	seen      storage.SeenStore
}

// NewSourceProcessor wires a processor. Nil enricher, publisher or seen store
// disable that stage.
func NewSourceProcessor(reg sources.FetcherRegistry, enricher Enricher, pub EventPublisher, log logger.Logger, seen storage.SeenStore) *SourceProcessor {
	return &SourceProcessor{
		registry:  reg,
		enricher:  enricher,
		publisher: pub,
		log:       logger.OrNop(log),
		seen:      seen,
	}
}

// Process polls a single source and publishes pets not seen in their current state.
func (p *SourceProcessor) Process(ctx context.Context, src sources.Source) error {
	fetcher, err := p.registry.FetcherFor(src)
	if err != nil {
		return fmt.Errorf("resolve fetcher for source %s: %w", src.ID, err)
	}

	pets, err := fetcher.Fetch(ctx, src)
	if err != nil {
		return fmt.Errorf("fetch source %s: %w", src.ID, err)
	}

	if p.enricher != nil {
		pets = p.enricher.Enrich(ctx, src, pets)
	}

	fresh := p.filterNewPets(src, pets)

	var errs []error
	published := 0
	for _, pet := range fresh {
		if ctx.Err() != nil {
			break
		}
		if err := p.publish(ctx, src, pet); err != nil {
			errs = append(errs, err)
			continue
		}
		published++
	}

	p.log.InfoObj("source poll completed", "source_result", map[string]any{
		"source_id":      src.ID,
		"pets_collected": len(pets),
		"pets_new":       len(fresh),
		"pets_published": published,
	})
	return errors.Join(errs...)
}

func (p *SourceProcessor) publish(ctx context.Context, src sources.Source, pet domain.Pet) error {
	if p.publisher == nil {
		return nil
	}

	evt := publishers.NewEvent(src.ID, src.Name, pet)
	delivered, err := p.publisher.Publish(ctx, evt)
	if delivered == 0 && err != nil {
		return fmt.Errorf("publish pet %d from %s: %w", pet.ID, src.ID, err)
	}
	if err != nil {
		p.log.WarnObj("partial publish", "publish_error", map[string]any{
			"source_id": src.ID,
			"pet_id":    pet.ID,
			"delivered": delivered,
			"error":     err.Error(),
		})
	}

	if p.seen != nil {
		if err := p.seen.MarkPet(SnapshotKey(pet)); err != nil {
			p.log.WarnObj("mark pet seen failed", "storage_error", map[string]any{
				"pet_id": pet.ID,
				"error":  err.Error(),
			})
		}
	}
	return nil
}

// filterNewPets drops pets whose current snapshot was already published.
// Lookup failures let the pet through.
func (p *SourceProcessor) filterNewPets(src sources.Source, pets domain.Pets) domain.Pets {
	if p.seen == nil {
		return pets
	}

	out := make(domain.Pets, 0, len(pets))
	for _, pet := range pets {
		seen, err := p.seen.SeenPet(SnapshotKey(pet))
		if err != nil {
			p.log.WarnObj("seen lookup failed", "storage_error", map[string]any{
				"source_id": src.ID,
				"pet_id":    pet.ID,
				"error":     err.Error(),
			})
			out = append(out, pet)
			continue
		}
		if !seen {
			out = append(out, pet)
		}
	}
	return out
}
