package watch

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/samvad-hq/petstore-client/internal/domain"
	"github.com/samvad-hq/petstore-client/internal/logger"
	"github.com/samvad-hq/petstore-client/pkg/sources"
)

// DetailEnricher replaces search hits with the full getPetById record.
type DetailEnricher struct {
	client PetGetter
	log    logger.Logger
}

// NewDetailEnricher returns an enricher backed by the given client.
func NewDetailEnricher(client PetGetter, log logger.Logger) *DetailEnricher {
	return &DetailEnricher{client: client, log: logger.OrNop(log)}
}

// Enrich refreshes every pet with an id, throttled by the source's request delay.
// Pets that cannot be loaded are kept as returned by the search.
func (e *DetailEnricher) Enrich(ctx context.Context, src sources.Source, pets domain.Pets) domain.Pets {
	if e == nil || e.client == nil || !src.Enrich || len(pets) == 0 {
		return pets
	}

	limiter := rate.NewLimiter(rate.Every(src.RequestDelay()), 1)
	opts := sources.CallOptions(src)

	out := make(domain.Pets, 0, len(pets))
	for i, pet := range pets {
		if pet.ID == 0 {
			out = append(out, pet)
			continue
		}
		if err := limiter.Wait(ctx); err != nil {
			return append(out, pets[i:]...)
		}

		full, err := e.client.GetPetByID(ctx, pet.ID, opts...)
		if err != nil {
			e.log.WarnObj("pet enrichment failed", "enrich_error", map[string]any{
				"source_id": src.ID,
				"pet_id":    pet.ID,
				"error":     err.Error(),
			})
			out = append(out, pet)
			continue
		}
		out = append(out, full)
	}
	return out
}
