package watch

import (
	"context"

	"github.com/samvad-hq/petstore-client/internal/domain"
	"github.com/samvad-hq/petstore-client/pkg/petstore"
	"github.com/samvad-hq/petstore-client/pkg/publishers"
	"github.com/samvad-hq/petstore-client/pkg/sources"
)

// Enricher fills in pet details after a search.
type Enricher interface {
	Enrich(ctx context.Context, src sources.Source, pets domain.Pets) domain.Pets
}

// EventPublisher publishes observed pets downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// PetGetter loads a single pet by id.
type PetGetter interface {
	GetPetByID(ctx context.Context, petID int64, opts ...petstore.CallOption) (domain.Pet, error)
}
