package sources

import (
	"context"

	"github.com/samvad-hq/petstore-client/internal/domain"
	"github.com/samvad-hq/petstore-client/pkg/petstore"
)

// Fetcher runs one kind of search for a source.
type Fetcher interface {
	ID() string
	Fetch(ctx context.Context, src Source) (domain.Pets, error)
}

// FetcherRegistry resolves the fetcher implementation for a given source.
type FetcherRegistry interface {
	FetcherFor(src Source) (Fetcher, error)
}

// PetFinder is the slice of petstore.PetService the fetchers use.
type PetFinder interface {
	FindPetsByStatus(ctx context.Context, status []domain.PetStatus, opts ...petstore.CallOption) (domain.Pets, error)
	FindPetsByTags(ctx context.Context, tags []string, opts ...petstore.CallOption) (domain.Pets, error)
}
