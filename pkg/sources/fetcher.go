package sources

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/petstore-client/internal/domain"
)

// fetcherRegistry implements FetcherRegistry.
type fetcherRegistry struct {
	fetchersByID   map[string]Fetcher
	fetchersByType map[string]Fetcher
	mu             sync.RWMutex
}

// NewTypeFetcherRegistry builds a registry with type-based fetchers and optional source-specific fetchers.
func NewTypeFetcherRegistry(typeFetchers map[string]Fetcher, fetchers ...Fetcher) FetcherRegistry {
	reg := &fetcherRegistry{
		fetchersByID:   make(map[string]Fetcher),
		fetchersByType: make(map[string]Fetcher),
	}
	for _, f := range fetchers {
		if f != nil {
			reg.register(reg.fetchersByID, f.ID(), f)
		}
	}
	for typ, f := range typeFetchers {
		reg.register(reg.fetchersByType, typ, f)
	}
	return reg
}

func (r *fetcherRegistry) register(into map[string]Fetcher, key string, f Fetcher) {
	if f == nil {
		return
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	r.mu.Lock()
	into[key] = f
	r.mu.Unlock()
}

// FetcherFor selects the fetcher for the given source based on its id or type.
func (r *fetcherRegistry) FetcherFor(src Source) (Fetcher, error) {
	if r == nil {
		return nil, fmt.Errorf("fetcher registry is nil")
	}
	if strings.TrimSpace(src.ID) == "" {
		return nil, fmt.Errorf("source id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.fetchersByID[strings.ToLower(strings.TrimSpace(src.ID))]; ok {
		return f, nil
	}
	if typeKey := strings.ToLower(strings.TrimSpace(src.Type)); typeKey != "" {
		if f, ok := r.fetchersByType[typeKey]; ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no fetcher registered for source %q (type %q)", src.ID, src.Type)
}

// DefaultFetcherRegistry wires the status and tag searches to client.
func DefaultFetcherRegistry(client PetFinder) FetcherRegistry {
	return NewTypeFetcherRegistry(map[string]Fetcher{
		TypeByStatus: NewStatusFetcher(client),
		TypeByTags:   NewTagsFetcher(client),
	})
}

// StatusFetcher runs findPetsByStatus with the source values.
type StatusFetcher struct {
	client PetFinder
}

func NewStatusFetcher(client PetFinder) *StatusFetcher {
	return &StatusFetcher{client: client}
}

func (f *StatusFetcher) ID() string { return TypeByStatus }

func (f *StatusFetcher) Fetch(ctx context.Context, src Source) (domain.Pets, error) {
	statuses := make([]domain.PetStatus, 0, len(src.Values))
	for _, v := range src.Values {
		s := domain.PetStatus(strings.ToLower(v))
		switch s {
		case domain.PetStatusAvailable, domain.PetStatusPending, domain.PetStatusSold:
			statuses = append(statuses, s)
		default:
			return nil, fmt.Errorf("source %q: unknown pet status %q", src.ID, v)
		}
	}
	pets, err := f.client.FindPetsByStatus(ctx, statuses, CallOptions(src)...)
	if err != nil {
		return nil, fmt.Errorf("source %q: find by status: %w", src.ID, err)
	}
	return pets, nil
}

// TagsFetcher runs findPetsByTags with the source values.
type TagsFetcher struct {
	client PetFinder
}

func NewTagsFetcher(client PetFinder) *TagsFetcher {
	return &TagsFetcher{client: client}
}

func (f *TagsFetcher) ID() string { return TypeByTags }

func (f *TagsFetcher) Fetch(ctx context.Context, src Source) (domain.Pets, error) {
	pets, err := f.client.FindPetsByTags(ctx, src.Values, CallOptions(src)...)
	if err != nil {
		return nil, fmt.Errorf("source %q: find by tags: %w", src.ID, err)
	}
	return pets, nil
}
