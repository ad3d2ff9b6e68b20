package watch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/samvad-hq/petstore-client/internal/domain"
	"github.com/samvad-hq/petstore-client/pkg/petstore"
	"github.com/samvad-hq/petstore-client/pkg/publishers"
	"github.com/samvad-hq/petstore-client/pkg/sources"
)

// fakeFetcher returns preset pets or an error.
type fakeFetcher struct {
	id   string
	pets domain.Pets
	err  error
}

func (f *fakeFetcher) ID() string { return f.id }
func (f *fakeFetcher) Fetch(_ context.Context, _ sources.Source) (domain.Pets, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pets, nil
}

// fakeRegistry maps every source to a single fetcher.
type fakeRegistry struct {
	fetcher sources.Fetcher
}

func (f *fakeRegistry) FetcherFor(_ sources.Source) (sources.Fetcher, error) {
	if f.fetcher == nil {
		return nil, errors.New("missing fetcher")
	}
	return f.fetcher, nil
}

// fakeEnricher renames pets.
type fakeEnricher struct {
	prefix string
}

func (f fakeEnricher) Enrich(_ context.Context, _ sources.Source, pets domain.Pets) domain.Pets {
	out := make(domain.Pets, len(pets))
	for i, p := range pets {
		p.Name = f.prefix + p.Name
		out[i] = p
	}
	return out
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	mu      sync.Mutex
	events  []publishers.Event
	errOnID int64
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	if evt.Pet.ID == f.errOnID {
		return 0, errors.New("boom")
	}
	return 1, nil
}

// fakeSeen tracks snapshot keys.
type fakeSeen struct {
	mu      sync.Mutex
	seen    map[string]bool
	failKey string
}

func (f *fakeSeen) SeenPet(key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if key == f.failKey {
		return false, errors.New("lookup failed")
	}
	return f.seen[key], nil
}

func (f *fakeSeen) MarkPet(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	f.seen[key] = true
	return nil
}

func TestSourceProcessorPublishesFreshPetsOnly(t *testing.T) {
	src := sources.Source{ID: "available", Name: "Available"}
	old := domain.Pet{ID: 1, Name: "old", Status: domain.PetStatusAvailable}
	fresh := domain.Pet{ID: 2, Name: "new", Status: domain.PetStatusAvailable}

	enriched := old
	enriched.Name = "enriched-old"
	seen := &fakeSeen{seen: map[string]bool{SnapshotKey(enriched): true}}
	pub := &fakePublisher{}

	processor := NewSourceProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "available", pets: domain.Pets{old, fresh}},
	}, fakeEnricher{prefix: "enriched-"}, pub, nil, seen)

	if err := processor.Process(context.Background(), src); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	evt := pub.events[0]
	if evt.Pet.ID != 2 || evt.Pet.Name != "enriched-new" || evt.SourceID != "available" {
		t.Fatalf("unexpected event %+v", evt)
	}

	want := fresh
	want.Name = "enriched-new"
	if !seen.seen[SnapshotKey(want)] {
		t.Fatalf("MarkPet not called for published pet")
	}
}

func TestSourceProcessorRepublishesChangedPet(t *testing.T) {
	before := domain.Pet{ID: 1, Name: "rex", Status: domain.PetStatusAvailable}
	after := before
	after.Status = domain.PetStatusSold

	seen := &fakeSeen{seen: map[string]bool{SnapshotKey(before): true}}
	pub := &fakePublisher{}
	processor := NewSourceProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "s", pets: domain.Pets{after}},
	}, nil, pub, nil, seen)

	if err := processor.Process(context.Background(), sources.Source{ID: "s"}); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Pet.Status != domain.PetStatusSold {
		t.Fatalf("expected status change to be published, got %#v", pub.events)
	}
}

func TestSourceProcessorAggregatesPublishErrors(t *testing.T) {
	pub := &fakePublisher{errOnID: 9}
	seen := &fakeSeen{}
	processor := NewSourceProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "s", pets: domain.Pets{{ID: 9}}},
	}, nil, pub, nil, seen)

	err := processor.Process(context.Background(), sources.Source{ID: "s"})
	if err == nil || !strings.Contains(err.Error(), "pet 9") {
		t.Fatalf("expected error mentioning pet 9, got %v", err)
	}
	if len(seen.seen) != 0 {
		t.Fatalf("failed publish must not be marked seen")
	}
}

func TestSourceProcessorFetchError(t *testing.T) {
	processor := NewSourceProcessor(&fakeRegistry{
		fetcher: &fakeFetcher{id: "s", err: errors.New("down")},
	}, nil, nil, nil, nil)

	if err := processor.Process(context.Background(), sources.Source{ID: "s"}); err == nil {
		t.Fatalf("expected fetch error")
	}
}

func TestFilterNewPetsHandlesLookupErrors(t *testing.T) {
	keep := domain.Pet{ID: 1}
	skip := domain.Pet{ID: 2}
	broken := domain.Pet{ID: 3}
	seen := &fakeSeen{
		seen:    map[string]bool{SnapshotKey(skip): true},
		failKey: SnapshotKey(broken),
	}
	processor := NewSourceProcessor(&fakeRegistry{}, nil, nil, nil, seen)

	filtered := processor.filterNewPets(sources.Source{ID: "s"}, domain.Pets{keep, skip, broken})
	if len(filtered) != 2 || filtered[0].ID != 1 || filtered[1].ID != 3 {
		t.Fatalf("unexpected filter result %#v", filtered)
	}
}

func TestServiceRunAllCancelsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(&fakeRegistry{fetcher: &fakeFetcher{id: "s"}}, nil, nil, nil, nil)
	if errs := svc.runAll(ctx, []sources.Source{{ID: "s"}}); len(errs) != 0 {
		t.Fatalf("expected no errors on cancelled context, got %v", errs)
	}
}

func TestServiceRunRequiresSources(t *testing.T) {
	svc := NewService(&fakeRegistry{fetcher: &fakeFetcher{id: "s"}}, nil, nil, nil, nil)
	if err := svc.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error when sources list empty")
	}
}

func TestServiceRunJoinsSourceErrors(t *testing.T) {
	svc := NewService(&fakeRegistry{fetcher: &fakeFetcher{id: "s", err: errors.New("down")}}, nil, nil, nil, nil)
	svc.SetConcurrency(1)

	err := svc.Run(context.Background(), []sources.Source{{ID: "a"}, {ID: "b"}})
	if err == nil || !strings.Contains(err.Error(), "source a") || !strings.Contains(err.Error(), "source b") {
		t.Fatalf("expected both source errors, got %v", err)
	}
}

type fakeGetter struct {
	mu    sync.Mutex
	calls []int64
	fail  int64
}

func (f *fakeGetter) GetPetByID(_ context.Context, id int64, _ ...petstore.CallOption) (domain.Pet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	if id == f.fail {
		return domain.Pet{}, errors.New("not found")
	}
	return domain.Pet{ID: id, Name: "full", PhotoURLs: []string{"http://img"}}, nil
}

func TestDetailEnricherLoadsFullRecords(t *testing.T) {
	getter := &fakeGetter{fail: 2}
	e := NewDetailEnricher(getter, nil)
	src := sources.Source{ID: "s", Enrich: true, RequestDelayMs: 1}

	out := e.Enrich(context.Background(), src, domain.Pets{{ID: 1, Name: "hit"}, {ID: 2, Name: "hit"}, {Name: "no-id"}})
	if len(out) != 3 {
		t.Fatalf("expected 3 pets, got %d", len(out))
	}
	if out[0].Name != "full" || out[1].Name != "hit" || out[2].Name != "no-id" {
		t.Fatalf("unexpected enrichment %#v", out)
	}
	if len(getter.calls) != 2 {
		t.Fatalf("expected 2 lookups, got %v", getter.calls)
	}
}

func TestDetailEnricherSkipsWhenDisabled(t *testing.T) {
	getter := &fakeGetter{}
	e := NewDetailEnricher(getter, nil)

	out := e.Enrich(context.Background(), sources.Source{ID: "s"}, domain.Pets{{ID: 1, Name: "hit"}})
	if out[0].Name != "hit" || len(getter.calls) != 0 {
		t.Fatalf("expected pass-through, got %#v calls=%v", out, getter.calls)
	}
}

func TestDetailEnricherStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	getter := &fakeGetter{}
	out := NewDetailEnricher(getter, nil).Enrich(ctx, sources.Source{ID: "s", Enrich: true, RequestDelayMs: 1}, domain.Pets{{ID: 1}, {ID: 2}})
	if len(out) != 2 || len(getter.calls) != 0 {
		t.Fatalf("expected untouched pets after cancel, got %#v calls=%v", out, getter.calls)
	}
}

func TestSnapshotKeyTracksContent(t *testing.T) {
	a := domain.Pet{ID: 4, Name: "a"}
	b := domain.Pet{ID: 4, Name: "b"}
	if SnapshotKey(a) == SnapshotKey(b) {
		t.Fatalf("expected different keys for different content")
	}
	if SnapshotKey(a) != SnapshotKey(domain.Pet{ID: 4, Name: "a"}) {
		t.Fatalf("expected stable key")
	}
	if !strings.HasPrefix(SnapshotKey(a), "4:") {
		t.Fatalf("expected id prefix, got %s", SnapshotKey(a))
	}
}
