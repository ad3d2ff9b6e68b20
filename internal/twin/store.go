package twin

import (
	"sort"
	"strings"
	"sync"

	"github.com/samvad-hq/petstore-client/internal/domain"
)

// Upload records one image received through uploadImage.
type Upload struct {
	PetID    int64
	Filename string
	Size     int
	Metadata string
}

// Store is the in-memory pet inventory behind the twin.
type Store struct {
	mu      sync.RWMutex
	pets    map[int64]domain.Pet
	uploads []Upload
	nextID  int64
}

// NewStore creates a store seeded with the given pets.
func NewStore(seed ...domain.Pet) *Store {
	s := &Store{pets: make(map[int64]domain.Pet)}
	for _, p := range seed {
		s.Put(p)
	}
	return s
}

// Put inserts or replaces a pet. A zero id gets the next free one.
func (s *Store) Put(p domain.Pet) domain.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	if p.PhotoURLs == nil {
		p.PhotoURLs = []string{}
	}
	s.pets[p.ID] = p
	return p
}

// Get returns the pet with the given id.
func (s *Store) Get(id int64) (domain.Pet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pets[id]
	return p, ok
}

// Update applies fn to an existing pet.
func (s *Store) Update(id int64, fn func(*domain.Pet)) (domain.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pets[id]
	if !ok {
		return domain.Pet{}, false
	}
	fn(&p)
	p.ID = id
	s.pets[id] = p
	return p, true
}

// Delete removes a pet and reports whether it existed.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pets[id]; !ok {
		return false
	}
	delete(s.pets, id)
	return true
}

// FindByStatus lists pets whose status is in statuses, ordered by id.
func (s *Store) FindByStatus(statuses []string) domain.Pets {
	want := toSet(statuses)
	return s.filter(func(p domain.Pet) bool {
		_, ok := want[string(p.Status)]
		return ok
	})
}

// FindByTags lists pets carrying at least one of tags, ordered by id.
func (s *Store) FindByTags(tags []string) domain.Pets {
	want := toSet(tags)
	return s.filter(func(p domain.Pet) bool {
		for _, t := range p.Tags {
			if _, ok := want[t.Name]; ok {
				return true
			}
		}
		return false
	})
}

// RecordUpload keeps track of a received file.
func (s *Store) RecordUpload(u Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, u)
}

// Uploads returns a copy of all recorded uploads.
func (s *Store) Uploads() []Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Upload(nil), s.uploads...)
}

func (s *Store) filter(keep func(domain.Pet) bool) domain.Pets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.Pets{}
	for _, p := range s.pets {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				set[part] = struct{}{}
			}
		}
	}
	return set
}
