package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/chepilot/menubot/internal/ids"
	"github.com/chepilot/menubot/internal/model"
)

// MemoryStore implements Store over an insertion-ordered slice.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []model.MenuEntry
	ids     *ids.Generator
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ids: ids.New(nil)}
}

func (s *MemoryStore) Add(ctx context.Context, p AddParams) (*model.MenuEntry, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByName(p.Name) >= 0 {
		return nil, fmt.Errorf("add %q: %w", p.Name, ErrDuplicateName)
	}

	available := true
	if p.Available != nil {
		available = *p.Available
	}
	e := model.MenuEntry{
		ID:        s.ids.Next(),
		Name:      p.Name,
		Price:     p.Price,
		Category:  categoryOrDefault(p.Category),
		Available: available,
	}
	s.entries = append(s.entries, e)
	return &e, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*model.MenuEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	e := s.entries[i]
	return &e, nil
}

func (s *MemoryStore) FindByName(ctx context.Context, name string) (*model.MenuEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexByName(name)
	if i < 0 {
		return nil, fmt.Errorf("find %q: %w", name, ErrNotFound)
	}
	e := s.entries[i]
	return &e, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]model.MenuEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MenuEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, p UpdateParams) (*model.MenuEntry, error) {
	if p.Price != nil && *p.Price < 0 {
		return nil, fmt.Errorf("update %s: price must be >= 0", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return nil, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	if p.Price != nil {
		s.entries[i].Price = *p.Price
	}
	if p.Available != nil {
		s.entries[i].Available = *p.Available
	}
	e := s.entries[i]
	return &e, nil
}

func (s *MemoryStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) indexByID(id string) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) indexByName(name string) int {
	key := NameKey(name)
	for i, e := range s.entries {
		if NameKey(e.Name) == key {
			return i
		}
	}
	return -1
}
