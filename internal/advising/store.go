package advising

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Store abstracts the enrollment state. Implementations own their
// consistency discipline; the loop never locks on their behalf. Errors are
// store faults (I/O, corruption), never expected domain conditions:
// "course not found" is reported by the Planner as a payload, not an error.
type Store interface {
	Catalog(ctx context.Context) ([]Course, error)
	Lookup(ctx context.Context, code string) (Course, bool, error)
	Schedule(ctx context.Context) ([]Course, error)
	Enrolled(ctx context.Context, code string) (bool, error)
	Enroll(ctx context.Context, code string) error
	Drop(ctx context.Context, code string) error
}

// MemoryStore keeps catalog and enrollment in process memory behind a
// single mutation lock. Fresh instances give tests isolated state.
type MemoryStore struct {
	mu       sync.RWMutex
	catalog  map[string]Course
	order    []string // catalog codes in seed order
	enrolled map[string]bool
}

func NewMemoryStore(catalog []Course) *MemoryStore {
	s := &MemoryStore{
		catalog:  make(map[string]Course, len(catalog)),
		enrolled: make(map[string]bool),
	}
	for _, c := range catalog {
		if _, dup := s.catalog[c.Code]; dup {
			continue
		}
		s.catalog[c.Code] = c
		s.order = append(s.order, c.Code)
	}
	return s
}

func (s *MemoryStore) Catalog(ctx context.Context) ([]Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Course, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.catalog[code])
	}
	return out, nil
}

func (s *MemoryStore) Lookup(ctx context.Context, code string) (Course, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.catalog[code]
	return c, ok, nil
}

func (s *MemoryStore) Schedule(ctx context.Context) ([]Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.enrolled))
	for code := range s.enrolled {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	out := make([]Course, 0, len(codes))
	for _, code := range codes {
		out = append(out, s.catalog[code])
	}
	return out, nil
}

func (s *MemoryStore) Enrolled(ctx context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enrolled[code], nil
}

func (s *MemoryStore) Enroll(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.catalog[code]; !ok {
		return fmt.Errorf("enroll %q: not in catalog", code)
	}
	s.enrolled[code] = true
	return nil
}

func (s *MemoryStore) Drop(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enrolled[code] {
		return fmt.Errorf("drop %q: not enrolled", code)
	}
	delete(s.enrolled, code)
	return nil
}
