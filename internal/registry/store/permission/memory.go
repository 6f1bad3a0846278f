package permission

import (
	"context"
	"sync"

	"cnft/pkg/domain"
)

// InMemory keeps the (tokenId, viewer) -> granted relation. Absence of an
// entry is equivalent to granted = false; the relation says nothing about
// whether the token exists.
type InMemory struct {
	mu     sync.RWMutex
	grants map[domain.TokenID]map[domain.Address]bool
}

func NewInMemory() *InMemory {
	return &InMemory{grants: make(map[domain.TokenID]map[domain.Address]bool)}
}

func (s *InMemory) Grant(_ context.Context, id domain.TokenID, viewer domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	viewers, ok := s.grants[id]
	if !ok {
		viewers = make(map[domain.Address]bool)
		s.grants[id] = viewers
	}
	viewers[viewer] = true
	return nil
}

func (s *InMemory) Revoke(_ context.Context, id domain.TokenID, viewer domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if viewers, ok := s.grants[id]; ok {
		delete(viewers, viewer)
	}
	return nil
}

func (s *InMemory) Has(_ context.Context, id domain.TokenID, viewer domain.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grants[id][viewer], nil
}
