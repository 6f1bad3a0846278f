package token

import (
	"context"
	"sync"
	"time"

	"cnft/internal/registry/models"
	"cnft/pkg/domain"
	"cnft/pkg/platform/sentinel"
)

// InMemory keeps token records in a slice indexed by token id, which makes
// the sequential-id invariant structural: position i holds token i.
type InMemory struct {
	mu     sync.RWMutex
	tokens []*models.Token
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// Create allocates the next sequential id and stores the record.
func (s *InMemory) Create(_ context.Context, owner domain.Address, uri string, attrs models.EncryptedAttributes, mintedAt time.Time) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &models.Token{
		ID:         domain.TokenID(len(s.tokens)),
		Owner:      owner,
		URI:        uri,
		Attributes: attrs,
		MintedAt:   mintedAt,
	}
	s.tokens = append(s.tokens, t)
	return cloneToken(t), nil
}

func (s *InMemory) Get(_ context.Context, id domain.TokenID) (*models.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if uint64(id) >= uint64(len(s.tokens)) {
		return nil, sentinel.ErrNotFound
	}
	return cloneToken(s.tokens[id]), nil
}

func (s *InMemory) Exists(_ context.Context, id domain.TokenID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(id) < uint64(len(s.tokens)), nil
}

// SetOwner overwrites the owner of an existing token. Reserved for the
// transfer path; external callers never reach it directly.
func (s *InMemory) SetOwner(_ context.Context, id domain.TokenID, owner domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uint64(id) >= uint64(len(s.tokens)) {
		return sentinel.ErrNotFound
	}
	s.tokens[id].Owner = owner
	return nil
}

// NextID returns the id the next mint will receive, which doubles as the
// count of tokens created so far.
func (s *InMemory) NextID(_ context.Context) (domain.TokenID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.TokenID(len(s.tokens)), nil
}

func cloneToken(t *models.Token) *models.Token {
	c := *t
	return &c
}
