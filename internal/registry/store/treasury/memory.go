package treasury

import (
	"context"
	"math/big"
	"sync"
)

// InMemory accumulates mint payments for the registry.
type InMemory struct {
	mu      sync.Mutex
	balance *big.Int
}

func NewInMemory() *InMemory {
	return &InMemory{balance: new(big.Int)}
}

// Credit adds amount to the treasury balance.
func (s *InMemory) Credit(_ context.Context, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balance.Add(s.balance, amount)
	return nil
}

// Balance returns the current balance.
func (s *InMemory) Balance(_ context.Context) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(big.Int).Set(s.balance), nil
}

// WithdrawAll zeroes the balance and returns the drained amount.
func (s *InMemory) WithdrawAll(_ context.Context) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	drained := s.balance
	s.balance = new(big.Int)
	return drained, nil
}
