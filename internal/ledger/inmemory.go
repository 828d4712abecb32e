package ledger

import (
	"context"
	"math"
	"sync"
)

type inMemoryStore struct {
	mu        sync.RWMutex
	balances  map[string]int64
	usages    map[string]Usage
	pendings  map[string]Pending
	whitelist map[string]bool
	pool      int64
	state     State
}

// NewInMemory creates a concurrency-safe in-memory store useful for unit
// tests and single-node development.
func NewInMemory() Store {
	return &inMemoryStore{
		balances:  make(map[string]int64),
		usages:    make(map[string]Usage),
		pendings:  make(map[string]Pending),
		whitelist: make(map[string]bool),
	}
}

func (s *inMemoryStore) Balance(_ context.Context, account string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[account], nil
}

func (s *inMemoryStore) Credit(_ context.Context, account string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	balance := s.balances[account]
	if balance > math.MaxInt64-amount {
		return 0, ErrBalanceOverflow
	}
	balance += amount
	s.balances[account] = balance
	return balance, nil
}

func (s *inMemoryStore) Debit(_ context.Context, account string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	balance := s.balances[account]
	if balance < amount {
		return 0, ErrInsufficientBalance
	}
	balance -= amount
	s.balances[account] = balance
	return balance, nil
}

func (s *inMemoryStore) Pool(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pool, nil
}

func (s *inMemoryStore) CreditPool(_ context.Context, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool > math.MaxInt64-amount {
		return 0, ErrBalanceOverflow
	}
	s.pool += amount
	return s.pool, nil
}

func (s *inMemoryStore) DebitPool(_ context.Context, amount int64) (int64, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pool < amount {
		return 0, ErrInsufficientPoolBalance
	}
	s.pool -= amount
	return s.pool, nil
}

func (s *inMemoryStore) Usage(_ context.Context, account string) (Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usages[account], nil
}

func (s *inMemoryStore) PutUsage(_ context.Context, account string, usage Usage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usages[account] = usage
	return nil
}

func (s *inMemoryStore) Pending(_ context.Context, account string) (Pending, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending, ok := s.pendings[account]
	return pending, ok, nil
}

func (s *inMemoryStore) PutPending(_ context.Context, account string, pending Pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendings[account] = pending
	return nil
}

func (s *inMemoryStore) DeletePending(_ context.Context, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pendings, account)
	return nil
}

func (s *inMemoryStore) Whitelisted(_ context.Context, account string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.whitelist[account], nil
}

func (s *inMemoryStore) SetWhitelisted(_ context.Context, account string, allowed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if allowed {
		s.whitelist[account] = true
	} else {
		delete(s.whitelist, account)
	}
	return nil
}

func (s *inMemoryStore) State(_ context.Context) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, nil
}

func (s *inMemoryStore) PutState(_ context.Context, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	return nil
}
