package ledger

// SeedBalance is a test helper that seeds an account balance when using the
// in-memory store.
func SeedBalance(s Store, account string, amount int64) {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.balances[account] = amount
	}
}

// SeedPool is a test helper that sets the custody pool total when using the
// in-memory store.
func SeedPool(s Store, amount int64) {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.pool = amount
	}
}
