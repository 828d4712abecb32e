package vault

import "sync/atomic"

// entryGuard is a non-blocking mutual exclusion flag held for the full span
// of a guarded operation, including its outbound settlement call. A second
// entry while the flag is held fails immediately instead of waiting, which
// is what rejects calls arriving back from the settlement rail before the
// first operation has finished.
type entryGuard struct {
	held atomic.Bool
}

// enter attempts to take the guard, reporting whether it was free.
func (g *entryGuard) enter() bool {
	return g.held.CompareAndSwap(false, true)
}

// exit releases the guard.
func (g *entryGuard) exit() {
	g.held.Store(false)
}
