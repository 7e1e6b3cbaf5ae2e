package services

import "sync"

// leaseLocks serializes ledger mutation per lease. Concurrent payment writes
// against the same lease would otherwise race to read stale invoice state
// and persist inconsistent allocations.
type leaseLocks struct {
	mu    sync.Mutex
	locks map[uint]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLeaseLocks() *leaseLocks {
	return &leaseLocks{locks: make(map[uint]*lockEntry)}
}

// Lock acquires the lease's mutex and returns the matching unlock func.
// Entries are reference-counted so the map does not grow without bound.
func (l *leaseLocks) Lock(leaseID uint) func() {
	l.mu.Lock()
	entry, ok := l.locks[leaseID]
	if !ok {
		entry = &lockEntry{}
		l.locks[leaseID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, leaseID)
		}
		l.mu.Unlock()
	}
}
