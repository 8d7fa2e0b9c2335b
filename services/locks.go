package services

import "sync"

// PartnerLocks serializes read-modify-write sequences per partner. Payout
// initiation and metrics updates snapshot state and commit it back; the
// partner's lock is the commit boundary that keeps those sequences
// at-most-once.
type PartnerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPartnerLocks() *PartnerLocks {
	return &PartnerLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for a partner, creating it on first use
func (p *PartnerLocks) Lock(partnerID string) *sync.Mutex {
	p.mu.Lock()
	lock, ok := p.locks[partnerID]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[partnerID] = lock
	}
	p.mu.Unlock()

	lock.Lock()
	return lock
}
