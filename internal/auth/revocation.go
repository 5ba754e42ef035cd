package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocations is a process-local RevocationList. Entries are dropped
// lazily once the token they describe has expired.
type MemoryRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryRevocations() *MemoryRevocations {
	return &MemoryRevocations{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (r *MemoryRevocations) Revoke(_ context.Context, jti string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	if until.After(r.now()) {
		r.entries[jti] = until
	}
	return nil
}

func (r *MemoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.entries[jti]
	if !ok {
		return false, nil
	}
	if !until.After(r.now()) {
		delete(r.entries, jti)
		return false, nil
	}
	return true, nil
}

func (r *MemoryRevocations) prune() {
	now := r.now()
	for jti, until := range r.entries {
		if !until.After(now) {
			delete(r.entries, jti)
		}
	}
}
