package authstate

import (
	"sync"
	"time"
)

// RevocationSet records tokens explicitly invalidated before their natural
// expiry, keyed by token digest. Entries outlive nothing: once a token's own
// expiry passes, the expiry check rejects it anyway, so entries are pruned at
// that point.
type RevocationSet struct {
	mu      sync.RWMutex
	entries map[string]time.Time // token digest -> retention deadline
}

func NewRevocationSet() *RevocationSet {
	return &RevocationSet{entries: make(map[string]time.Time)}
}

// Add records a revocation for the given token digest, retained until
// expiresAt. Re-adding is harmless; an existing later deadline is kept so a
// revocation can never be shortened.
func (s *RevocationSet) Add(digest string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[digest]; ok && existing.After(expiresAt) {
		return
	}
	s.entries[digest] = expiresAt
}

// Contains reports whether the digest is currently revoked.
func (s *RevocationSet) Contains(digest string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[digest]
	return ok
}

// PruneExpired drops entries whose retention deadline is at or before now.
func (s *RevocationSet) PruneExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for digest, deadline := range s.entries {
		if !deadline.After(now) {
			delete(s.entries, digest)
		}
	}
}

// Len returns the number of live entries. Intended for tests and metrics.
func (s *RevocationSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
