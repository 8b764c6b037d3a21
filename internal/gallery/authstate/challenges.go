// Package authstate holds the process-local mutable state behind the
// authentication flow: live one-time-code challenges, resend throttles, and
// the session revocation set. Nothing here touches disk or network; all
// durability comes from the TTLs encoded in the data itself.
package authstate

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/blushhq/blush/internal/gallery/domain"
)

const challengeShardCount = 32

// EmailState is everything the challenge manager tracks for one email:
// the live challenge (nil when none) and the last issuance time used for
// resend cooldowns (zero when never issued).
type EmailState struct {
	Challenge    *domain.Challenge
	LastIssuedAt time.Time
}

type challengeShard struct {
	mu         sync.Mutex
	challenges map[string]*domain.Challenge
	lastIssued map[string]time.Time
}

// ChallengeStore owns challenge and throttle state, sharded by email so that
// operations on different emails do not contend on a single lock while
// operations on the same email are mutually exclusive.
type ChallengeStore struct {
	shards [challengeShardCount]*challengeShard
}

func NewChallengeStore() *ChallengeStore {
	s := &ChallengeStore{}
	for i := range s.shards {
		s.shards[i] = &challengeShard{
			challenges: make(map[string]*domain.Challenge),
			lastIssued: make(map[string]time.Time),
		}
	}
	return s
}

func (s *ChallengeStore) shard(email string) *challengeShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return s.shards[h.Sum32()%challengeShardCount]
}

// Update runs fn with exclusive access to the state for email and writes the
// mutated state back. Setting st.Challenge to nil deletes the challenge;
// a zero st.LastIssuedAt drops the throttle record.
func (s *ChallengeStore) Update(email string, fn func(st *EmailState)) {
	sh := s.shard(email)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	st := EmailState{
		Challenge:    sh.challenges[email],
		LastIssuedAt: sh.lastIssued[email],
	}
	fn(&st)

	if st.Challenge == nil {
		delete(sh.challenges, email)
	} else {
		sh.challenges[email] = st.Challenge
	}
	if st.LastIssuedAt.IsZero() {
		delete(sh.lastIssued, email)
	} else {
		sh.lastIssued[email] = st.LastIssuedAt
	}
}

// PruneExpired removes all challenges whose expiry is at or before now,
// across every email. Throttle records older than throttleHorizon are dropped
// too; they only matter within the cooldown window.
func (s *ChallengeStore) PruneExpired(now time.Time, throttleHorizon time.Duration) {
	for _, sh := range s.shards {
		sh.mu.Lock()
		for email, ch := range sh.challenges {
			if !ch.ExpiresAt.After(now) {
				delete(sh.challenges, email)
			}
		}
		for email, issued := range sh.lastIssued {
			if now.Sub(issued) > throttleHorizon {
				delete(sh.lastIssued, email)
			}
		}
		sh.mu.Unlock()
	}
}

// Len returns the number of live challenges. Intended for tests and metrics.
func (s *ChallengeStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.challenges)
		sh.mu.Unlock()
	}
	return n
}
