package authstate_test

import (
	"sync"
	"testing"
	"time"

	"github.com/blushhq/blush/internal/gallery/authstate"
	"github.com/blushhq/blush/internal/gallery/domain"
	"github.com/stretchr/testify/require"
)

func TestUpdateCreatesAndDeletes(t *testing.T) {
	t.Parallel()

	s := authstate.NewChallengeStore()
	now := time.Now()

	s.Update("alice@example.com", func(st *authstate.EmailState) {
		require.Nil(t, st.Challenge)
		require.True(t, st.LastIssuedAt.IsZero())

		st.Challenge = &domain.Challenge{
			Email:     "alice@example.com",
			CodeHash:  "hash",
			ExpiresAt: now.Add(time.Minute),
		}
		st.LastIssuedAt = now
	})
	require.Equal(t, 1, s.Len())

	s.Update("alice@example.com", func(st *authstate.EmailState) {
		require.NotNil(t, st.Challenge)
		require.Equal(t, "hash", st.Challenge.CodeHash)
		require.Equal(t, now, st.LastIssuedAt)

		st.Challenge = nil
	})
	require.Equal(t, 0, s.Len())

	// Throttle record survives challenge deletion.
	s.Update("alice@example.com", func(st *authstate.EmailState) {
		require.Nil(t, st.Challenge)
		require.Equal(t, now, st.LastIssuedAt)
	})
}

func TestUpdateIsAtomicPerEmail(t *testing.T) {
	t.Parallel()

	s := authstate.NewChallengeStore()
	s.Update("alice@example.com", func(st *authstate.EmailState) {
		st.Challenge = &domain.Challenge{
			Email:     "alice@example.com",
			ExpiresAt: time.Now().Add(time.Minute),
		}
	})

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			s.Update("alice@example.com", func(st *authstate.EmailState) {
				st.Challenge.Attempts++
			})
		}()
	}
	wg.Wait()

	s.Update("alice@example.com", func(st *authstate.EmailState) {
		require.Equal(t, workers, st.Challenge.Attempts)
	})
}

func TestPruneExpired(t *testing.T) {
	t.Parallel()

	s := authstate.NewChallengeStore()
	now := time.Now()

	add := func(email string, expiresAt time.Time, issuedAt time.Time) {
		s.Update(email, func(st *authstate.EmailState) {
			st.Challenge = &domain.Challenge{Email: email, ExpiresAt: expiresAt}
			st.LastIssuedAt = issuedAt
		})
	}

	add("live@example.com", now.Add(time.Minute), now)
	add("expired@example.com", now.Add(-time.Second), now.Add(-2*time.Hour))

	s.PruneExpired(now, time.Hour)

	require.Equal(t, 1, s.Len())
	s.Update("expired@example.com", func(st *authstate.EmailState) {
		require.Nil(t, st.Challenge)
		require.True(t, st.LastIssuedAt.IsZero(), "stale throttle record should be dropped")
	})
	s.Update("live@example.com", func(st *authstate.EmailState) {
		require.NotNil(t, st.Challenge)
		require.False(t, st.LastIssuedAt.IsZero())
	})
}
