package service

import (
	"log/slog"
	"time"

	"github.com/blushhq/blush/internal/gallery/authstate"
)

// HousekeepingService periodically sweeps expired OTP challenges and spent
// revocation entries. Every auth operation already prunes lazily, so this
// only bounds memory for emails and tokens that never come back.
type HousekeepingService struct {
	Challenges  *authstate.ChallengeStore
	Revocations *authstate.RevocationSet
	Logger      *slog.Logger
	Interval    time.Duration

	// ThrottleHorizon is how long resend timestamps are kept after their
	// last use. It should be at least the resend cooldown.
	ThrottleHorizon time.Duration

	Now func() time.Time

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(
	challenges *authstate.ChallengeStore,
	revocations *authstate.RevocationSet,
	logger *slog.Logger,
	interval time.Duration,
	throttleHorizon time.Duration,
) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Challenges:      challenges,
		Revocations:     revocations,
		Logger:          logger,
		Interval:        interval,
		ThrottleHorizon: throttleHorizon,
		stopCh:          make(chan struct{}),
		doneCh:          make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs the sweep.
// This is non-blocking. Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run a sweep immediately on startup
	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep() {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	s.Challenges.PruneExpired(now, s.ThrottleHorizon)
	s.Revocations.PruneExpired(now)

	s.Logger.Debug("housekeeping sweep completed",
		"live_challenges", s.Challenges.Len(),
		"live_revocations", s.Revocations.Len(),
	)
}
