package storage

import (
	"context"
	"time"

	"github.com/seatwave/auth-front/internal/log"
)

// Sweeper is implemented by stores that need periodic expiry sweeps.
// Redis expires keys natively and doesn't need one.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// Reaper periodically deletes expired records from a Sweeper-backed store.
type Reaper struct {
	store    Sweeper
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

// NewReaper creates a reaper sweeping at the given interval.
func NewReaper(store Sweeper, interval time.Duration) *Reaper {
	return &Reaper{
		store:    store,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the sweep loop in a goroutine.
func (r *Reaper) Start(ctx context.Context) {
	log.LogInfoWithFields("reaper", "Starting expired record reaper", map[string]any{
		"interval": r.interval.String(),
	})

	go r.run(ctx)
}

// Stop gracefully stops the sweep loop.
func (r *Reaper) Stop() {
	close(r.stopChan)
	<-r.doneChan
	log.LogInfoWithFields("reaper", "Expired record reaper stopped", nil)
}

func (r *Reaper) run(ctx context.Context) {
	defer close(r.doneChan)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(ctx)
		case <-r.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (r *Reaper) sweep(ctx context.Context) {
	count, err := r.store.Sweep(ctx, time.Now())
	if err != nil {
		log.LogErrorWithFields("reaper", "Failed to sweep expired records", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if count > 0 {
		log.LogDebugWithFields("reaper", "Swept expired records", map[string]any{
			"count": count,
		})
	}
}
