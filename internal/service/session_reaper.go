package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/itec-institute/portal/internal/observability/metrics"
	"github.com/itec-institute/portal/internal/observability/statsd"
	"github.com/itec-institute/portal/internal/ports"
)

const defaultSweepInterval = time.Minute

// SessionReaperOptions groups dependencies for SessionReaper.
type SessionReaperOptions struct {
	Sweeper  ports.SessionSweeper // Required
	Interval time.Duration        // default 1m
	Logger   *slog.Logger         // Optional
	Metrics  statsd.Sink          // Optional
	Now      func() time.Time     // Optional, for tests
}

// SessionReaper periodically evicts expired sessions from stores without native TTLs.
type SessionReaper struct {
	sweeper  ports.SessionSweeper
	interval time.Duration
	logger   *slog.Logger
	metrics  statsd.Sink
	now      func() time.Time
}

// NewSessionReaper constructs a SessionReaper.
func NewSessionReaper(opts SessionReaperOptions) (*SessionReaper, error) {
	if opts.Sweeper == nil {
		return nil, errors.New("SessionSweeper is required")
	}
	r := &SessionReaper{
		sweeper:  opts.Sweeper,
		interval: opts.Interval,
		metrics:  opts.Metrics,
		now:      opts.Now,
	}
	if r.interval <= 0 {
		r.interval = defaultSweepInterval
	}
	if r.now == nil {
		r.now = time.Now
	}
	if opts.Logger != nil {
		r.logger = opts.Logger.With("component", "session_reaper")
	}
	return r, nil
}

// Run sweeps at the configured interval until ctx is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (r *SessionReaper) Run(ctx context.Context) error {
	if r.logger != nil {
		r.logger.InfoContext(ctx, "starting session reaper", "interval", r.interval)
	}

	r.waitWithJitter(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if r.logger != nil {
				r.logger.InfoContext(ctx, "session reaper stopping", "reason", ctx.Err())
			}
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			r.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single eviction pass and returns the number of sessions removed.
// Errors are logged; the reaper keeps running.
func (r *SessionReaper) SweepOnce(ctx context.Context) int {
	removed, err := r.sweeper.Sweep(ctx, r.now())
	metrics.EmitSessionSweep(r.metrics, removed, err)
	if err != nil {
		if r.logger != nil && !errors.Is(err, context.Canceled) {
			r.logger.WarnContext(ctx, "session sweep failed", "error", err)
		}
		return removed
	}
	if removed > 0 && r.logger != nil {
		r.logger.DebugContext(ctx, "evicted expired sessions", "count", removed)
	}
	return removed
}

// waitWithJitter adds a random delay up to 10% of the interval to prevent thundering herd.
func (r *SessionReaper) waitWithJitter(ctx context.Context) {
	maxJitter := int64(r.interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}
