// Package loop drives repeated reap passes on a fixed cadence.
package loop

import (
	"context"
	"log/slog"
	"time"

	"fleetreap/internal/check"
)

// DefaultInterval is 5m: short enough to bound stale-container buildup,
// long enough that a pass never overlaps the next tick.
const DefaultInterval = 5 * time.Minute

// Runner invokes a pass on a fixed cadence until its context is
// cancelled. A failed pass is logged and the cadence continues; the
// next tick re-derives the fleet from scratch anyway.
type Runner struct {
	Interval time.Duration               // zero selects DefaultInterval
	Pass     func(context.Context) error // injected: one reap pass
}

// Run performs an immediate pass, then one per tick. It returns nil
// once ctx is cancelled; pass failures never propagate.
func (r *Runner) Run(ctx context.Context) error {
	check.Assert(r.Pass != nil, "Runner.Run: Pass must not be nil")

	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	r.passOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watch loop stopped")
			return nil
		case <-ticker.C:
			r.passOnce(ctx)
		}
	}
}

func (r *Runner) passOnce(ctx context.Context) {
	if err := r.Pass(ctx); err != nil && ctx.Err() == nil {
		slog.Warn("pass failed", "err", err)
	}
}
