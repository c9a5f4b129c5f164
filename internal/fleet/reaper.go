// Package fleet reaps containers by image lineage and age.
//
// A pass is stateless: it discovers the fleet through the runtime port,
// evaluates every container's age against a single reference instant,
// applies the retention policy, and evicts. Nothing carries over
// between passes, so a pass can run once from cron or on a loop with
// identical semantics.
package fleet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fleetreap/internal/check"
)

type Reaper struct {
	Runtime   ContainerRuntime // injected: engine adapter or fake
	Image     string           // ancestor image identifying the fleet
	Policy    Policy
	Clock     Clock         // nil selects RealClock
	OnOutcome func(Outcome) // optional per-container observer
}

func (r *Reaper) getClock() Clock {
	if r.Clock != nil {
		return r.Clock
	}
	return RealClock{}
}

func (r *Reaper) emit(o Outcome) {
	if r.OnOutcome != nil {
		r.OnOutcome(o)
	}
}

// Pass runs one discovery, evaluation and eviction cycle and returns
// the outcome for every discovered container in discovery order. Ages
// are all evaluated against one instant read before the first decision.
// Per-container failures never abort the pass; only discovery failure
// does.
func (r *Reaper) Pass(ctx context.Context) ([]Outcome, error) {
	check.Assert(r.Runtime != nil, "Reaper.Pass: Runtime must not be nil")

	if r.Image == "" {
		return nil, fmt.Errorf("ancestor image is required")
	}
	if err := r.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("retention policy: %w", err)
	}

	containers, err := r.Runtime.ListByAncestor(ctx, r.Image)
	if err != nil {
		return nil, fmt.Errorf("discover fleet of %q: %w", r.Image, err)
	}
	slog.Info("fleet discovered", "image", r.Image, "containers", len(containers), "dry_run", r.Policy.DryRun)

	now := r.getClock().Now()
	outcomes := make([]Outcome, 0, len(containers))
	for _, c := range containers {
		o := r.reapOne(ctx, c, now)
		r.emit(o)
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

func (r *Reaper) reapOne(ctx context.Context, c Container, now time.Time) Outcome {
	o := Outcome{ID: c.ID, Image: c.Image}

	age, err := EvaluateAge(c, now)
	if err != nil {
		o.AgeMinutes = -1
		o.Decision = SkippedUnparsable
		o.Detail = err.Error()
		slog.Warn("skipping container with unreadable creation time",
			"container", ShortID(c.ID), "image", c.Image, "raw_created", c.RawCreated, "err", err)
		return o
	}
	o.AgeMinutes = age

	if Decide(age, r.Policy) == Retain {
		o.Decision = RetainedUnderThreshold
		slog.Info("container retained",
			"container", ShortID(c.ID), "image", c.Image, "age_minutes", age, "min_age_minutes", r.Policy.MinAgeMinutes)
		return o
	}

	if r.Policy.DryRun {
		o.Decision = RetainedWouldEvict
		slog.Info("container would be evicted",
			"container", ShortID(c.ID), "image", c.Image, "age_minutes", age, "dry_run", true)
		return o
	}

	if err := r.Runtime.Remove(ctx, c.ID); err != nil {
		o.Decision = EvictionFailed
		o.Detail = err.Error()
		slog.Error("container eviction failed",
			"container", ShortID(c.ID), "image", c.Image, "age_minutes", age, "err", err)
		return o
	}
	o.Decision = Evicted
	slog.Info("container evicted", "container", ShortID(c.ID), "image", c.Image, "age_minutes", age)
	return o
}
