// Package clockcheck guards age evaluation against host clock skew.
//
// Container ages are computed from the host clock. A host running far
// off true time misclassifies containers under an age-gated policy, so
// passes can consult a Checker and warn before reaping. The check never
// blocks a pass: skew is reported, not enforced.
package clockcheck

import (
	"context"
	"sync"
	"time"

	"fleetreap/internal/fleet"

	"github.com/beevik/ntp"
)

const (
	defaultPool      = "pool.ntp.org"
	defaultInterval  = 60 * time.Second
	defaultThreshold = 500 * time.Millisecond
)

// Status is the result of the most recent clock check.
type Status struct {
	Offset    time.Duration
	Healthy   bool
	Error     string
	CheckedAt time.Time
}

// Checker measures host clock offset against an NTP pool.
type Checker struct {
	mu        sync.RWMutex
	status    Status
	pool      string
	interval  time.Duration
	threshold time.Duration
	clock     fleet.Clock

	// CheckFunc overrides the NTP query in tests.
	CheckFunc func() Status
}

func New(clock fleet.Clock) *Checker {
	return &Checker{
		pool:      defaultPool,
		interval:  defaultInterval,
		threshold: defaultThreshold,
		clock:     clock,
	}
}

// CheckOnce performs a single query and returns the resulting status.
func (c *Checker) CheckOnce() Status {
	c.check()
	return c.Status()
}

// Run checks immediately, then on every interval tick until the context
// is cancelled.
func (c *Checker) Run(ctx context.Context) {
	c.check()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.check()
		}
	}
}

func (c *Checker) check() {
	if c.CheckFunc != nil {
		s := c.CheckFunc()
		c.mu.Lock()
		c.status = s
		c.mu.Unlock()
		return
	}

	resp, err := ntp.Query(c.pool)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if err != nil {
		c.status = Status{
			Error:     err.Error(),
			Healthy:   false,
			CheckedAt: now,
		}
		return
	}

	offset := resp.ClockOffset
	if offset < 0 {
		offset = -offset
	}

	c.status = Status{
		Offset:    resp.ClockOffset,
		Healthy:   offset < c.threshold,
		CheckedAt: now,
	}
}

// Status returns the most recent check result.
func (c *Checker) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}
