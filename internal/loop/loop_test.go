package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunner_ImmediatePass(t *testing.T) {
	var passes atomic.Int64
	r := &Runner{
		Interval: time.Hour, // no tick fires during the test
		Pass: func(ctx context.Context) error {
			passes.Add(1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Run still performs the immediate pass before selecting
	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := passes.Load(); got != 1 {
		t.Errorf("expected 1 immediate pass, got %d", got)
	}
}

func TestRunner_TicksUntilCancelled(t *testing.T) {
	var passes atomic.Int64
	r := &Runner{
		Interval: 10 * time.Millisecond,
		Pass: func(ctx context.Context) error {
			passes.Add(1)
			return nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for passes.Load() < 3 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("timed out waiting for ticks")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRunner_ContinuesAfterFailedPass(t *testing.T) {
	var passes atomic.Int64
	r := &Runner{
		Interval: 10 * time.Millisecond,
		Pass: func(ctx context.Context) error {
			passes.Add(1)
			return errors.New("daemon hiccup")
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for passes.Load() < 3 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("timed out waiting for passes after failures")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != nil {
		t.Errorf("Run() error = %v, failed passes must not propagate", err)
	}
}
