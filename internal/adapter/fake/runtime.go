package fake

import (
	"context"
	"strings"
	"sync"

	"fleetreap/internal/fleet"
)

var _ fleet.ContainerRuntime = (*Runtime)(nil)

// Runtime is an in-memory implementation of fleet.ContainerRuntime.
type Runtime struct {
	CallRecorder
	mu         sync.Mutex
	containers map[string]fleet.Container
	order      []string
	closed     bool

	ListErr   func(ctx context.Context, image string) error
	RemoveErr func(ctx context.Context, id string) error
}

// NewRuntime creates an empty Runtime.
func NewRuntime() *Runtime {
	return &Runtime{containers: make(map[string]fleet.Container)}
}

// Seed adds a container to the fake engine. Listing follows seed order.
func (r *Runtime) Seed(c fleet.Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.containers[c.ID]; !exists {
		r.order = append(r.order, c.ID)
	}
	r.containers[c.ID] = c
}

// Exists reports whether a container is still present.
func (r *Runtime) Exists(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.containers[id]
	return ok
}

// Closed reports whether Close was called.
func (r *Runtime) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Runtime) ListByAncestor(ctx context.Context, image string) ([]fleet.Container, error) {
	r.record("ListByAncestor", image)
	if r.ListErr != nil {
		if err := r.ListErr(ctx, image); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fleet.Container
	for _, id := range r.order {
		c, ok := r.containers[id]
		if !ok {
			continue
		}
		if matchesAncestor(c.Image, image) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Remove deletes the container. An absent ID is a successful no-op,
// matching the engine adapter's idempotent semantics.
func (r *Runtime) Remove(ctx context.Context, id string) error {
	r.record("Remove", id)
	if r.RemoveErr != nil {
		if err := r.RemoveErr(ctx, id); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.containers, id)
	return nil
}

func (r *Runtime) Close() error {
	r.record("Close")
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// matchesAncestor mimics the engine's ancestor filter closely enough
// for tests: an exact image reference, or the same repository under any
// tag when the ancestor carries none.
func matchesAncestor(containerImage, ancestor string) bool {
	if containerImage == ancestor {
		return true
	}
	return strings.HasPrefix(containerImage, ancestor+":")
}
