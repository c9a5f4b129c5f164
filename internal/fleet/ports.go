package fleet

import (
	"context"
	"time"
)

// Clock abstracts time.Now() for deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// ContainerRuntime abstracts the container engine operations a reap
// pass needs.
// Production: adapter/docker.Runtime (wrapping Docker *client.Client)
// Testing: adapter/fake.Runtime
type ContainerRuntime interface {
	// ListByAncestor returns every container, running or stopped, whose
	// image lineage includes the given ancestor image. Creation times
	// come back exactly as the engine reported them, unparsed.
	ListByAncestor(ctx context.Context, image string) ([]Container, error)

	// Remove force-removes a container by ID, running or not. Removing
	// a container that no longer exists is a successful no-op.
	Remove(ctx context.Context, id string) error

	Close() error
}
