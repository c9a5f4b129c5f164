package docker

import (
	"context"
	"fmt"
	"log/slog"

	"fleetreap/internal/fleet"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	dockerfilters "github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

var _ fleet.ContainerRuntime = (*Runtime)(nil)

// Runtime implements fleet.ContainerRuntime using the Docker Engine API.
type Runtime struct {
	cli *client.Client
}

// NewRuntime creates a Runtime with a new Docker client from the
// environment. Construction does not dial the daemon; an unreachable
// daemon surfaces on the first discovery.
func NewRuntime() (*Runtime, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", err)
	}
	return &Runtime{cli: cli}, nil
}

// NewRuntimeFromClient wraps an existing Docker client.
func NewRuntimeFromClient(cli *client.Client) *Runtime {
	return &Runtime{cli: cli}
}

// ListByAncestor lists all containers descending from the given image,
// running or stopped. The engine's ancestor filter matches the image
// and every image built on top of it.
//
// Creation times pass through as the raw strings the inspect endpoint
// returns. A container that vanishes between list and inspect is
// dropped; an inspect that fails any other way keeps the container with
// an empty creation time so the decision layer skips it rather than
// evicting blind.
func (r *Runtime) ListByAncestor(ctx context.Context, image string) ([]fleet.Container, error) {
	filters := dockerfilters.NewArgs()
	filters.Add("ancestor", image)

	summaries, err := r.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: filters})
	if err != nil {
		return nil, fmt.Errorf("list containers by ancestor %q: %w: %v", image, fleet.ErrRuntimeUnavailable, err)
	}

	out := make([]fleet.Container, 0, len(summaries))
	for _, s := range summaries {
		rec := fleet.Container{ID: s.ID, Image: s.Image}

		info, err := r.cli.ContainerInspect(ctx, s.ID)
		switch {
		case errdefs.IsNotFound(err):
			continue
		case err != nil:
			slog.Warn("inspect failed, keeping container with unknown creation time",
				"container", fleet.ShortID(s.ID), "err", err)
		default:
			rec.RawCreated = info.Created
		}
		out = append(out, rec)
	}
	return out, nil
}

// Remove force-removes a container. A container that is already gone
// counts as removed.
func (r *Runtime) Remove(ctx context.Context, id string) error {
	err := r.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: true})
	if err != nil && !errdefs.IsNotFound(err) {
		return fmt.Errorf("remove container %q: %w", fleet.ShortID(id), err)
	}
	return nil
}

func (r *Runtime) Close() error {
	return r.cli.Close()
}
