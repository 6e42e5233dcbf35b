package docker

import (
	"context"
	"fmt"

	containertypes "github.com/docker/docker/api/types/container"
	imageapi "github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"

	"github.com/Red5d/docker-autocompose/internal/logging"
	"github.com/Red5d/docker-autocompose/internal/metrics"
)

// Client is the read-only engine surface autocompose needs. All calls are
// synchronous; errors are returned wrapped and never retried.
type Client interface {
	// ListContainers returns containers in engine listing order. all=false
	// restricts the listing to running containers.
	ListContainers(ctx context.Context, all bool) ([]Container, error)
	InspectContainer(ctx context.Context, id string) (*Inspection, error)
	ListNetworks(ctx context.Context) ([]Network, error)
	// ImageRepoDigests returns the repo digests the engine recorded for image.
	ImageRepoDigests(ctx context.Context, image string) ([]string, error)
}

// dockerAPI is the subset of the Docker SDK client used by sdkClient
type dockerAPI interface {
	ContainerList(ctx context.Context, options containertypes.ListOptions) ([]containertypes.Summary, error)
	ContainerInspect(ctx context.Context, containerID string) (containertypes.InspectResponse, error)
	NetworkList(ctx context.Context, options network.ListOptions) ([]network.Summary, error)
	ImageInspect(ctx context.Context, imageID string, inspectOpts ...client.ImageInspectOption) (imageapi.InspectResponse, error)
}

// sdkClient is the production implementation using the official Docker SDK
type sdkClient struct {
	cli dockerAPI
}

// NewClient returns an SDK-backed client configured from the environment
// (DOCKER_HOST, DOCKER_CERT_PATH, ...).
func NewClient() (Client, error) {
	return NewClientForHost("")
}

// NewClientForHost returns a client configured for a specific host endpoint.
// host may be empty to indicate default behavior (FromEnv).
func NewClientForHost(host string) (Client, error) {
	opts := []client.Opt{client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	} else {
		opts = append(opts, client.FromEnv)
	}

	c, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, err
	}
	return &sdkClient{cli: c}, nil
}

func (s *sdkClient) ListContainers(ctx context.Context, all bool) ([]Container, error) {
	metrics.IncEngineRequest("container_list")
	list, err := s.cli.ContainerList(ctx, containertypes.ListOptions{All: all})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	out := make([]Container, 0, len(list))
	for _, c := range list {
		out = append(out, Container{
			ID:    c.ID,
			Names: c.Names,
			State: string(c.State),
		})
	}
	logging.Get().Debug().Int("count", len(out)).Bool("all", all).Msg("listed containers")
	return out, nil
}

func (s *sdkClient) InspectContainer(ctx context.Context, id string) (*Inspection, error) {
	metrics.IncEngineRequest("container_inspect")
	insp, err := s.cli.ContainerInspect(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inspect container %s: %w", id, err)
	}
	return fromInspectResponse(insp), nil
}

func (s *sdkClient) ListNetworks(ctx context.Context) ([]Network, error) {
	metrics.IncEngineRequest("network_list")
	list, err := s.cli.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	out := make([]Network, 0, len(list))
	for _, n := range list {
		out = append(out, fromNetwork(n))
	}
	return out, nil
}

func (s *sdkClient) ImageRepoDigests(ctx context.Context, image string) ([]string, error) {
	metrics.IncEngineRequest("image_inspect")
	insp, err := s.cli.ImageInspect(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("inspect image %s: %w", image, err)
	}
	return insp.RepoDigests, nil
}
