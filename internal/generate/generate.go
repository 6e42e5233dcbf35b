// Package generate runs one resolve, map and aggregate pass and returns the
// assembled compose document.
package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/Red5d/docker-autocompose/internal/compose"
	"github.com/Red5d/docker-autocompose/internal/config"
	"github.com/Red5d/docker-autocompose/internal/docker"
	"github.com/Red5d/docker-autocompose/internal/logging"
	"github.com/Red5d/docker-autocompose/internal/metrics"
	"github.com/Red5d/docker-autocompose/internal/resolve"
)

// Generator holds the configuration and engine client for a run.
type Generator struct {
	cfg      *config.Config
	client   docker.Client
	resolver *resolve.Resolver
}

// New returns a Generator and logs configuration warnings.
func New(cfg *config.Config, client docker.Client) *Generator {
	for _, w := range cfg.Validate() {
		logging.Get().Warn().Str("warning", w).Msg("config validation")
	}
	return &Generator{
		cfg:      cfg,
		client:   client,
		resolver: resolve.New(client, cfg.RunningOnly),
	}
}

// Run builds the document. Resolution failures abort the run before any
// container is inspected.
func (g *Generator) Run(ctx context.Context) (*compose.Document, error) {
	start := time.Now()

	names, err := g.selectNames(ctx)
	if err != nil {
		return nil, err
	}
	containers, err := g.resolver.ResolveAll(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("resolve containers: %w", err)
	}

	agg := compose.NewAggregator()
	for _, c := range containers {
		frag, err := g.mapContainer(ctx, c)
		if err != nil {
			return nil, err
		}
		agg.Add(frag)
		metrics.IncContainerMapped()
	}

	networks, err := g.networks(ctx, agg)
	if err != nil {
		return nil, fmt.Errorf("collect networks: %w", err)
	}
	doc := agg.Document(networks)

	metrics.AddNetworksEmitted(len(doc.Networks))
	metrics.AddVolumesEmitted(len(doc.Volumes))
	metrics.SetLastRun(time.Now())
	logging.Get().Info().
		Int("services", len(doc.ServiceNames)).
		Int("networks", len(doc.Networks)).
		Int("volumes", len(doc.Volumes)).
		Dur("duration", time.Since(start)).
		Msg("compose document generated")
	return doc, nil
}

// selectNames returns the explicit names plus, with All set, every container
// in scope, narrowed by the filter.
func (g *Generator) selectNames(ctx context.Context) ([]string, error) {
	names := append([]string(nil), g.cfg.Names...)
	if g.cfg.All {
		all, err := g.resolver.AllNames(ctx)
		if err != nil {
			return nil, fmt.Errorf("list containers: %w", err)
		}
		names = append(names, all...)
	}
	re, err := g.cfg.FilterRegexp()
	if err != nil {
		return nil, err
	}
	filtered := resolve.FilterNames(names, re)
	if re != nil {
		logging.Get().Debug().Str("filter", re.String()).Int("before", len(names)).Int("after", len(filtered)).Msg("filtered container names")
	}
	return filtered, nil
}

func (g *Generator) mapContainer(ctx context.Context, c docker.Container) (*compose.Fragment, error) {
	insp, err := g.client.InspectContainer(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	opts := compose.MapOptions{CreateVolumes: g.cfg.CreateVolumes}
	if g.cfg.PinDigests {
		opts.Image = g.pinnedImage(ctx, insp)
	}
	frag := compose.MapContainer(insp, opts)
	logging.Get().Debug().Str("service", frag.Name).Str("container", c.ShortID()).Int("attributes", frag.Service.Len()).Msg("mapped container")
	return frag, nil
}

// pinnedImage returns the digest reference for the container image, or ""
// to keep the configured image. Lookup failures are not fatal.
func (g *Generator) pinnedImage(ctx context.Context, insp *docker.Inspection) string {
	if insp.Config == nil || insp.Config.Image == "" {
		return ""
	}
	image := insp.Config.Image
	digests, err := g.client.ImageRepoDigests(ctx, image)
	if err != nil {
		logging.Get().Warn().Err(err).Str("image", image).Msg("failed to look up repo digests; keeping image reference")
		return ""
	}
	pinned := compose.PinnedImage(image, digests)
	if pinned == "" {
		logging.Get().Warn().Str("image", image).Msg("no repo digest recorded for image; keeping image reference")
	}
	return pinned
}

func (g *Generator) networks(ctx context.Context, agg *compose.Aggregator) (map[string]compose.Value, error) {
	if g.cfg.All {
		return compose.DumpAll(ctx, g.client)
	}
	return compose.CollectReferenced(ctx, g.client, agg.NetworkNames())
}
