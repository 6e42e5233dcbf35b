// Package resolve maps user-supplied container names or IDs to containers
// known to the engine.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/Red5d/docker-autocompose/internal/docker"
	"github.com/Red5d/docker-autocompose/internal/logging"
	"github.com/Red5d/docker-autocompose/internal/metrics"
)

// ErrNotAvailable is returned when no container matches a name or ID.
var ErrNotAvailable = errors.New("container not available")

// Resolver looks containers up in one engine listing.
type Resolver struct {
	client docker.Client
	// runningOnly restricts matches to running containers.
	runningOnly bool
}

// New returns a Resolver. With runningOnly set, stopped containers are
// neither matched nor listed.
func New(client docker.Client, runningOnly bool) *Resolver {
	return &Resolver{client: client, runningOnly: runningOnly}
}

func (r *Resolver) list(ctx context.Context) ([]docker.Container, error) {
	return r.client.ListContainers(ctx, !r.runningOnly)
}

// Resolve returns the container for a single name or ID.
func (r *Resolver) Resolve(ctx context.Context, name string) (docker.Container, error) {
	containers, err := r.list(ctx)
	if err != nil {
		return docker.Container{}, err
	}
	return match(containers, name)
}

// ResolveAll resolves every name against a single listing. All failures are
// returned together; the result is only usable when the error is nil.
func (r *Resolver) ResolveAll(ctx context.Context, names []string) ([]docker.Container, error) {
	if len(names) == 0 {
		return nil, nil
	}
	containers, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	var result *multierror.Error
	out := make([]docker.Container, 0, len(names))
	for _, name := range names {
		c, err := match(containers, name)
		if err != nil {
			metrics.IncResolutionFailure()
			result = multierror.Append(result, err)
			continue
		}
		logging.Get().Debug().Str("name", name).Str("container", c.ShortID()).Str("state", c.State).Msg("resolved container")
		out = append(out, c)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// AllNames returns the primary name of every container in scope, in
// listing order.
func (r *Resolver) AllNames(ctx context.Context) ([]string, error) {
	containers, err := r.list(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(containers))
	for _, c := range containers {
		if n := c.PrimaryName(); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

// FilterNames keeps the names the pattern matches anywhere. A nil pattern
// keeps every name.
func FilterNames(names []string, pattern *regexp.Regexp) []string {
	if pattern == nil {
		return names
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if pattern.MatchString(n) {
			out = append(out, n)
		}
	}
	return out
}

// match returns the first container whose name equals query, whose short ID
// appears in query, or whose full ID starts with query.
func match(containers []docker.Container, query string) (docker.Container, error) {
	if query != "" {
		for _, c := range containers {
			if matches(c, query) {
				return c, nil
			}
		}
	}
	return docker.Container{}, fmt.Errorf("%s: %w", query, ErrNotAvailable)
}

func matches(c docker.Container, query string) bool {
	for _, n := range c.Names {
		if strings.TrimPrefix(n, "/") == query {
			return true
		}
	}
	if short := c.ShortID(); short != "" && strings.Contains(query, short) {
		return true
	}
	return c.ID != "" && strings.HasPrefix(c.ID, query)
}
