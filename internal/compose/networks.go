package compose

import (
	"context"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/Red5d/docker-autocompose/internal/docker"
	"github.com/Red5d/docker-autocompose/internal/logging"
)

// NetworkLister is the part of docker.Client the collector needs.
type NetworkLister interface {
	ListNetworks(ctx context.Context) ([]docker.Network, error)
}

// CollectReferenced returns {external, name} declarations for the networks
// in names, using a single network listing. No engine call is made when
// names is empty.
func CollectReferenced(ctx context.Context, lister NetworkLister, names mapset.Set[string]) (map[string]Value, error) {
	out := map[string]Value{}
	if names == nil || names.Cardinality() == 0 {
		return out, nil
	}
	nets, err := lister.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range nets {
		if !names.Contains(n.Name) {
			continue
		}
		m := NewMapping()
		m.Set("external", Bool(!n.Internal))
		m.Set("name", String(n.Name))
		out[n.Name] = Map(m)
	}
	missing := names.Clone()
	for name := range out {
		missing.Remove(name)
	}
	if missing.Cardinality() > 0 {
		list := missing.ToSlice()
		sort.Strings(list)
		logging.Get().Warn().Strs("networks", list).Msg("referenced networks not found on host; leaving them undeclared")
	}
	return out, nil
}

// DumpAll returns every host network with its driver and IPAM detail.
// Values are emitted as the engine reports them, without emptiness filtering.
func DumpAll(ctx context.Context, lister NetworkLister) (map[string]Value, error) {
	nets, err := lister.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(nets))
	for _, n := range nets {
		out[n.Name] = Map(networkDetail(n))
	}
	return out, nil
}

func networkDetail(n docker.Network) *Mapping {
	scope := n.Scope
	if scope == "" {
		scope = "local"
	}
	ipamDriver := n.IPAM.Driver
	if ipamDriver == "" {
		ipamDriver = "default"
	}

	configs := make([]Value, 0, len(n.IPAM.Config))
	for _, c := range n.IPAM.Config {
		configs = append(configs, Map(ipamConfig(c)))
	}
	ipam := NewMapping()
	ipam.Set("driver", String(ipamDriver))
	ipam.Set("config", List(configs...))

	m := NewMapping()
	m.Set("name", String(n.Name))
	m.Set("scope", String(scope))
	m.Set("driver", String(n.Driver))
	m.Set("enable_ipv6", Bool(n.EnableIPv6))
	m.Set("internal", Bool(n.Internal))
	m.Set("ipam", Map(ipam))
	return m
}

// ipamConfig emits the engine's IPAM keys lower-cased. Keys the engine omits when
// unset (IPRange, Gateway, AuxiliaryAddresses) are omitted here too.
func ipamConfig(c docker.IPAMConfig) *Mapping {
	m := NewMapping()
	m.Set("subnet", String(c.Subnet))
	if c.IPRange != "" {
		m.Set("iprange", String(c.IPRange))
	}
	if c.Gateway != "" {
		m.Set("gateway", String(c.Gateway))
	}
	if len(c.AuxAddress) > 0 {
		keys := make([]string, 0, len(c.AuxAddress))
		for k := range c.AuxAddress {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		aux := NewMapping()
		for _, k := range keys {
			aux.Set(k, String(c.AuxAddress[k]))
		}
		m.Set("auxiliaryaddresses", Map(aux))
	}
	return m
}
