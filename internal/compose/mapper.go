package compose

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/docker/go-connections/nat"

	"github.com/Red5d/docker-autocompose/internal/docker"
)

// defaultNetworks are the engine's built-in networks. Compose cannot list
// them under networks; attachment to one of them is expressed as network_mode.
var defaultNetworks = mapset.NewSet("bridge", "host", "none")

// VolumeResource is a top-level volume declaration.
type VolumeResource struct {
	External bool
}

// MapOptions tune a single MapContainer call.
type MapOptions struct {
	// CreateVolumes leaves named volumes unregistered so the deployment
	// creates them instead of reusing the existing ones.
	CreateVolumes bool
	// Image, when non-empty, replaces Config.Image (digest pinning).
	Image string
}

// Fragment is the mapper output for one container.
type Fragment struct {
	Name    string
	Service *Mapping
	// Networks are the attached non-default network names.
	Networks mapset.Set[string]
	// Volumes are named volumes to declare as external resources.
	Volumes map[string]VolumeResource
}

// MapContainer converts one inspection record into a service fragment. It never
// fails: absent sections simply contribute no attributes.
func MapContainer(insp *docker.Inspection, opts MapOptions) *Fragment {
	frag := &Fragment{
		Name:     insp.ServiceName(),
		Networks: mapset.NewSet[string](),
		Volumes:  map[string]VolumeResource{},
	}

	attrs := map[string]Value{}
	for _, f := range serviceFields {
		attrs[f.name] = f.extract(insp)
	}
	if opts.Image != "" {
		attrs["image"] = String(opts.Image)
	}

	networksValue, networkMode := mapNetworks(insp, frag.Networks)
	attrs["networks"] = networksValue
	attrs["network_mode"] = networkMode

	attrs["volumes"] = mapMounts(insp.Mounts, opts.CreateVolumes, frag.Volumes)

	ports, expose := mapPorts(insp)
	attrs["ports"] = ports
	attrs["expose"] = expose

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	frag.Service = NewMapping()
	for _, k := range keys {
		frag.Service.SetIfNotEmpty(k, attrs[k])
	}
	return frag
}

// mapNetworks fills names with the attached user networks and returns the
// networks attribute, or network_mode when only default networks are attached.
func mapNetworks(insp *docker.Inspection, names mapset.Set[string]) (Value, Value) {
	attachments := netOf(insp).Networks
	if len(attachments) == 0 {
		return Absent, Absent
	}

	var user []docker.NetworkAttachment
	for _, att := range attachments {
		if defaultNetworks.Contains(att.Name) {
			continue
		}
		if names.Add(att.Name) {
			user = append(user, att)
		}
	}
	if len(user) == 0 {
		return Absent, String(attachments[0].Name)
	}
	sort.Slice(user, func(a, b int) bool { return user[a].Name < user[b].Name })

	aliased := false
	aliasesByNet := make(map[string][]string, len(user))
	for _, att := range user {
		if a := userAliases(insp, att.Aliases); len(a) > 0 {
			aliasesByNet[att.Name] = a
			aliased = true
		}
	}
	if !aliased {
		items := make([]Value, 0, len(user))
		for _, att := range user {
			items = append(items, String(att.Name))
		}
		return List(items...), Absent
	}

	m := NewMapping()
	for _, att := range user {
		entry := NewMapping()
		if a := aliasesByNet[att.Name]; len(a) > 0 {
			entry.Set("aliases", Strings(a))
		}
		m.Set(att.Name, Map(entry))
	}
	return Map(m), Absent
}

// userAliases drops the aliases the engine adds on its own: the short
// container ID and the container name.
func userAliases(insp *docker.Inspection, aliases []string) []string {
	var out []string
	for _, a := range aliases {
		if a == "" || a == insp.ShortID() || a == insp.ServiceName() {
			continue
		}
		out = append(out, a)
	}
	return out
}

// mapMounts builds the sorted volumes attribute and registers named volumes
// in resources unless createVolumes is set.
func mapMounts(mounts []docker.Mount, createVolumes bool, resources map[string]VolumeResource) Value {
	if mounts == nil {
		return Absent
	}
	specs := []string{}
	for _, m := range mounts {
		dest := m.Destination
		if !m.RW {
			dest += ":ro"
		}
		switch m.Type {
		case docker.MountTypeVolume:
			specs = append(specs, m.Name+":"+dest)
			if !createVolumes {
				resources[m.Name] = VolumeResource{External: true}
			}
		case docker.MountTypeBind:
			specs = append(specs, m.Source+":"+dest)
		}
	}
	sort.Strings(specs)
	return Strings(specs)
}

// mapPorts returns the ports attribute when host bindings exist, otherwise
// the expose attribute built from the declared container ports.
func mapPorts(insp *docker.Inspection) (Value, Value) {
	if ports := portBindings(hostOf(insp).PortBindings); len(ports) > 0 {
		return Strings(ports), Absent
	}
	exposed := cfgOf(insp).ExposedPorts
	if len(exposed) == 0 {
		return Absent, Absent
	}
	specs := make([]string, 0, len(exposed))
	for p := range exposed {
		specs = append(specs, string(p))
	}
	sort.Strings(specs)
	return Absent, Strings(specs)
}

func portBindings(bindings nat.PortMap) []string {
	if len(bindings) == 0 {
		return nil
	}
	keys := make([]nat.Port, 0, len(bindings))
	for p := range bindings {
		keys = append(keys, p)
	}
	nat.Sort(keys, func(a, b nat.Port) bool {
		if a.Int() != b.Int() {
			return a.Int() < b.Int()
		}
		return a.Proto() < b.Proto()
	})

	var out []string
	for _, p := range keys {
		for _, b := range bindings[p] {
			out = append(out, portSpec(b.HostIP, b.HostPort, string(p)))
		}
	}
	return out
}

// portSpec renders hostIp:hostPort:containerPort, dropping the leading
// colon when the binding listens on all interfaces.
func portSpec(hostIP, hostPort, containerPort string) string {
	if hostIP == "" && hostPort == "" {
		return containerPort
	}
	return strings.TrimPrefix(hostIP+":"+hostPort+":"+containerPort, ":")
}
