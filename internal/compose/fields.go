package compose

import (
	"sort"
	"strconv"

	"github.com/Red5d/docker-autocompose/internal/docker"
)

// field maps one service attribute to its source in the inspection record.
type field struct {
	name    string
	extract func(*docker.Inspection) Value
}

// Null-safe section accessors. A missing section reads as its zero value.
var (
	emptyConfig     = &docker.ContainerConfig{}
	emptyHostConfig = &docker.HostConfig{}
	emptyNetwork    = &docker.NetworkSettings{}
)

func cfgOf(i *docker.Inspection) *docker.ContainerConfig {
	if i == nil || i.Config == nil {
		return emptyConfig
	}
	return i.Config
}

func hostOf(i *docker.Inspection) *docker.HostConfig {
	if i == nil || i.HostConfig == nil {
		return emptyHostConfig
	}
	return i.HostConfig
}

func netOf(i *docker.Inspection) *docker.NetworkSettings {
	if i == nil || i.NetworkSettings == nil {
		return emptyNetwork
	}
	return i.NetworkSettings
}

// serviceFields lists the direct attribute mappings. Derived attributes
// (networks, volumes, ports) are computed by the mapper since they also
// produce top-level resources.
var serviceFields = []field{
	{"cap_add", func(i *docker.Inspection) Value { return Strings(hostOf(i).CapAdd) }},
	{"cap_drop", func(i *docker.Inspection) Value { return Strings(hostOf(i).CapDrop) }},
	{"cgroup_parent", func(i *docker.Inspection) Value { return String(hostOf(i).CgroupParent) }},
	{"command", commandValue},
	{"container_name", func(i *docker.Inspection) Value { return String(i.ServiceName()) }},
	{"cpu_shares", func(i *docker.Inspection) Value { return Int(hostOf(i).CPUShares) }},
	{"cpuset", func(i *docker.Inspection) Value { return String(hostOf(i).CpusetCpus) }},
	{"devices", devicesValue},
	{"dns", func(i *docker.Inspection) Value { return Strings(hostOf(i).DNS) }},
	{"dns_search", func(i *docker.Inspection) Value { return Strings(hostOf(i).DNSSearch) }},
	{"domainname", func(i *docker.Inspection) Value { return String(cfgOf(i).Domainname) }},
	{"entrypoint", func(i *docker.Inspection) Value { return Strings(cfgOf(i).Entrypoint) }},
	{"environment", environmentValue},
	{"extra_hosts", func(i *docker.Inspection) Value { return Strings(hostOf(i).ExtraHosts) }},
	{"hostname", func(i *docker.Inspection) Value { return String(cfgOf(i).Hostname) }},
	{"image", func(i *docker.Inspection) Value { return String(cfgOf(i).Image) }},
	{"ipc", func(i *docker.Inspection) Value { return String(hostOf(i).IpcMode) }},
	{"labels", labelsValue},
	{"links", func(i *docker.Inspection) Value { return Strings(hostOf(i).Links) }},
	{"logging", loggingValue},
	{"mac_address", func(i *docker.Inspection) Value { return String(netOf(i).MacAddress) }},
	{"mem_limit", func(i *docker.Inspection) Value { return Int(hostOf(i).Memory) }},
	{"memswap_limit", func(i *docker.Inspection) Value { return Int(hostOf(i).MemorySwap) }},
	{"privileged", func(i *docker.Inspection) Value { return Bool(hostOf(i).Privileged) }},
	{"read_only", func(i *docker.Inspection) Value { return Bool(hostOf(i).ReadonlyRootfs) }},
	{"restart", restartValue},
	{"security_opt", func(i *docker.Inspection) Value { return Strings(hostOf(i).SecurityOpt) }},
	{"stdin_open", func(i *docker.Inspection) Value { return Bool(cfgOf(i).OpenStdin) }},
	{"tty", func(i *docker.Inspection) Value { return Bool(cfgOf(i).Tty) }},
	{"ulimits", ulimitsValue},
	{"user", func(i *docker.Inspection) Value { return String(cfgOf(i).User) }},
	{"volume_driver", func(i *docker.Inspection) Value { return String(hostOf(i).VolumeDriver) }},
	{"volumes_from", func(i *docker.Inspection) Value { return Strings(hostOf(i).VolumesFrom) }},
	{"working_dir", func(i *docker.Inspection) Value { return String(cfgOf(i).WorkingDir) }},
}

// commandValue keeps the raw token list; nil means the image default.
func commandValue(i *docker.Inspection) Value {
	cmd := cfgOf(i).Cmd
	if cmd == nil {
		return Absent
	}
	return Strings(cmd)
}

func devicesValue(i *docker.Inspection) Value {
	devs := hostOf(i).Devices
	items := make([]Value, 0, len(devs))
	for _, d := range devs {
		s := d.PathOnHost + ":" + d.PathInContainer
		if d.CgroupPermissions != "" && d.CgroupPermissions != "rwm" {
			s += ":" + d.CgroupPermissions
		}
		items = append(items, String(s))
	}
	return List(items...)
}

func environmentValue(i *docker.Inspection) Value {
	env := cfgOf(i).Env
	if env == nil {
		return Absent
	}
	items := make([]Value, 0, len(env))
	for _, e := range env {
		items = append(items, String(EscapeDollar(e)))
	}
	return List(items...)
}

func labelsValue(i *docker.Inspection) Value {
	labels := cfgOf(i).Labels
	if labels == nil {
		return Absent
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	m := NewMapping()
	for _, k := range keys {
		m.Set(k, labelValue(labels[k]))
	}
	return Map(m)
}

func loggingValue(i *docker.Inspection) Value {
	lc := hostOf(i).LogConfig
	m := NewMapping()
	m.Set("driver", String(lc.Type))
	if lc.Config != nil {
		keys := make([]string, 0, len(lc.Config))
		for k := range lc.Config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		opts := NewMapping()
		for _, k := range keys {
			opts.Set(k, String(lc.Config[k]))
		}
		m.Set("options", Map(opts))
	}
	// driver and options are unset independently; drop whichever is empty
	return Prune(Map(m))
}

func restartValue(i *docker.Inspection) Value {
	rp := hostOf(i).RestartPolicy
	if rp.Name == "on-failure" && rp.MaximumRetryCount > 0 {
		return String(rp.Name + ":" + strconv.Itoa(rp.MaximumRetryCount))
	}
	return String(rp.Name)
}

// ulimitsValue passes the engine ulimits through as {Name, Hard, Soft} entries.
func ulimitsValue(i *docker.Inspection) Value {
	ul := hostOf(i).Ulimits
	if ul == nil {
		return Absent
	}
	items := make([]Value, 0, len(ul))
	for _, u := range ul {
		if u == nil {
			continue
		}
		m := NewMapping()
		m.Set("Name", String(u.Name))
		m.Set("Hard", Int(u.Hard))
		m.Set("Soft", Int(u.Soft))
		items = append(items, Map(m))
	}
	return List(items...)
}
