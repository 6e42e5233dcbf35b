package docker

import (
	"sort"

	containertypes "github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
)

// fromInspectResponse copies the fields the mapper reads out of the SDK
// payload. Sections the engine left out stay nil.
func fromInspectResponse(insp containertypes.InspectResponse) *Inspection {
	out := &Inspection{}
	if base := insp.ContainerJSONBase; base != nil {
		out.ID = base.ID
		out.Name = base.Name
		out.HostConfig = fromHostConfig(base.HostConfig)
	}
	out.Config = fromConfig(insp.Config)
	if ns := insp.NetworkSettings; ns != nil {
		out.NetworkSettings = &NetworkSettings{
			MacAddress: ns.MacAddress,
			Networks:   fromEndpoints(ns.Networks),
		}
	}
	for _, m := range insp.Mounts {
		out.Mounts = append(out.Mounts, Mount{
			Type:        string(m.Type),
			Name:        m.Name,
			Source:      m.Source,
			Destination: m.Destination,
			RW:          m.RW,
		})
	}
	return out
}

func fromConfig(c *containertypes.Config) *ContainerConfig {
	if c == nil {
		return nil
	}
	out := &ContainerConfig{
		Hostname:     c.Hostname,
		Domainname:   c.Domainname,
		User:         c.User,
		Image:        c.Image,
		WorkingDir:   c.WorkingDir,
		Env:          c.Env,
		Labels:       c.Labels,
		ExposedPorts: c.ExposedPorts,
		OpenStdin:    c.OpenStdin,
		Tty:          c.Tty,
	}
	if c.Cmd != nil {
		out.Cmd = []string(c.Cmd)
	}
	if c.Entrypoint != nil {
		out.Entrypoint = []string(c.Entrypoint)
	}
	return out
}

func fromHostConfig(hc *containertypes.HostConfig) *HostConfig {
	if hc == nil {
		return nil
	}
	out := &HostConfig{
		CapAdd:         []string(hc.CapAdd),
		CapDrop:        []string(hc.CapDrop),
		CgroupParent:   hc.CgroupParent,
		DNS:            hc.DNS,
		DNSSearch:      hc.DNSSearch,
		ExtraHosts:     hc.ExtraHosts,
		IpcMode:        string(hc.IpcMode),
		Links:          hc.Links,
		LogConfig:      LogConfig{Type: hc.LogConfig.Type, Config: hc.LogConfig.Config},
		PortBindings:   hc.PortBindings,
		Privileged:     hc.Privileged,
		ReadonlyRootfs: hc.ReadonlyRootfs,
		RestartPolicy: RestartPolicy{
			Name:              string(hc.RestartPolicy.Name),
			MaximumRetryCount: hc.RestartPolicy.MaximumRetryCount,
		},
		SecurityOpt:  hc.SecurityOpt,
		Ulimits:      hc.Ulimits,
		VolumeDriver: hc.VolumeDriver,
		VolumesFrom:  hc.VolumesFrom,
		CPUShares:    hc.CPUShares,
		CpusetCpus:   hc.CpusetCpus,
		Memory:       hc.Memory,
		MemorySwap:   hc.MemorySwap,
	}
	for _, d := range hc.Devices {
		out.Devices = append(out.Devices, DeviceMapping{
			PathOnHost:        d.PathOnHost,
			PathInContainer:   d.PathInContainer,
			CgroupPermissions: d.CgroupPermissions,
		})
	}
	return out
}

// fromEndpoints flattens the attachment map. The SDK hands us a Go map, so
// attachments are ordered by network name to keep output stable.
func fromEndpoints(eps map[string]*network.EndpointSettings) []NetworkAttachment {
	if len(eps) == 0 {
		return nil
	}
	names := make([]string, 0, len(eps))
	for name := range eps {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]NetworkAttachment, 0, len(names))
	for _, name := range names {
		att := NetworkAttachment{Name: name}
		if ep := eps[name]; ep != nil {
			att.Aliases = ep.Aliases
		}
		out = append(out, att)
	}
	return out
}

func fromNetwork(n network.Summary) Network {
	out := Network{
		Name:       n.Name,
		Scope:      n.Scope,
		Driver:     n.Driver,
		EnableIPv6: n.EnableIPv6,
		Internal:   n.Internal,
		IPAM:       IPAM{Driver: n.IPAM.Driver},
	}
	for _, c := range n.IPAM.Config {
		out.IPAM.Config = append(out.IPAM.Config, IPAMConfig{
			Subnet:     c.Subnet,
			IPRange:    c.IPRange,
			Gateway:    c.Gateway,
			AuxAddress: c.AuxAddress,
		})
	}
	return out
}
