package docker

import (
	"strings"

	"github.com/docker/go-connections/nat"
	units "github.com/docker/go-units"
)

// Container is a minimal container representation returned by listings.
type Container struct {
	ID    string   `json:"Id"`
	Names []string `json:"Names"`
	State string   `json:"State"`
}

// ShortID returns the 12 character identifier the engine prints by default.
func (c Container) ShortID() string {
	return shortID(c.ID)
}

// PrimaryName returns the first name without the leading slash.
func (c Container) PrimaryName() string {
	if len(c.Names) == 0 {
		return ""
	}
	return strings.TrimPrefix(c.Names[0], "/")
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// Inspection is the subset of the engine's container inspection payload the
// compose mapper reads. Every section is optional; a nil section reads as empty.
type Inspection struct {
	ID              string
	Name            string
	Config          *ContainerConfig
	HostConfig      *HostConfig
	NetworkSettings *NetworkSettings
	Mounts          []Mount
}

// ServiceName is the container name without the leading slash.
func (i *Inspection) ServiceName() string {
	if i == nil {
		return ""
	}
	return strings.TrimPrefix(i.Name, "/")
}

// ShortID returns the 12 character identifier of the inspected container.
func (i *Inspection) ShortID() string {
	if i == nil {
		return ""
	}
	return shortID(i.ID)
}

// ContainerConfig mirrors the inspection Config section.
type ContainerConfig struct {
	Hostname     string
	Domainname   string
	User         string
	Image        string
	WorkingDir   string
	Env          []string
	Cmd          []string // nil when the engine reports no command
	Entrypoint   []string
	Labels       map[string]string
	ExposedPorts nat.PortSet
	OpenStdin    bool
	Tty          bool
}

// DeviceMapping is a host device exposed inside the container.
type DeviceMapping struct {
	PathOnHost        string
	PathInContainer   string
	CgroupPermissions string
}

// LogConfig is the logging driver and its options.
type LogConfig struct {
	Type   string
	Config map[string]string
}

// RestartPolicy is the engine restart policy.
type RestartPolicy struct {
	Name              string
	MaximumRetryCount int
}

// HostConfig mirrors the inspection HostConfig section.
type HostConfig struct {
	CapAdd         []string
	CapDrop        []string
	CgroupParent   string
	Devices        []DeviceMapping
	DNS            []string
	DNSSearch      []string
	ExtraHosts     []string
	IpcMode        string
	Links          []string
	LogConfig      LogConfig
	PortBindings   nat.PortMap
	Privileged     bool
	ReadonlyRootfs bool
	RestartPolicy  RestartPolicy
	SecurityOpt    []string
	Ulimits        []*units.Ulimit
	VolumeDriver   string
	VolumesFrom    []string
	CPUShares      int64
	CpusetCpus     string
	Memory         int64
	MemorySwap     int64
}

// NetworkAttachment is one entry of the per-network attachment map.
type NetworkAttachment struct {
	Name    string
	Aliases []string
}

// NetworkSettings mirrors the live network state of the container.
type NetworkSettings struct {
	MacAddress string
	// Networks keeps the attachment order reported by the engine client.
	Networks []NetworkAttachment
}

// Mount types the mapper distinguishes.
const (
	MountTypeVolume = "volume"
	MountTypeBind   = "bind"
)

// Mount is an engine mount point.
type Mount struct {
	Type        string
	Name        string
	Source      string
	Destination string
	RW          bool
}

// IPAMConfig is one address pool of a network.
type IPAMConfig struct {
	Subnet     string
	IPRange    string
	Gateway    string
	AuxAddress map[string]string
}

// IPAM is the address management section of a network.
type IPAM struct {
	Driver string
	Config []IPAMConfig
}

// Network is an engine network as returned by the network listing.
type Network struct {
	Name       string
	Scope      string
	Driver     string
	EnableIPv6 bool
	Internal   bool
	IPAM       IPAM
}
