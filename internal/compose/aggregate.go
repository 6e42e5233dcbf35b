package compose

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Document is the assembled compose output.
type Document struct {
	// ServiceNames holds the services in processing order.
	ServiceNames []string
	Services     map[string]*Mapping
	Networks     map[string]Value
	Volumes      map[string]VolumeResource
}

// Service returns the attributes of the named service, or nil.
func (d *Document) Service(name string) *Mapping {
	if d == nil {
		return nil
	}
	return d.Services[name]
}

// Aggregator merges fragments into one document.
type Aggregator struct {
	order    []string
	services map[string]*Mapping
	networks mapset.Set[string]
	volumes  map[string]VolumeResource
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		services: map[string]*Mapping{},
		networks: mapset.NewSet[string](),
		volumes:  map[string]VolumeResource{},
	}
}

// Add merges f. A service added twice keeps its first position and its last
// attributes.
func (a *Aggregator) Add(f *Fragment) {
	if f == nil {
		return
	}
	if _, ok := a.services[f.Name]; !ok {
		a.order = append(a.order, f.Name)
	}
	svc := f.Service
	if svc == nil {
		svc = NewMapping()
	}
	a.services[f.Name] = svc
	if f.Networks != nil {
		a.networks = a.networks.Union(f.Networks)
	}
	for name, v := range f.Volumes {
		a.volumes[name] = v
	}
}

// NetworkNames returns the union of referenced network names.
func (a *Aggregator) NetworkNames() mapset.Set[string] {
	return a.networks.Clone()
}

// Len returns the number of distinct services.
func (a *Aggregator) Len() int { return len(a.order) }

// Document builds the output document with the given network declarations.
// Empty network and volume sections are left nil.
func (a *Aggregator) Document(networks map[string]Value) *Document {
	doc := &Document{
		ServiceNames: append([]string(nil), a.order...),
		Services:     make(map[string]*Mapping, len(a.services)),
	}
	for k, v := range a.services {
		doc.Services[k] = v
	}
	if len(networks) > 0 {
		doc.Networks = make(map[string]Value, len(networks))
		for k, v := range networks {
			doc.Networks[k] = v
		}
	}
	if len(a.volumes) > 0 {
		doc.Volumes = make(map[string]VolumeResource, len(a.volumes))
		for k, v := range a.volumes {
			doc.Volumes[k] = v
		}
	}
	return doc
}
