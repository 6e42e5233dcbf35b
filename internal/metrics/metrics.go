// Package metrics provides counters and Prometheus collectors describing a
// single autocompose run, with optional export in textfile-collector format.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 1. Internal State (Source of Truth)
var (
	containersMapped   int64
	resolutionFailures int64
	engineRequests     int64
	networksEmitted    int64
	volumesEmitted     int64
	lastRun            int64
)

const counterInc int64 = 1

// Registry holds the autocompose collectors only, so textfile exports do
// not pick up Go runtime metrics.
var Registry = prometheus.NewRegistry()

// 2. Prometheus Collectors
var (
	promContainers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "autocompose_containers_mapped_total",
			Help: "Total containers mapped into services",
		},
	)
	promResolutionFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "autocompose_resolution_failures_total",
			Help: "Total container names that could not be resolved",
		},
	)
	promEngineRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autocompose_engine_requests_total",
			Help: "Total engine API requests by operation",
		},
		[]string{"op"},
	)
	promNetworks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "autocompose_networks_emitted_total",
			Help: "Total network resources written to the document",
		},
	)
	promVolumes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "autocompose_volumes_emitted_total",
			Help: "Total volume resources written to the document",
		},
	)
	promLastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "autocompose_last_run_timestamp_seconds",
			Help: "Unix timestamp of last run",
		},
	)
)

func init() {
	Registry.MustRegister(
		promContainers,
		promResolutionFailures,
		promEngineRequests,
		promNetworks,
		promVolumes,
		promLastRun,
	)
}

// 3. Public API (Updates both Atomic and Prometheus)

// IncContainerMapped increments the number of containers turned into services.
func IncContainerMapped() {
	atomic.AddInt64(&containersMapped, counterInc)
	promContainers.Inc()
}

// IncResolutionFailure increments the counter for names that matched no container.
func IncResolutionFailure() {
	atomic.AddInt64(&resolutionFailures, counterInc)
	promResolutionFailures.Inc()
}

// IncEngineRequest counts one engine API call for the given operation.
func IncEngineRequest(op string) {
	atomic.AddInt64(&engineRequests, counterInc)
	promEngineRequests.WithLabelValues(op).Inc()
}

// AddNetworksEmitted adds n to the emitted network resources counter.
func AddNetworksEmitted(n int) {
	atomic.AddInt64(&networksEmitted, int64(n))
	promNetworks.Add(float64(n))
}

// AddVolumesEmitted adds n to the emitted volume resources counter.
func AddVolumesEmitted(n int) {
	atomic.AddInt64(&volumesEmitted, int64(n))
	promVolumes.Add(float64(n))
}

// SetLastRun stores the provided time as the last run timestamp and
// updates the corresponding Prometheus gauge.
func SetLastRun(t time.Time) {
	atomic.StoreInt64(&lastRun, t.Unix())
	promLastRun.Set(float64(t.Unix()))
}

// 4. Snapshot

// StatsSnapshot is a point-in-time copy of the run counters.
type StatsSnapshot struct {
	ContainersMapped   int64
	ResolutionFailures int64
	EngineRequests     int64
	NetworksEmitted    int64
	VolumesEmitted     int64
	LastRun            int64
}

// GetSnapshot returns a StatsSnapshot with the current values of all
// internal counters and timestamps.
func GetSnapshot() StatsSnapshot {
	return StatsSnapshot{
		ContainersMapped:   atomic.LoadInt64(&containersMapped),
		ResolutionFailures: atomic.LoadInt64(&resolutionFailures),
		EngineRequests:     atomic.LoadInt64(&engineRequests),
		NetworksEmitted:    atomic.LoadInt64(&networksEmitted),
		VolumesEmitted:     atomic.LoadInt64(&volumesEmitted),
		LastRun:            atomic.LoadInt64(&lastRun),
	}
}

// 5. Export

// WriteTextfile writes the registry to path in the Prometheus text format
// read by node_exporter's textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
