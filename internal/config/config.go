package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/Red5d/docker-autocompose/internal/logging"
)

// Config holds runtime configuration for autocompose
type Config struct {
	// ComposeVersion selects the document shape. "1" renders a flat service
	// map; anything else renders the versioned three-section document.
	ComposeVersion string `json:"compose_version" yaml:"compose_version"`

	// All adds every container known to the engine to the explicit names
	// and switches the networks section to a full host network dump.
	All bool `json:"all" yaml:"all"`
	// RunningOnly restricts resolution and All to running containers.
	RunningOnly bool `json:"running_only" yaml:"running_only"`

	// CreateVolumes leaves named volumes out of the top-level volumes
	// section so the deployment creates fresh ones.
	CreateVolumes bool `json:"create_volumes" yaml:"create_volumes"`

	// Filter is a regular expression matched anywhere in container names.
	Filter string `json:"filter" yaml:"filter"`

	// PinDigests rewrites the image to repo@sha256 when the engine knows a
	// repo digest for the image's repository.
	PinDigests bool `json:"pin_digests" yaml:"pin_digests"`

	// DockerHost overrides DOCKER_HOST when non-empty.
	DockerHost string `json:"docker_host" yaml:"docker_host"`

	LogLevel string `json:"log_level" yaml:"log_level"`
	LogFile  string `json:"log_file" yaml:"log_file"`

	// MetricsFile, when set, receives the run counters in Prometheus text format.
	MetricsFile string `json:"metrics_file" yaml:"metrics_file"`

	// Names are the containers requested explicitly on the command line.
	Names []string `json:"-" yaml:"-"`
}

// DefaultConfig returns a sane default configuration
func DefaultConfig() *Config {
	return &Config{
		ComposeVersion: "3",
		LogLevel:       "warn",
	}
}

// Validate returns a list of non-fatal configuration warnings.
func (c *Config) Validate() []string {
	var warnings []string
	checks := []struct {
		cond bool
		msg  string
	}{
		{!c.All && len(c.Names) == 0, "no container names given and --all not set; the document will be empty"},
		{!logging.KnownLevel(c.LogLevel), fmt.Sprintf("unknown log level %q; using warn", c.LogLevel)},
		{c.CreateVolumes && c.ComposeVersion == "1", "create-volumes has no effect on version 1 documents"},
	}
	for _, ch := range checks {
		if ch.cond {
			warnings = append(warnings, ch.msg)
		}
	}
	return warnings
}

// FilterRegexp compiles Filter. It returns nil when no filter is configured.
func (c *Config) FilterRegexp() (*regexp.Regexp, error) {
	if c.Filter == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.Filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", c.Filter, err)
	}
	return re, nil
}

// LoadConfigFromFile loads config from a YAML/JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
