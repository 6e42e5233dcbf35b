package config

import (
	"fmt"
	"os"
	"strconv"
)

// ApplyEnvOverrides reads configuration values from environment variables and
// overrides fields in the provided Config. Returns an error if parsing fails.
//
// Environment variables supported:
// - AUTOCOMPOSE_VERSION (string, e.g. "3" or "1")
// - AUTOCOMPOSE_ALL (bool)
// - AUTOCOMPOSE_RUNNING_ONLY (bool)
// - AUTOCOMPOSE_CREATE_VOLUMES (bool)
// - AUTOCOMPOSE_FILTER (regexp)
// - AUTOCOMPOSE_PIN_DIGESTS (bool)
// - AUTOCOMPOSE_DOCKER_HOST (string, e.g. unix:///var/run/docker.sock)
// - AUTOCOMPOSE_LOG_LEVEL (string)
// - AUTOCOMPOSE_LOG_FILE (path)
// - AUTOCOMPOSE_METRICS_FILE (path)
func ApplyEnvOverrides(cfg *Config) error {
	if err := applySelectionEnv(cfg); err != nil {
		return err
	}
	applyOutputEnv(cfg)
	return nil
}

// applySelectionEnv covers which containers are processed and how
func applySelectionEnv(cfg *Config) error {
	if v := os.Getenv("AUTOCOMPOSE_FILTER"); v != "" {
		cfg.Filter = v
	}
	if v := os.Getenv("AUTOCOMPOSE_DOCKER_HOST"); v != "" {
		cfg.DockerHost = v
	}
	if err := setBoolEnv("AUTOCOMPOSE_ALL", func(b bool) { cfg.All = b }); err != nil {
		return err
	}
	if err := setBoolEnv("AUTOCOMPOSE_RUNNING_ONLY", func(b bool) { cfg.RunningOnly = b }); err != nil {
		return err
	}
	if err := setBoolEnv("AUTOCOMPOSE_CREATE_VOLUMES", func(b bool) { cfg.CreateVolumes = b }); err != nil {
		return err
	}
	if err := setBoolEnv("AUTOCOMPOSE_PIN_DIGESTS", func(b bool) { cfg.PinDigests = b }); err != nil {
		return err
	}
	return nil
}

func applyOutputEnv(cfg *Config) {
	if v := os.Getenv("AUTOCOMPOSE_VERSION"); v != "" {
		cfg.ComposeVersion = v
	}
	if v := os.Getenv("AUTOCOMPOSE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("AUTOCOMPOSE_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("AUTOCOMPOSE_METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}
}

// setBoolEnv is a small helper to parse boolean environment variables
func setBoolEnv(env string, setter func(bool)) error {
	if v := os.Getenv(env); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
		setter(b)
	}
	return nil
}
