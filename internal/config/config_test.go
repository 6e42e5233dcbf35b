package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Red5d/docker-autocompose/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	c := config.DefaultConfig()
	if c.ComposeVersion != "3" {
		t.Fatalf("expected default compose version 3, got %q", c.ComposeVersion)
	}
	if c.All || c.CreateVolumes || c.PinDigests || c.RunningOnly {
		t.Fatalf("expected boolean options off by default: %+v", c)
	}
	if c.Filter != "" {
		t.Fatalf("expected no default filter, got %q", c.Filter)
	}
}

func TestValidateWarnings(t *testing.T) {
	cfg := config.DefaultConfig()
	w := cfg.Validate()
	if len(w) != 1 || !strings.Contains(w[0], "no container names") {
		t.Fatalf("expected a single empty-selection warning, got %v", w)
	}

	cfg2 := config.DefaultConfig()
	cfg2.Names = []string{"web"}
	if w2 := cfg2.Validate(); len(w2) != 0 {
		t.Fatalf("expected no warnings, got %v", w2)
	}

	cfg3 := config.DefaultConfig()
	cfg3.All = true
	cfg3.LogLevel = "loud"
	if w3 := cfg3.Validate(); len(w3) != 1 || !strings.Contains(w3[0], "loud") {
		t.Fatalf("expected log level warning, got %v", w3)
	}

	cfg4 := config.DefaultConfig()
	cfg4.All = true
	cfg4.ComposeVersion = "1"
	cfg4.CreateVolumes = true
	if w4 := cfg4.Validate(); len(w4) != 1 {
		t.Fatalf("expected create-volumes warning, got %v", w4)
	}
}

func TestFilterRegexp(t *testing.T) {
	cfg := config.DefaultConfig()
	re, err := cfg.FilterRegexp()
	if err != nil || re != nil {
		t.Fatalf("expected nil regexp without filter, got %v, %v", re, err)
	}

	cfg.Filter = "^web-[0-9]+"
	re, err = cfg.FilterRegexp()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !re.MatchString("web-1") {
		t.Fatalf("expected web-1 to match")
	}

	cfg.Filter = "(["
	if _, err := cfg.FilterRegexp(); err == nil {
		t.Fatalf("expected error for invalid filter")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autocompose.yaml")
	data := "compose_version: \"1\"\ncreate_volumes: true\nfilter: db\nlog_level: info\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}
	if cfg.ComposeVersion != "1" || !cfg.CreateVolumes || cfg.Filter != "db" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// keys missing from the file keep their defaults
	if cfg.All {
		t.Fatalf("expected All to keep default false")
	}
}

func TestLoadConfigFromFileErrors(t *testing.T) {
	if _, err := config.LoadConfigFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("all: [not a bool"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.LoadConfigFromFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
