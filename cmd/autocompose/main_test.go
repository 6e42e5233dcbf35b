package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Red5d/docker-autocompose/internal/docker"
	"github.com/Red5d/docker-autocompose/internal/logging"
)

type fakeClient struct {
	containers []docker.Container
	inspects   map[string]*docker.Inspection
}

func (f *fakeClient) ListContainers(ctx context.Context, all bool) ([]docker.Container, error) {
	return f.containers, nil
}

func (f *fakeClient) InspectContainer(ctx context.Context, id string) (*docker.Inspection, error) {
	insp, ok := f.inspects[id]
	if !ok {
		return nil, errors.New("no such container")
	}
	return insp, nil
}

func (f *fakeClient) ListNetworks(ctx context.Context) ([]docker.Network, error) {
	return nil, nil
}

func (f *fakeClient) ImageRepoDigests(ctx context.Context, image string) ([]string, error) {
	return nil, nil
}

const webID = "aaaaaaaaaaaa1111111111111111111111111111111111111111111111111111"

func newFake() *fakeClient {
	return &fakeClient{
		containers: []docker.Container{{ID: webID, Names: []string{"/web"}, State: "running"}},
		inspects: map[string]*docker.Inspection{
			webID: {
				ID:         webID,
				Name:       "/web",
				Config:     &docker.ContainerConfig{Image: "nginx:1.25"},
				HostConfig: &docker.HostConfig{RestartPolicy: docker.RestartPolicy{Name: "always"}},
			},
		},
	}
}

func quietLogs(t *testing.T) {
	t.Helper()
	orig := logging.Stderr
	logging.Stderr = io.Discard
	t.Cleanup(func() { logging.Stderr = orig })
}

func execute(t *testing.T, cli docker.Client, args ...string) (string, string, error) {
	t.Helper()
	var out bytes.Buffer
	var host string
	cmd := newRootCmd(&out, func(h string) (docker.Client, error) {
		host = h
		return cli, nil
	})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), host, err
}

func TestRootCmdWritesDocument(t *testing.T) {
	quietLogs(t)
	out, _, err := execute(t, newFake(), "web")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{`version: "3.6"`, "services:", "  web:", `image: "nginx:1.25"`, `restart: "always"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCmdFlatVersion(t *testing.T) {
	quietLogs(t)
	out, _, err := execute(t, newFake(), "-v", "1", "web")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out, "web:\n") {
		t.Fatalf("expected flat document, got:\n%s", out)
	}
}

func TestRootCmdUnresolvedName(t *testing.T) {
	quietLogs(t)
	out, _, err := execute(t, newFake(), "web", "ghost")
	if err == nil {
		t.Fatalf("expected error for unresolved container")
	}
	if out != "" {
		t.Fatalf("no document should be written on failure, got:\n%s", out)
	}
}

func TestRootCmdInvalidVersion(t *testing.T) {
	quietLogs(t)
	if _, _, err := execute(t, newFake(), "--version", "latest", "web"); err == nil {
		t.Fatalf("expected invalid version error")
	}
}

func TestRootCmdHostFlag(t *testing.T) {
	quietLogs(t)
	_, host, err := execute(t, newFake(), "--host", "tcp://10.0.0.5:2375", "web")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if host != "tcp://10.0.0.5:2375" {
		t.Fatalf("expected host passed to client factory, got %q", host)
	}
}

func TestRootCmdMetricsFile(t *testing.T) {
	quietLogs(t)
	path := filepath.Join(t.TempDir(), "autocompose.prom")
	if _, _, err := execute(t, newFake(), "--metrics-file", path, "web"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(b), "autocompose_containers_mapped_total") {
		t.Fatalf("metrics file missing counters:\n%s", b)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "autocompose.yaml")
	content := "compose_version: \"2.4\"\nfilter: from-file\nall: true\nlog_level: info\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("AUTOCOMPOSE_FILTER", "from-env")
	t.Setenv("AUTOCOMPOSE_LOG_LEVEL", "debug")

	cmd := newRootCmd(io.Discard, nil)
	fs := cmd.Flags()
	if err := fs.Parse([]string{"--config", path, "--log-level", "error", "-a=false", "web", "db"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := loadConfig(fs, fs.Args())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.ComposeVersion != "2.4" {
		t.Fatalf("expected version from file, got %q", cfg.ComposeVersion)
	}
	if cfg.Filter != "from-env" {
		t.Fatalf("expected env to override file, got %q", cfg.Filter)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("expected flag to override env, got %q", cfg.LogLevel)
	}
	if cfg.All {
		t.Fatalf("expected explicit flag to override file")
	}
	if len(cfg.Names) != 2 || cfg.Names[0] != "web" || cfg.Names[1] != "db" {
		t.Fatalf("unexpected names %v", cfg.Names)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cmd := newRootCmd(io.Discard, nil)
	fs := cmd.Flags()
	if err := fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := loadConfig(fs, nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
