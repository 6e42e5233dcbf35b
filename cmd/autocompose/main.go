package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Red5d/docker-autocompose/internal/compose"
	"github.com/Red5d/docker-autocompose/internal/config"
	"github.com/Red5d/docker-autocompose/internal/docker"
	"github.com/Red5d/docker-autocompose/internal/generate"
	"github.com/Red5d/docker-autocompose/internal/logging"
	"github.com/Red5d/docker-autocompose/internal/metrics"
)

// clientFactory creates the engine client for a host ("" means environment).
type clientFactory func(host string) (docker.Client, error)

func main() {
	cmd := newRootCmd(os.Stdout, docker.NewClientForHost)
	if err := cmd.Execute(); err != nil {
		logging.Get().Error().Err(err).Msg("autocompose failed")
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer, newClient clientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autocompose [flags] [NAME...]",
		Short: "Generate a compose document from running containers",
		Long: "Inspects the named containers (or every container with --all) and writes an\n" +
			"equivalent compose document to stdout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), args)
			if err != nil {
				return err
			}
			cleanup, err := logging.Init(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			defer cleanup()
			return run(cmd.Context(), cfg, stdout, newClient)
		},
	}
	registerFlags(cmd.Flags())
	return cmd
}

func registerFlags(fs *pflag.FlagSet) {
	fs.StringP("version", "v", "3", "compose file version (1 gives the flat document)")
	fs.BoolP("all", "a", false, "include every container and dump every host network")
	fs.BoolP("createvolumes", "c", false, "let the deployment create named volumes instead of declaring them external")
	fs.StringP("filter", "f", "", "regular expression matched anywhere in container names")
	fs.String("config", "", "path to a YAML config file")
	fs.Bool("running-only", false, "only consider running containers")
	fs.Bool("pin-digests", false, "rewrite images to repo@sha256 digests known to the engine")
	fs.String("host", "", "engine endpoint (defaults to DOCKER_HOST)")
	fs.String("log-level", "warn", "log level: debug, info, warn, error")
	fs.String("log-file", "", "also append logs to this file")
	fs.String("metrics-file", "", "write run counters to this file in Prometheus text format")
}

// loadConfig applies defaults, then the config file, then AUTOCOMPOSE_* env
// vars, then the flags the user actually set.
func loadConfig(fs *pflag.FlagSet, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path, _ := fs.GetString("config"); path != "" {
		c, err := config.LoadConfigFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed loading config: %w", err)
		}
		cfg = c
	}
	if err := config.ApplyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}
	if err := applyFlags(fs, cfg); err != nil {
		return nil, err
	}
	cfg.Names = append(cfg.Names, args...)
	return cfg, nil
}

func applyFlags(fs *pflag.FlagSet, cfg *config.Config) error {
	strs := map[string]*string{
		"version":      &cfg.ComposeVersion,
		"filter":       &cfg.Filter,
		"host":         &cfg.DockerHost,
		"log-level":    &cfg.LogLevel,
		"log-file":     &cfg.LogFile,
		"metrics-file": &cfg.MetricsFile,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	bools := map[string]*bool{
		"all":           &cfg.All,
		"createvolumes": &cfg.CreateVolumes,
		"running-only":  &cfg.RunningOnly,
		"pin-digests":   &cfg.PinDigests,
	}
	for name, dst := range bools {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetBool(name)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, stdout io.Writer, newClient clientFactory) error {
	if ctx == nil {
		ctx = context.Background()
	}
	version, err := compose.ParseVersion(cfg.ComposeVersion)
	if err != nil {
		return err
	}
	// fail on a bad filter before touching the engine
	if _, err := cfg.FilterRegexp(); err != nil {
		return err
	}

	cli, err := newClient(cfg.DockerHost)
	if err != nil {
		return fmt.Errorf("failed to create docker client: %w", err)
	}
	doc, err := generate.New(cfg, cli).Run(ctx)
	if err != nil {
		return err
	}
	if err := compose.Render(stdout, doc, version); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logging.Get().Warn().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics file")
		}
	}
	return nil
}
