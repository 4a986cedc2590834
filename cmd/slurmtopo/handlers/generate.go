// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/hpcops/slurmtopo/internal/config"
	"github.com/hpcops/slurmtopo/internal/generator"
	"github.com/hpcops/slurmtopo/internal/inventory"
	"github.com/hpcops/slurmtopo/internal/publish"
)

const defaultConfigFile = "slurmtopo.yaml"

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file (for testing injection).
	loadConfigFile = config.LoadFile

	// newHCloudSource creates an inventory source backed by Hetzner Cloud.
	newHCloudSource = func(token, labelSelector string) inventory.Source {
		return inventory.NewHCloudSource(token, labelSelector)
	}

	// newS3Publisher creates an artifact publisher.
	newS3Publisher = func(ctx context.Context, cfg config.ArtifactConfig) (generator.Publisher, error) {
		return publish.NewS3Publisher(ctx, cfg)
	}
)

// Generate performs a single topology generation run.
//
// It loads the configuration, wires the inventory source and optional
// artifact publisher, and invokes the generator once. The canonical flag
// overrides the canonical_names configuration key when set.
func Generate(ctx context.Context, configPath string, canonical bool) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if canonical {
		cfg.CanonicalNames = true
	}

	gen, err := buildGenerator(ctx, log, cfg, nil)
	if err != nil {
		return err
	}
	return gen.Run(ctx)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

func buildGenerator(ctx context.Context, log logr.Logger, cfg *config.Config, metrics *generator.Metrics) (*generator.Generator, error) {
	source, err := buildSource(cfg)
	if err != nil {
		return nil, err
	}

	var publisher generator.Publisher
	if cfg.Artifact.Enabled() {
		publisher, err = newS3Publisher(ctx, cfg.Artifact)
		if err != nil {
			return nil, fmt.Errorf("failed to create artifact publisher: %w", err)
		}
	}

	return generator.New(log, cfg, source, publisher, metrics), nil
}

func buildSource(cfg *config.Config) (inventory.Source, error) {
	switch cfg.Inventory.Source {
	case "file":
		return &inventory.FileSource{Path: cfg.Inventory.Path}, nil
	case "hcloud":
		token := os.Getenv("HCLOUD_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("HCLOUD_TOKEN environment variable is required for the hcloud inventory source")
		}
		return newHCloudSource(token, cfg.Inventory.LabelSelector), nil
	default:
		return nil, fmt.Errorf("unknown inventory source %q", cfg.Inventory.Source)
	}
}
