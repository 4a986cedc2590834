// Package generator orchestrates topology generation runs: snapshot the
// inventory, build the switch forest, render the configuration artifacts,
// install them atomically and optionally publish them to object storage.
//
// A run is a pure function of the configuration and the inventory snapshot;
// re-running with unchanged inputs rewrites byte-identical artifacts.
package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/hpcops/slurmtopo/internal/confgen"
	"github.com/hpcops/slurmtopo/internal/config"
	"github.com/hpcops/slurmtopo/internal/inventory"
	"github.com/hpcops/slurmtopo/internal/topology"
)

const (
	topologyConfName = "cloud_topology.conf"
	topologyLinkName = "topology.conf"
	cloudConfName    = "cloud.conf"
)

// Publisher uploads a rendered artifact to external storage.
type Publisher interface {
	Publish(ctx context.Context, name string, data []byte) error
}

// Generator runs topology generation against a fixed configuration.
type Generator struct {
	log       logr.Logger
	cfg       *config.Config
	source    inventory.Source
	publisher Publisher // optional
	metrics   *Metrics  // optional
}

// New builds a Generator. publisher and metrics may be nil.
func New(log logr.Logger, cfg *config.Config, source inventory.Source, publisher Publisher, metrics *Metrics) *Generator {
	return &Generator{
		log:       log,
		cfg:       cfg,
		source:    source,
		publisher: publisher,
		metrics:   metrics,
	}
}

// Run performs one generation run.
func (g *Generator) Run(ctx context.Context) error {
	start := time.Now()
	err := g.run(ctx)

	if g.metrics != nil {
		g.metrics.Runs.Inc()
		g.metrics.Duration.Observe(time.Since(start).Seconds())
		if err != nil {
			g.metrics.Failures.Inc()
		}
	}
	if err != nil {
		g.log.Error(err, "topology generation failed")
	}
	return err
}

func (g *Generator) run(ctx context.Context) error {
	instances, err := g.source.Instances(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch instance inventory: %w", err)
	}

	lkp := inventory.NewLookup(g.cfg, instances)
	forest, err := topology.Build(lkp)
	if err != nil {
		return fmt.Errorf("failed to build topology: %w", err)
	}
	if g.cfg.CanonicalNames {
		forest.Canonicalize()
	}

	var buf bytes.Buffer
	if err := forest.Render(&buf); err != nil {
		return fmt.Errorf("failed to render topology: %w", err)
	}
	topoConf := buf.Bytes()

	cloudConf, err := confgen.Render(g.cfg)
	if err != nil {
		return fmt.Errorf("failed to render cloud.conf: %w", err)
	}

	if err := installArtifact(g.cfg.OutputDir, topologyConfName, topoConf); err != nil {
		return err
	}
	if err := ensureSymlink(g.cfg.OutputDir, topologyConfName, topologyLinkName); err != nil {
		return err
	}
	if err := installArtifact(g.cfg.OutputDir, cloudConfName, []byte(cloudConf)); err != nil {
		return err
	}

	if g.publisher != nil {
		artifacts := []struct {
			name string
			data []byte
		}{
			{topologyConfName, topoConf},
			{cloudConfName, []byte(cloudConf)},
		}
		for _, a := range artifacts {
			if err := g.publisher.Publish(ctx, a.name, a.data); err != nil {
				return fmt.Errorf("failed to publish %s: %w", a.name, err)
			}
		}
	}

	switches := strings.Count(string(topoConf), "SwitchName=")
	if g.metrics != nil {
		g.metrics.Switches.Set(float64(switches))
	}
	g.log.Info("topology generated",
		"instances", len(instances),
		"switches", switches,
		"outputDir", g.cfg.OutputDir,
	)
	return nil
}

// installArtifact writes data to dir/name via a temp file and rename, so a
// concurrently reading scheduler never observes a partial artifact.
func installArtifact(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write artifact %s: %w", name, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod artifact %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close artifact %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("failed to install artifact %s: %w", name, err)
	}
	return nil
}

// ensureSymlink points dir/link at target unless something already exists
// there; an operator-managed file takes precedence.
func ensureSymlink(dir, target, link string) error {
	path := filepath.Join(dir, link)
	if _, err := os.Lstat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.Symlink(target, path); err != nil {
		return fmt.Errorf("failed to link %s: %w", path, err)
	}
	return nil
}
