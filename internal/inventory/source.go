package inventory

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source supplies the current cloud instance snapshot. Implementations own
// pagination and retries; the topology core only ever sees the final slice.
type Source interface {
	Instances(ctx context.Context) ([]Instance, error)
}

// FileSource reads an instance snapshot from a YAML file. It serves hybrid
// deployments where an external process exports the inventory, and tests.
type FileSource struct {
	Path string
}

type snapshotFile struct {
	Instances []Instance `yaml:"instances"`
}

// Instances reads the snapshot file. A missing file or empty path is an
// empty inventory, not an error: nodes may simply not be provisioned yet.
func (s *FileSource) Instances(_ context.Context) ([]Instance, error) {
	if s.Path == "" {
		return nil, nil
	}

	// #nosec G304
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory snapshot: %w", err)
	}

	var snap snapshotFile
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory snapshot: %w", err)
	}
	return snap.Instances, nil
}
