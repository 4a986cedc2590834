package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads, defaults and validates the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = "/etc/slurm"
	}
	if c.Inventory.Source == "" {
		c.Inventory.Source = "file"
	}
	if c.GenerateInterval == 0 {
		c.GenerateInterval = 60 * time.Second
	}
	for i := range c.TpuNodeGroups {
		if c.TpuNodeGroups[i].VMCount == 0 {
			c.TpuNodeGroups[i].VMCount = 1
		}
	}
}

// Validate checks the configuration for structural errors. Unknown group
// references and impossible counts fail here, at load time, rather than
// during topology synthesis.
func (c *Config) Validate() error {
	if c.ClusterName == "" {
		return fmt.Errorf("cluster_name is required")
	}

	seen := make(map[string]bool)
	for _, g := range c.NodeGroups {
		if err := validateGroup(g.Name, g.StaticCount, g.DynamicMaxCount, seen); err != nil {
			return err
		}
	}
	for _, g := range c.TpuNodeGroups {
		if err := validateGroup(g.Name, g.StaticCount, g.DynamicMaxCount, seen); err != nil {
			return err
		}
		if g.VMCount < 1 {
			return fmt.Errorf("tpu node group %q: vm_count must be >= 1, got %d", g.Name, g.VMCount)
		}
	}

	for _, p := range c.Partitions {
		if p.Name == "" {
			return fmt.Errorf("partition without a name")
		}
		for _, ref := range append(append([]string{}, p.NodeGroups...), p.TpuNodeGroups...) {
			if !seen[ref] {
				return fmt.Errorf("partition %q references unknown node group %q", p.Name, ref)
			}
		}
	}

	switch c.Inventory.Source {
	case "file":
		// Path may be empty: an absent snapshot means no live instances.
	case "hcloud":
	default:
		return fmt.Errorf("inventory source must be \"file\" or \"hcloud\", got %q", c.Inventory.Source)
	}
	return nil
}

func validateGroup(name string, static, dynamic int, seen map[string]bool) error {
	if name == "" {
		return fmt.Errorf("node group without a name")
	}
	if seen[name] {
		return fmt.Errorf("duplicate node group name %q", name)
	}
	seen[name] = true
	if static < 0 || dynamic < 0 {
		return fmt.Errorf("node group %q: counts must be non-negative", name)
	}
	return nil
}
