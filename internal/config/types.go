// Package config defines the typed cluster configuration and its validation.
package config

import (
	"fmt"
	"time"
)

// Config holds the cluster topology configuration.
type Config struct {
	ClusterName string `mapstructure:"cluster_name" yaml:"cluster_name"`

	// OutputDir is where rendered configuration artifacts are installed.
	// Default: "/etc/slurm"
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// CanonicalNames relabels the synthesized switch tree with compact,
	// structurally stable names (s0, s0_0, ...) before rendering.
	// Default: false
	CanonicalNames bool `mapstructure:"canonical_names" yaml:"canonical_names"`

	// NodeGroups are the conventional compute node groups.
	NodeGroups []NodeGroup `mapstructure:"node_groups" yaml:"node_groups"`

	// TpuNodeGroups are the accelerator node groups.
	TpuNodeGroups []TpuNodeGroup `mapstructure:"tpu_node_groups" yaml:"tpu_node_groups"`

	// Partitions map scheduler partitions onto node groups.
	Partitions []Partition `mapstructure:"partitions" yaml:"partitions"`

	// Inventory selects the cloud instance source.
	Inventory InventoryConfig `mapstructure:"inventory" yaml:"inventory"`

	// Artifact configures optional publication of rendered artifacts to
	// S3-compatible object storage.
	Artifact ArtifactConfig `mapstructure:"artifact" yaml:"artifact"`

	// GenerateInterval is the regeneration period in serve mode.
	// Default: 60s
	GenerateInterval time.Duration `mapstructure:"generate_interval" yaml:"generate_interval"`
}

// NodeGroup is a named, homogeneously configured collection of nodes with
// static and elastic membership counts.
type NodeGroup struct {
	Name string `mapstructure:"name" yaml:"name"`

	// StaticCount nodes exist for the lifetime of the cluster; their indices
	// start at 0.
	StaticCount int `mapstructure:"static_count" yaml:"static_count"`

	// DynamicMaxCount is the elastic ceiling; dynamic indices continue after
	// the static block.
	DynamicMaxCount int `mapstructure:"dynamic_max_count" yaml:"dynamic_max_count"`

	// RealTopology derives switch placement from live cloud instance
	// metadata instead of a single flat group switch. Groups with no static
	// nodes always use real topology.
	RealTopology bool `mapstructure:"real_topology" yaml:"real_topology"`

	// EnablePlacement marks the group switch with the placement-affinity
	// LinkSpeed signal consumed by the resume machinery.
	EnablePlacement bool `mapstructure:"enable_placement" yaml:"enable_placement"`
}

// TpuNodeGroup is a node group hosting accelerator slices. Nodes are grouped
// into sub-switches in chunks of exactly VMCount.
type TpuNodeGroup struct {
	Name            string `mapstructure:"name" yaml:"name"`
	StaticCount     int    `mapstructure:"static_count" yaml:"static_count"`
	DynamicMaxCount int    `mapstructure:"dynamic_max_count" yaml:"dynamic_max_count"`

	// VMCount is the number of VMs jointly forming one accelerator slice.
	// Default: 1
	VMCount int `mapstructure:"vm_count" yaml:"vm_count"`
}

// Partition maps a scheduler partition onto node groups.
type Partition struct {
	Name          string   `mapstructure:"name" yaml:"name"`
	NodeGroups    []string `mapstructure:"node_groups" yaml:"node_groups"`
	TpuNodeGroups []string `mapstructure:"tpu_node_groups" yaml:"tpu_node_groups"`
}

// InventoryConfig selects where live instance records come from.
type InventoryConfig struct {
	// Source is "file" or "hcloud".
	// Default: "file"
	Source string `mapstructure:"source" yaml:"source"`

	// Path is the instance snapshot file for the file source.
	Path string `mapstructure:"path" yaml:"path"`

	// LabelSelector filters servers for the hcloud source.
	LabelSelector string `mapstructure:"label_selector" yaml:"label_selector"`
}

// ArtifactConfig configures S3-compatible artifact publication.
type ArtifactConfig struct {
	S3Bucket    string `mapstructure:"s3_bucket" yaml:"s3_bucket"`
	S3Region    string `mapstructure:"s3_region" yaml:"s3_region"`
	S3Endpoint  string `mapstructure:"s3_endpoint" yaml:"s3_endpoint"`
	S3Prefix    string `mapstructure:"s3_prefix" yaml:"s3_prefix"`
	S3PathStyle bool   `mapstructure:"s3_path_style" yaml:"s3_path_style"`
}

// Enabled reports whether artifact publication is configured.
func (a ArtifactConfig) Enabled() bool {
	return a.S3Bucket != ""
}

// TotalCount returns the full membership ceiling of the group.
func (g NodeGroup) TotalCount() int { return g.StaticCount + g.DynamicMaxCount }

// TotalCount returns the full membership ceiling of the group.
func (g TpuNodeGroup) TotalCount() int { return g.StaticCount + g.DynamicMaxCount }

// NodeName returns the name of the group node with the given index.
// Pattern: ${group}-${index}
func (g NodeGroup) NodeName(index int) string {
	return fmt.Sprintf("%s-%d", g.Name, index)
}

// NodeNames returns every node name of the group, static block first, then
// the dynamic block with indices continuing after the static ones.
func (g NodeGroup) NodeNames() []string {
	return nodeNames(g.Name, g.StaticCount, g.DynamicMaxCount)
}

// StaticNodeNames returns the static block of node names.
func (g NodeGroup) StaticNodeNames() []string {
	return nodeNames(g.Name, g.StaticCount, 0)
}

// DynamicNodeNames returns the dynamic block of node names.
func (g NodeGroup) DynamicNodeNames() []string {
	return nodeNames(g.Name, g.StaticCount, g.DynamicMaxCount)[g.StaticCount:]
}

// NodeNames returns every node name of the group, static block first.
func (g TpuNodeGroup) NodeNames() []string {
	return nodeNames(g.Name, g.StaticCount, g.DynamicMaxCount)
}

// StaticNodeNames returns the static block of node names.
func (g TpuNodeGroup) StaticNodeNames() []string {
	return nodeNames(g.Name, g.StaticCount, 0)
}

// DynamicNodeNames returns the dynamic block of node names.
func (g TpuNodeGroup) DynamicNodeNames() []string {
	return nodeNames(g.Name, g.StaticCount, g.DynamicMaxCount)[g.StaticCount:]
}

func nodeNames(group string, static, dynamic int) []string {
	names := make([]string, 0, static+dynamic)
	for i := 0; i < static+dynamic; i++ {
		names = append(names, fmt.Sprintf("%s-%d", group, i))
	}
	return names
}
