package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
cluster_name: "m22"
node_groups:
  - name: "blue"
    static_count: 7
  - name: "green"
    static_count: 2
    dynamic_max_count: 3
    real_topology: true
    enable_placement: true
tpu_node_groups:
  - name: "bold"
    static_count: 4
    dynamic_max_count: 5
    vm_count: 3
partitions:
  - name: "batch"
    node_groups: ["blue", "green"]
    tpu_node_groups: ["bold"]
inventory:
  source: file
  path: instances.yaml
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "m22", cfg.ClusterName)
	assert.Equal(t, "/etc/slurm", cfg.OutputDir)
	assert.Equal(t, 60*time.Second, cfg.GenerateInterval)
	require.Len(t, cfg.NodeGroups, 2)
	assert.Equal(t, 7, cfg.NodeGroups[0].StaticCount)
	assert.True(t, cfg.NodeGroups[1].EnablePlacement)
	require.Len(t, cfg.TpuNodeGroups, 1)
	assert.Equal(t, 3, cfg.TpuNodeGroups[0].VMCount)
	assert.False(t, cfg.Artifact.Enabled())
}

func TestLoadFileDefaultsVMCount(t *testing.T) {
	path := writeConfig(t, `
cluster_name: "m22"
tpu_node_groups:
  - name: "slim"
    dynamic_max_count: 3
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.TpuNodeGroups[0].VMCount)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
cluster_name: "m22"
node_groups:
  - name: "blue"
    static_count: 2
    uses_topology: true
`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing cluster name", Config{}},
		{"duplicate group", Config{
			ClusterName: "c",
			NodeGroups:  []NodeGroup{{Name: "a"}, {Name: "a"}},
		}},
		{"duplicate across kinds", Config{
			ClusterName:   "c",
			NodeGroups:    []NodeGroup{{Name: "a"}},
			TpuNodeGroups: []TpuNodeGroup{{Name: "a", VMCount: 1}},
		}},
		{"negative count", Config{
			ClusterName: "c",
			NodeGroups:  []NodeGroup{{Name: "a", StaticCount: -1}},
		}},
		{"bad vm count", Config{
			ClusterName:   "c",
			TpuNodeGroups: []TpuNodeGroup{{Name: "t", VMCount: 0}},
		}},
		{"unknown partition ref", Config{
			ClusterName: "c",
			NodeGroups:  []NodeGroup{{Name: "a"}},
			Partitions:  []Partition{{Name: "p", NodeGroups: []string{"zz"}}},
		}},
		{"bad inventory source", Config{
			ClusterName: "c",
			Inventory:   InventoryConfig{Source: "gcs"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cfg.Inventory.Source == "" {
				tt.cfg.Inventory.Source = "file"
			}
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestNodeNames(t *testing.T) {
	g := NodeGroup{Name: "green", StaticCount: 2, DynamicMaxCount: 3}
	assert.Equal(t, []string{"green-0", "green-1", "green-2", "green-3", "green-4"}, g.NodeNames())
	assert.Equal(t, []string{"green-0", "green-1"}, g.StaticNodeNames())
	assert.Equal(t, []string{"green-2", "green-3", "green-4"}, g.DynamicNodeNames())

	tg := TpuNodeGroup{Name: "bold", StaticCount: 4, DynamicMaxCount: 5, VMCount: 3}
	assert.Len(t, tg.NodeNames(), 9)
	assert.Equal(t, "bold-4", tg.DynamicNodeNames()[0])
}
