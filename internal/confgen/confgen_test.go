package confgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcops/slurmtopo/internal/config"
)

func TestRender(t *testing.T) {
	cfg := &config.Config{
		ClusterName: "m22",
		NodeGroups: []config.NodeGroup{
			{Name: "blue", StaticCount: 7},
			{Name: "green", StaticCount: 2, DynamicMaxCount: 3},
		},
		TpuNodeGroups: []config.TpuNodeGroup{
			{Name: "bold", DynamicMaxCount: 4, VMCount: 2},
		},
		Partitions: []config.Partition{
			{Name: "batch", NodeGroups: []string{"blue", "green"}, TpuNodeGroups: []string{"bold"}},
		},
	}

	got, err := Render(cfg)
	require.NoError(t, err)

	want := `# Warning:
# This file is managed by a script. Manual modifications will be overwritten.

NodeName=blue-[0-6] State=CLOUD
NodeSet=blue Nodes=blue-[0-6]

NodeName=green-[0-1] State=CLOUD
NodeName=green-[2-4] State=CLOUD
NodeSet=green Nodes=green-[0-1],green-[2-4]

NodeName=bold-[0-3] State=CLOUD
NodeSet=bold Nodes=bold-[0-3]

PartitionName=batch Nodes=blue,green,bold State=UP
`
	assert.Equal(t, want, got)
}

func TestRenderEmpty(t *testing.T) {
	got, err := Render(&config.Config{ClusterName: "m22"})
	require.NoError(t, err)
	assert.Equal(t, `# Warning:
# This file is managed by a script. Manual modifications will be overwritten.
`, got)
}

func TestRenderSkipsEmptyGroups(t *testing.T) {
	cfg := &config.Config{
		ClusterName: "m22",
		NodeGroups:  []config.NodeGroup{{Name: "void"}},
	}
	got, err := Render(cfg)
	require.NoError(t, err)
	assert.NotContains(t, got, "void")
}
