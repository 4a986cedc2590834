package inventory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcops/slurmtopo/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		ClusterName: "m22",
		NodeGroups: []config.NodeGroup{
			{Name: "green", StaticCount: 2, DynamicMaxCount: 3},
			{Name: "blue", StaticCount: 7},
		},
		TpuNodeGroups: []config.TpuNodeGroup{
			{Name: "bold", StaticCount: 4, DynamicMaxCount: 5, VMCount: 3},
		},
	}
}

func TestLookupOrdering(t *testing.T) {
	lkp := NewLookup(testConfig(), []Instance{
		{Name: "green-1"},
		{Name: "blue-0"},
	})

	groups := lkp.NodeGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, "blue", groups[0].Name)
	assert.Equal(t, "green", groups[1].Name)

	insts := lkp.Instances()
	assert.Equal(t, "blue-0", insts[0].Name)
	assert.Equal(t, "green-1", insts[1].Name)
}

func TestClassify(t *testing.T) {
	lkp := NewLookup(testConfig(), nil)

	tests := []struct {
		name string
		want Match
		grp  string
	}{
		{"blue-0", Matched, "blue"},
		{"blue-6", Matched, "blue"},
		{"green-4", Matched, "green"},
		{"bold-8", Matched, "bold"},
		{"blue-7", Malformed, ""},   // index past the group ceiling
		{"bold-9", Malformed, ""},   // same, accelerator group
		{"blue-05", Malformed, ""},  // padded alias of blue-5
		{"blue-00", Malformed, ""},
		{"pink-0", Unmatched, ""},   // unknown group
		{"controller", Unmatched, ""},
		{"login", Unmatched, ""},
	}
	for _, tt := range tests {
		cls := lkp.Classify(tt.name)
		assert.Equal(t, tt.want, cls.Match, "name=%q", tt.name)
		if tt.want == Matched {
			assert.Equal(t, tt.grp, cls.Group, "name=%q", tt.name)
		}
		if tt.want == Malformed {
			assert.NotEmpty(t, cls.Reason, "name=%q", tt.name)
		}
	}
}

func TestTPUSliceSize(t *testing.T) {
	lkp := NewLookup(testConfig(), nil)
	assert.Equal(t, 3, lkp.TPUSliceSize("bold"))
	assert.Equal(t, 0, lkp.TPUSliceSize("blue"))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instances.yaml")
	content := `
instances:
  - name: green-0
    region: us-central1
    zone: us-central1-a
    physical_host: /a/b/c/d
  - name: green-1
    region: us-central1
    zone: us-central1-b
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src := &FileSource{Path: path}
	insts, err := src.Instances(context.Background())
	require.NoError(t, err)
	require.Len(t, insts, 2)
	assert.Equal(t, "/a/b/c/d", insts[0].PhysicalHost)
	assert.Equal(t, "us-central1-b", insts[1].Zone)
}

func TestFileSourceMissing(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "absent.yaml")}
	insts, err := src.Instances(context.Background())
	require.NoError(t, err)
	assert.Empty(t, insts)

	src = &FileSource{}
	insts, err = src.Instances(context.Background())
	require.NoError(t, err)
	assert.Empty(t, insts)
}
