package hostlist

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"empty", nil, ""},
		{"single", []string{"blue-3"}, "blue-3"},
		{"consecutive", []string{"blue-0", "blue-1", "blue-2", "blue-3", "blue-4", "blue-5", "blue-6"}, "blue-[0-6]"},
		{"gaps", []string{"n-0", "n-1", "n-3", "n-7", "n-8"}, "n-[0-1,3,7-8]"},
		{"unsorted input", []string{"n-8", "n-0", "n-3", "n-1", "n-7"}, "n-[0-1,3,7-8]"},
		{"duplicates collapse", []string{"n-4", "n-4", "n-5"}, "n-[4-5]"},
		{"multiple prefixes", []string{"b-2", "a-1", "a-2"}, "a-[1-2],b-2"},
		{"natural prefix order", []string{"rack10-0", "rack2-0"}, "rack2-0,rack10-0"},
		{"digits inside prefix", []string{"s0_0", "s0_1", "s0_2"}, "s0_[0-2]"},
		{"zero-padded range", []string{"n-007", "n-008"}, "n-[007-008]"},
		{"zero-padded single", []string{"n-007"}, "n-007"},
		{"padding splits groups", []string{"n-1", "n-01", "n-001"}, "n-1,n-01,n-001"},
		{"padded and unpadded ranges", []string{"n-07", "n-08", "n-7", "n-8"}, "n-[7-8],n-[07-08]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compress(tt.names)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompressMalformed(t *testing.T) {
	for _, names := range [][]string{
		{"zone_a"},
		{"blue-0", "controller"},
		{"42"},
	} {
		_, err := Compress(names)
		assert.ErrorIs(t, err, ErrMalformedName, "names=%v", names)
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"", nil},
		{"blue-3", []string{"blue-3"}},
		{"bold", []string{"bold"}},
		{"blue-[0-2]", []string{"blue-0", "blue-1", "blue-2"}},
		{"a-[0-1,4],b-7", []string{"a-0", "a-1", "a-4", "b-7"}},
		{"n-[0-1,3,7-8]", []string{"n-0", "n-1", "n-3", "n-7", "n-8"}},
		{"n-[007-010]", []string{"n-007", "n-008", "n-009", "n-010"}},
		{"n-[07,3]", []string{"n-07", "n-3"}},
	}
	for _, tt := range tests {
		got, err := Expand(tt.expr)
		require.NoError(t, err, "expr=%q", tt.expr)
		assert.Equal(t, tt.want, got, "expr=%q", tt.expr)
	}
}

func TestExpandMalformed(t *testing.T) {
	for _, expr := range []string{
		"a-[0-2",
		"a-0]",
		"a-[x-2]",
		"a-[0-y]",
		"a-[2-0]",
		"a-[[0]]",
		"a-[0],b-]",
	} {
		_, err := Expand(expr)
		assert.ErrorIs(t, err, ErrMalformedExpression, "expr=%q", expr)
	}
}

func TestRoundTrip(t *testing.T) {
	sets := [][]string{
		{"blue-0", "blue-1", "blue-2", "blue-3", "blue-4", "blue-5", "blue-6"},
		{"a-1", "a-9", "a-10", "a-11", "b-0"},
		{"m22-bold-0", "m22-bold-3", "m22-bold-4"},
		{"x-5"},
		{"n-007", "n-008"},
		{"n-1", "n-01"},
		{"n-07", "n-7", "n-8", "n-008"},
	}
	for _, set := range sets {
		expr, err := Compress(set)
		require.NoError(t, err)
		got, err := Expand(expr)
		require.NoError(t, err)

		want := append([]string(nil), set...)
		sort.Strings(want)
		sort.Strings(got)
		assert.Equal(t, want, got, "expr=%q", expr)
	}
}

func TestNaturalSort(t *testing.T) {
	names := []string{"n-10", "n-9", "n-1", "m-2", "n-01"}
	Sort(names)
	assert.Equal(t, []string{"m-2", "n-01", "n-1", "n-9", "n-10"}, names)

	assert.True(t, Less("node-2", "node-10"))
	assert.False(t, Less("node-10", "node-2"))
	assert.True(t, Less("alpha", "beta"))
}
