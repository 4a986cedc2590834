package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForestChildWalk(t *testing.T) {
	f := NewForest()
	root, err := f.AddRoot("root")
	require.NoError(t, err)

	a, err := f.Child(root, "a")
	require.NoError(t, err)

	// Walking the same path reuses the existing switch.
	again, err := f.Child(root, "a")
	require.NoError(t, err)
	assert.Equal(t, a, again)

	b, err := f.Child(a, "b")
	require.NoError(t, err)
	f.AttachNode(b, "n-0")

	assert.Equal(t, "b", f.Name(b))
	assert.Equal(t, []string{"n-0"}, f.Nodes(b))
	assert.Equal(t, []SwitchID{root}, f.Roots())
}

func TestForestDuplicateName(t *testing.T) {
	f := NewForest()
	r1, err := f.AddRoot("r1")
	require.NoError(t, err)
	r2, err := f.AddRoot("r2")
	require.NoError(t, err)

	_, err = f.AddRoot("r1")
	assert.ErrorIs(t, err, ErrDuplicateSwitch)

	_, err = f.Child(r1, "shared")
	require.NoError(t, err)
	_, err = f.Child(r2, "shared")
	assert.ErrorIs(t, err, ErrDuplicateSwitch)
}

func TestForestEmpty(t *testing.T) {
	f := NewForest()
	root, _ := f.AddRoot("root")
	a, _ := f.Child(root, "a")
	b, _ := f.Child(a, "b")

	// A chain of switches with no nodes anywhere is empty all the way up.
	assert.True(t, f.Empty(root))
	assert.True(t, f.Empty(a))

	f.AttachNode(b, "n-3")
	assert.False(t, f.Empty(root))
	assert.False(t, f.Empty(a))
	assert.False(t, f.Empty(b))
}

func TestForestChildrenSorted(t *testing.T) {
	f := NewForest()
	root, _ := f.AddRoot("root")
	for _, name := range []string{"zz", "aa", "mm"} {
		_, err := f.Child(root, name)
		require.NoError(t, err)
	}

	var names []string
	for _, id := range f.Children(root) {
		names = append(names, f.Name(id))
	}
	assert.Equal(t, []string{"aa", "mm", "zz"}, names)
}

func TestAttachNodeDedups(t *testing.T) {
	f := NewForest()
	root, _ := f.AddRoot("root")
	f.AttachNode(root, "n-1")
	f.AttachNode(root, "n-1")
	assert.Equal(t, []string{"n-1"}, f.Nodes(root))
}
