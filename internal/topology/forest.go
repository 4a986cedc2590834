// Package topology synthesizes the hierarchical switch description the
// scheduler's placement-aware dispatcher consumes. It turns node group
// definitions plus live instance placement metadata into a forest of named
// switches and renders it as a line-oriented configuration artifact.
package topology

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateSwitch indicates an attempt to create a switch whose name is
// already taken elsewhere in the forest. Switch names are globally unique;
// a collision is an invariant violation and fails the whole generation run.
var ErrDuplicateSwitch = errors.New("duplicate switch name")

// SwitchID addresses a switch record within its Forest.
type SwitchID int

const noParent SwitchID = -1

type switchRecord struct {
	name     string
	parent   SwitchID
	children []SwitchID
	nodes    []string
	nodeSet  map[string]bool

	// linkSpeed is an out-of-band marker, not a real link speed; 0 is unset.
	linkSpeed int
}

// Forest is an arena of switch records addressed by stable integer handles.
// Switches are only ever inserted downward from a root, so the structure is
// acyclic by construction. A Forest is built fresh per generation run and
// must not be mutated after rendering.
type Forest struct {
	records []switchRecord
	byName  map[string]SwitchID
	roots   []SwitchID
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{byName: make(map[string]SwitchID)}
}

func (f *Forest) alloc(name string, parent SwitchID) (SwitchID, error) {
	if prev, exists := f.byName[name]; exists {
		return 0, fmt.Errorf("%w: %q already attached under %q", ErrDuplicateSwitch, name, f.parentName(prev))
	}
	id := SwitchID(len(f.records))
	f.records = append(f.records, switchRecord{
		name:    name,
		parent:  parent,
		nodeSet: make(map[string]bool),
	})
	f.byName[name] = id
	return id, nil
}

func (f *Forest) parentName(id SwitchID) string {
	if p := f.records[id].parent; p != noParent {
		return f.records[p].name
	}
	return "(root)"
}

// AddRoot creates a new independent root switch.
func (f *Forest) AddRoot(name string) (SwitchID, error) {
	id, err := f.alloc(name, noParent)
	if err != nil {
		return 0, err
	}
	f.roots = append(f.roots, id)
	return id, nil
}

// Child returns the child of parent with the given name, creating it if it
// does not exist yet. Reusing an existing child of the same parent is the
// normal path-walking case; a name held by a switch elsewhere in the forest
// is ErrDuplicateSwitch.
func (f *Forest) Child(parent SwitchID, name string) (SwitchID, error) {
	if id, ok := f.byName[name]; ok {
		if f.records[id].parent != parent {
			return 0, fmt.Errorf("%w: %q already attached under %q", ErrDuplicateSwitch, name, f.parentName(id))
		}
		return id, nil
	}
	id, err := f.alloc(name, parent)
	if err != nil {
		return 0, err
	}
	f.records[parent].children = append(f.records[parent].children, id)
	return id, nil
}

// AttachNode adds a node name to the switch's directly attached set.
func (f *Forest) AttachNode(id SwitchID, node string) {
	rec := &f.records[id]
	if rec.nodeSet[node] {
		return
	}
	rec.nodeSet[node] = true
	rec.nodes = append(rec.nodes, node)
}

// SetLinkSpeed sets the out-of-band LinkSpeed marker on a switch.
func (f *Forest) SetLinkSpeed(id SwitchID, speed int) {
	f.records[id].linkSpeed = speed
}

// Name returns the switch name.
func (f *Forest) Name(id SwitchID) string { return f.records[id].name }

// Nodes returns a copy of the switch's directly attached node names.
func (f *Forest) Nodes(id SwitchID) []string {
	return append([]string(nil), f.records[id].nodes...)
}

// Roots returns the root switches in insertion order.
func (f *Forest) Roots() []SwitchID {
	return append([]SwitchID(nil), f.roots...)
}

// Children returns the switch's children ordered lexicographically by name.
func (f *Forest) Children(id SwitchID) []SwitchID {
	children := append([]SwitchID(nil), f.records[id].children...)
	sort.Slice(children, func(i, j int) bool {
		return f.records[children[i]].name < f.records[children[j]].name
	})
	return children
}

// Empty reports whether the switch has no attached nodes and only empty
// children. Empty switches never render.
func (f *Forest) Empty(id SwitchID) bool {
	if len(f.records[id].nodes) > 0 {
		return false
	}
	for _, c := range f.records[id].children {
		if !f.Empty(c) {
			return false
		}
	}
	return true
}
