package inventory

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/hpcops/slurmtopo/internal/config"
)

// nodeRe splits a node name into its group prefix and numeric index.
var nodeRe = regexp.MustCompile(`^(.+)-([0-9]+)$`)

// Lookup is an immutable snapshot of node group definitions plus the live
// instance inventory taken at the start of a generation run.
type Lookup struct {
	nodeGroups []config.NodeGroup
	tpuGroups  []config.TpuNodeGroup
	instances  []Instance

	groupTotals map[string]int
}

// NewLookup builds a Lookup from the cluster configuration and an instance
// snapshot. Group and instance orderings are normalized so that equivalent
// but differently ordered inputs produce identical topology output.
func NewLookup(cfg *config.Config, instances []Instance) *Lookup {
	lkp := &Lookup{
		nodeGroups:  append([]config.NodeGroup(nil), cfg.NodeGroups...),
		tpuGroups:   append([]config.TpuNodeGroup(nil), cfg.TpuNodeGroups...),
		instances:   append([]Instance(nil), instances...),
		groupTotals: make(map[string]int),
	}
	sort.Slice(lkp.nodeGroups, func(i, j int) bool { return lkp.nodeGroups[i].Name < lkp.nodeGroups[j].Name })
	sort.Slice(lkp.tpuGroups, func(i, j int) bool { return lkp.tpuGroups[i].Name < lkp.tpuGroups[j].Name })
	sort.Slice(lkp.instances, func(i, j int) bool { return lkp.instances[i].Name < lkp.instances[j].Name })

	for _, g := range lkp.nodeGroups {
		lkp.groupTotals[g.Name] = g.TotalCount()
	}
	for _, g := range lkp.tpuGroups {
		lkp.groupTotals[g.Name] = g.TotalCount()
	}
	return lkp
}

// NodeGroups returns the conventional node groups, ordered by name.
func (l *Lookup) NodeGroups() []config.NodeGroup { return l.nodeGroups }

// TpuNodeGroups returns the accelerator node groups, ordered by name.
func (l *Lookup) TpuNodeGroups() []config.TpuNodeGroup { return l.tpuGroups }

// Instances returns the instance snapshot, ordered by name.
func (l *Lookup) Instances() []Instance { return l.instances }

// TPUSliceSize returns the accelerator slice size for a TPU node group, or 0
// if the group is unknown.
func (l *Lookup) TPUSliceSize(group string) int {
	for _, g := range l.tpuGroups {
		if g.Name == group {
			return g.VMCount
		}
	}
	return 0
}

// Classify maps a node name to its node group. Names that do not follow the
// <group>-<index> pattern, or whose prefix names no known group, are
// Unmatched; a known group with an out-of-range or zero-padded index is
// Malformed. Cluster node names are always unpadded, so a padded name such
// as "blue-05" is never the node "blue-5" and must not be treated as it.
func (l *Lookup) Classify(name string) Classification {
	m := nodeRe.FindStringSubmatch(name)
	if m == nil {
		return Classification{Match: Unmatched}
	}

	group := m[1]
	total, ok := l.groupTotals[group]
	if !ok {
		return Classification{Match: Unmatched}
	}

	if len(m[2]) > 1 && m[2][0] == '0' {
		return Classification{
			Match:  Malformed,
			Group:  group,
			Reason: fmt.Sprintf("node %q: zero-padded index for group %q", name, group),
		}
	}
	index, err := strconv.Atoi(m[2])
	if err != nil || index >= total {
		return Classification{
			Match:  Malformed,
			Group:  group,
			Reason: fmt.Sprintf("node %q: index out of range for group %q (max %d)", name, group, total-1),
		}
	}
	return Classification{Match: Matched, Group: group}
}
