package topology

import (
	"fmt"

	"github.com/hpcops/slurmtopo/internal/config"
	"github.com/hpcops/slurmtopo/internal/inventory"
)

const (
	conventionalRootName = "nodeset-root"
	acceleratorRootName  = "nodeset_tpu-root"

	// placementMaxCount is the LinkSpeed value marking a group with
	// placement affinity enabled. The scheduler ignores it; the resume
	// machinery reads it back as the placement group size ceiling.
	placementMaxCount = 150
)

// Lookup is the capability set the builder consumes. inventory.Lookup is the
// canonical implementation; tests substitute their own.
type Lookup interface {
	// NodeGroups returns the conventional node groups, ordered by name.
	NodeGroups() []config.NodeGroup

	// TpuNodeGroups returns the accelerator node groups, ordered by name.
	TpuNodeGroups() []config.TpuNodeGroup

	// Instances returns the current cloud instance snapshot.
	Instances() []inventory.Instance

	// Classify maps a node name to its node group.
	Classify(name string) inventory.Classification
}

// GroupSwitchName returns the name of a node group's own switch.
// Pattern: ns_${group}
func GroupSwitchName(group string) string {
	return "ns_" + group
}

// Build assembles the topology forest for the given snapshot: one root for
// conventional node groups, one for accelerator node groups. The result is
// fully determined by the snapshot contents, never by input ordering.
func Build(lkp Lookup) (*Forest, error) {
	f := NewForest()

	convRoot, err := f.AddRoot(conventionalRootName)
	if err != nil {
		return nil, err
	}
	tpuRoot, err := f.AddRoot(acceleratorRootName)
	if err != nil {
		return nil, err
	}

	// Classify the snapshot once. Unmatched instances (controller, login,
	// foreign VMs) are expected and skipped; Malformed classifications
	// abort the run.
	live := make(map[string][]inventory.Instance)
	for _, inst := range lkp.Instances() {
		cls := lkp.Classify(inst.Name)
		switch cls.Match {
		case inventory.Malformed:
			return nil, fmt.Errorf("classify instance %q: %s", inst.Name, cls.Reason)
		case inventory.Unmatched:
			continue
		}
		live[cls.Group] = append(live[cls.Group], inst)
	}

	for _, g := range lkp.NodeGroups() {
		if err := buildNodeGroup(f, convRoot, g, live[g.Name]); err != nil {
			return nil, err
		}
	}
	for _, g := range lkp.TpuNodeGroups() {
		if err := buildTpuNodeGroup(f, tpuRoot, g); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func buildNodeGroup(f *Forest, root SwitchID, g config.NodeGroup, live []inventory.Instance) error {
	// Dynamic-only groups always use real topology.
	if !g.RealTopology && g.StaticCount > 0 {
		return attachGroupSwitch(f, root, g, g.NodeNames())
	}

	seen := make(map[string]bool, len(live))
	for _, inst := range live {
		path, err := ResolvePath(inst)
		if err != nil {
			return fmt.Errorf("instance %q: %w", inst.Name, err)
		}
		cur := root
		for _, segment := range path {
			if cur, err = f.Child(cur, segment); err != nil {
				return fmt.Errorf("instance %q: %w", inst.Name, err)
			}
		}
		f.AttachNode(cur, inst.Name)
		seen[inst.Name] = true
	}

	// Nodes without a live instance (not yet provisioned, or externally
	// managed) fall back to the group's own switch.
	var rest []string
	for _, name := range g.NodeNames() {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	if len(rest) == 0 {
		return nil
	}
	return attachGroupSwitch(f, root, g, rest)
}

func attachGroupSwitch(f *Forest, root SwitchID, g config.NodeGroup, nodes []string) error {
	sw, err := f.Child(root, GroupSwitchName(g.Name))
	if err != nil {
		return err
	}
	for _, name := range nodes {
		f.AttachNode(sw, name)
	}
	if g.EnablePlacement {
		f.SetLinkSpeed(sw, placementMaxCount)
	}
	return nil
}

func buildTpuNodeGroup(f *Forest, root SwitchID, g config.TpuNodeGroup) error {
	sw, err := f.Child(root, GroupSwitchName(g.Name))
	if err != nil {
		return err
	}

	if g.VMCount == 1 {
		for _, name := range g.NodeNames() {
			f.AttachNode(sw, name)
		}
		return nil
	}

	// Nodes sharing an accelerator slice must land on one sub-switch, in
	// chunks of exactly VMCount. Static and dynamic blocks chunk
	// independently; the sub-switch counter runs across both.
	i := 0
	for _, block := range [][]string{g.StaticNodeNames(), g.DynamicNodeNames()} {
		for _, chunk := range chunked(block, g.VMCount) {
			sub, err := f.Child(sw, fmt.Sprintf("%s-%d", GroupSwitchName(g.Name), i))
			if err != nil {
				return err
			}
			for _, name := range chunk {
				f.AttachNode(sub, name)
			}
			i++
		}
	}
	return nil
}

// chunked splits names into consecutive chunks of size n; the last chunk may
// be shorter.
func chunked(names []string, n int) [][]string {
	var chunks [][]string
	for len(names) > n {
		chunks = append(chunks, names[:n])
		names = names[n:]
	}
	if len(names) > 0 {
		chunks = append(chunks, names)
	}
	return chunks
}
