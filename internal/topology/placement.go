package topology

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hpcops/slurmtopo/internal/inventory"
)

// ErrInvalidPlacement indicates a physical host path that does not follow
// the provider's slash-delimited format. An incomplete topology is worse
// than none for scheduler correctness, so this fails the generation run.
var ErrInvalidPlacement = errors.New("invalid physical host format")

// ResolvePath maps one instance record onto the ordered switch path from the
// region down to the switch the node attaches to, coarsest first.
//
// Instances without placement data get three synthetic padding segments so
// that tree depth, and with it the dispatcher's distance cost, stays
// comparable across groups mixing known and unknown placement.
//
// Path segments after the zone are the cumulative underscore-join of the
// physical host components seen so far, which keeps switch names unique
// across branches that share a leaf component name.
func ResolvePath(inst inventory.Instance) ([]string, error) {
	path := []string{"region_" + inst.Region}

	if inst.PhysicalHost == "" {
		return append(path,
			"zone_"+inst.Zone,
			inst.Name+"_pad2",
			inst.Name+"_pad1",
			inst.Name+"_pad0",
		), nil
	}

	if !strings.HasPrefix(inst.PhysicalHost, "/") {
		return nil, fmt.Errorf("%w: %q does not start with %q", ErrInvalidPlacement, inst.PhysicalHost, "/")
	}
	parts := strings.Split(strings.TrimPrefix(inst.PhysicalHost, "/"), "/")
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %q has %d segments, need at least 3", ErrInvalidPlacement, inst.PhysicalHost, len(parts))
	}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPlacement, inst.PhysicalHost)
		}
	}

	if len(parts) == 3 {
		// Known limitation: the placement policy id is not folded into the
		// path, so two policies in the same zone can resolve to colliding
		// component names. Deeper paths disambiguate on their own and skip
		// the zone segment.
		path = append(path, "zone_"+inst.Zone)
	}

	cumulative := ""
	for _, part := range parts {
		if cumulative == "" {
			cumulative = part
		} else {
			cumulative += "_" + part
		}
		path = append(path, cumulative)
	}
	return path, nil
}
