package topology

import "fmt"

// Canonicalize relabels the forest with compact, structurally stable switch
// names: roots become s0, s1, ... in insertion order, and every child is
// renamed <parent>_<i> with i its 0-based position among its siblings sorted
// lexicographically by their previous names.
//
// Only switch names change. Hierarchy and node attachment are untouched, so
// total leaf membership is preserved, and two structurally identical forests
// canonicalize to identical output regardless of their raw switch names.
// Canonical names also stay short no matter how deep or verbosely named the
// physical host hierarchy was.
func (f *Forest) Canonicalize() {
	renamed := make([]string, len(f.records))

	var walk func(id SwitchID, name string)
	walk = func(id SwitchID, name string) {
		renamed[id] = name
		for i, child := range f.Children(id) {
			walk(child, fmt.Sprintf("%s_%d", name, i))
		}
	}
	for i, root := range f.roots {
		walk(root, fmt.Sprintf("s%d", i))
	}

	byName := make(map[string]SwitchID, len(f.records))
	for id := range f.records {
		f.records[id].name = renamed[id]
		byName[renamed[id]] = SwitchID(id)
	}
	f.byName = byName
}
