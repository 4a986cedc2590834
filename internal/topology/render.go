package topology

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/hpcops/slurmtopo/internal/hostlist"
)

// FilePreamble precedes every generated configuration artifact.
const FilePreamble = `# Warning:
# This file is managed by a script. Manual modifications will be overwritten.
`

// Render writes the topology artifact: the preamble, then one blank-line
// separated section per non-empty root, one directive line per non-empty
// switch in pre-order. Children render in lexicographic name order, never
// insertion order, so equivalent snapshots render byte-identically.
func (f *Forest) Render(w io.Writer) error {
	if _, err := io.WriteString(w, FilePreamble); err != nil {
		return err
	}
	for _, root := range f.roots {
		if f.Empty(root) {
			continue
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := f.renderSwitch(w, root); err != nil {
			return err
		}
	}
	return nil
}

func (f *Forest) renderSwitch(w io.Writer, id SwitchID) error {
	line, err := f.confLine(id)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, line+"\n"); err != nil {
		return err
	}
	for _, child := range f.Children(id) {
		if f.Empty(child) {
			continue
		}
		if err := f.renderSwitch(w, child); err != nil {
			return err
		}
	}
	return nil
}

// confLine renders one "SwitchName=..." directive. Absent fields are
// omitted. Child-name lists use the hostlist codec when the names share a
// compressible pattern, and an explicit natural-ordered comma join when not.
func (f *Forest) confLine(id SwitchID) (string, error) {
	rec := &f.records[id]
	parts := []string{"SwitchName=" + rec.name}

	if len(rec.nodes) > 0 {
		expr, err := hostlist.Compress(f.Nodes(id))
		if err != nil {
			return "", err
		}
		parts = append(parts, "Nodes="+expr)
	}

	var childNames []string
	for _, child := range f.records[id].children {
		if !f.Empty(child) {
			childNames = append(childNames, f.records[child].name)
		}
	}
	if len(childNames) > 0 {
		expr, err := hostlist.Compress(childNames)
		if errors.Is(err, hostlist.ErrMalformedName) {
			hostlist.Sort(childNames)
			expr = strings.Join(childNames, ",")
		} else if err != nil {
			return "", err
		}
		parts = append(parts, "Switches="+expr)
	}

	if rec.linkSpeed > 0 {
		parts = append(parts, "LinkSpeed="+strconv.Itoa(rec.linkSpeed))
	}
	return strings.Join(parts, " "), nil
}
