package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/hpcops/slurmtopo/internal/hostlist"
)

// HostlistCompress prints the hostlist expression for the given node names.
// Comma-separated arguments are accepted as well as separate ones.
func HostlistCompress(w io.Writer, args []string) error {
	var names []string
	for _, arg := range args {
		for _, name := range strings.Split(arg, ",") {
			if name != "" {
				names = append(names, name)
			}
		}
	}

	expr, err := hostlist.Compress(names)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, expr)
	return nil
}

// HostlistExpand prints the node names encoded by a hostlist expression,
// one per line.
func HostlistExpand(w io.Writer, expr string) error {
	names, err := hostlist.Expand(expr)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}
