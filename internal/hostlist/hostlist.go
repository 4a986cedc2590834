// Package hostlist implements the compact bracket-range notation used for
// sets of similarly named cluster nodes, e.g. "node-[0-3,7]".
//
// A well-formed node name is a non-numeric prefix immediately followed by a
// run of decimal digits. Compress groups names by prefix and zero-pad width
// and merges consecutive indices into ranges; Expand is the inverse.
package hostlist

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrMalformedName indicates a node name without a parseable numeric suffix.
	ErrMalformedName = errors.New("malformed node name")

	// ErrMalformedExpression indicates a hostlist expression with unbalanced
	// brackets or non-numeric range bounds.
	ErrMalformedExpression = errors.New("malformed hostlist expression")
)

// nameRe captures the longest trailing digit run as the node index.
var nameRe = regexp.MustCompile(`^(.*[^0-9])([0-9]+)$`)

// groupKey separates names that share a prefix but differ in zero-padding,
// so "n-7" and "n-007" never collapse into one index.
type groupKey struct {
	prefix string
	width  int // zero-pad width, 0 for unpadded indices
}

// padWidth returns the zero-pad width encoded by a digit run, or 0 when the
// run carries no leading zeros.
func padWidth(digits string) int {
	if len(digits) > 1 && digits[0] == '0' {
		return len(digits)
	}
	return 0
}

func formatIndex(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// Compress renders a set of node names as a hostlist expression. Names are
// grouped by prefix and zero-pad width; groups are ordered naturally by
// prefix and indices are merged into ascending ranges. Zero-padded indices
// keep their padding, so every input name survives a round trip through
// Expand. A group with a single index renders without brackets. Duplicate
// names collapse.
func Compress(names []string) (string, error) {
	if len(names) == 0 {
		return "", nil
	}

	groups := make(map[groupKey][]int)
	for _, name := range names {
		m := nameRe.FindStringSubmatch(name)
		if m == nil {
			return "", fmt.Errorf("%w: %q", ErrMalformedName, name)
		}
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrMalformedName, name, err)
		}
		k := groupKey{prefix: m[1], width: padWidth(m[2])}
		groups[k] = append(groups[k], n)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].prefix != keys[j].prefix {
			return Less(keys[i].prefix, keys[j].prefix)
		}
		return keys[i].width < keys[j].width
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, compressGroup(k, groups[k]))
	}
	return strings.Join(parts, ","), nil
}

func compressGroup(k groupKey, indices []int) string {
	sort.Ints(indices)

	uniq := indices[:1]
	for _, n := range indices[1:] {
		if n != uniq[len(uniq)-1] {
			uniq = append(uniq, n)
		}
	}

	if len(uniq) == 1 {
		return k.prefix + formatIndex(uniq[0], k.width)
	}

	var spec []string
	for i := 0; i < len(uniq); {
		j := i
		for j+1 < len(uniq) && uniq[j+1] == uniq[j]+1 {
			j++
		}
		if j == i {
			spec = append(spec, formatIndex(uniq[i], k.width))
		} else {
			spec = append(spec, formatIndex(uniq[i], k.width)+"-"+formatIndex(uniq[j], k.width))
		}
		i = j + 1
	}
	return k.prefix + "[" + strings.Join(spec, ",") + "]"
}

// Expand enumerates every node name described by a hostlist expression, in
// the order the expression lists them with ranges ascending. A bare token
// without brackets is returned verbatim.
func Expand(expr string) ([]string, error) {
	if expr == "" {
		return nil, nil
	}

	parts, err := splitTopLevel(expr)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, part := range parts {
		i := strings.IndexByte(part, '[')
		if i < 0 {
			if strings.ContainsRune(part, ']') {
				return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrMalformedExpression, part)
			}
			out = append(out, part)
			continue
		}

		if !strings.HasSuffix(part, "]") {
			return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrMalformedExpression, part)
		}
		prefix, spec := part[:i], part[i+1:len(part)-1]
		if strings.ContainsAny(spec, "[]") {
			return nil, fmt.Errorf("%w: nested brackets in %q", ErrMalformedExpression, part)
		}

		for _, tok := range strings.Split(spec, ",") {
			lo, hi, width, err := parseRange(tok)
			if err != nil {
				return nil, err
			}
			for n := lo; n <= hi; n++ {
				out = append(out, prefix+formatIndex(n, width))
			}
		}
	}
	return out, nil
}

// parseRange parses a "lo", "lo-hi" range token. The zero-pad width of the
// lower bound carries over to every enumerated index.
func parseRange(tok string) (lo, hi, width int, err error) {
	a, b, isRange := strings.Cut(tok, "-")
	lo, err = strconv.Atoi(a)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: non-numeric index %q", ErrMalformedExpression, tok)
	}
	width = padWidth(a)
	if !isRange {
		return lo, lo, width, nil
	}
	hi, err = strconv.Atoi(b)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: non-numeric range bound %q", ErrMalformedExpression, tok)
	}
	if hi < lo {
		return 0, 0, 0, fmt.Errorf("%w: descending range %q", ErrMalformedExpression, tok)
	}
	return lo, hi, width, nil
}

// splitTopLevel splits on commas outside brackets.
func splitTopLevel(expr string) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrMalformedExpression, expr)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, expr[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrMalformedExpression, expr)
	}
	return append(parts, expr[start:]), nil
}
