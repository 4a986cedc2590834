package hostlist

import (
	"sort"
	"strconv"
)

// Less reports whether a orders before b under natural ordering: digit runs
// compare numerically, everything else compares byte-wise.
func Less(a, b string) bool {
	return naturalCompare(a, b) < 0
}

// Sort orders names in place by natural ordering.
func Sort(names []string) {
	sort.Slice(names, func(i, j int) bool { return Less(names[i], names[j]) })
}

func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		ta, na, ra := nextToken(a)
		tb, nb, rb := nextToken(b)

		switch {
		case na && nb:
			va, _ := strconv.Atoi(ta)
			vb, _ := strconv.Atoi(tb)
			if va != vb {
				if va < vb {
					return -1
				}
				return 1
			}
			// Equal values with different zero padding still order ("01" < "1").
			if ta != tb {
				if ta < tb {
					return -1
				}
				return 1
			}
		default:
			if ta != tb {
				if ta < tb {
					return -1
				}
				return 1
			}
		}
		a, b = ra, rb
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// nextToken returns the leading maximal digit or non-digit run.
func nextToken(s string) (tok string, numeric bool, rest string) {
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[:i], numeric, s[i:]
}
