package availability

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Rank sorts tables in place for a party: smallest |capacity - partySize|
// first, then by label (numerically when both labels are numbers, numeric
// labels before other labels, otherwise lexically), then by id.
// The result does not depend on the input order.
func Rank(tables []Table, partySize int) {
	slices.SortFunc(tables, func(a, b Table) int {
		if c := cmp.Compare(fit(a, partySize), fit(b, partySize)); c != 0 {
			return c
		}
		if c := CompareLabels(a.Label, b.Label); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// CompareLabels orders table labels the way staff read them: "2" before "10".
func CompareLabels(a, b string) int {
	na, errA := strconv.Atoi(strings.TrimSpace(a))
	nb, errB := strconv.Atoi(strings.TrimSpace(b))
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return strings.Compare(a, b)
}

func fit(t Table, partySize int) int {
	d := t.Capacity - partySize
	if d < 0 {
		return -d
	}
	return d
}
