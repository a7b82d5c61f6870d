package exact

import (
	"sort"

	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// playerOrder returns a permutation of slots {0,1,2} (W,N,E) ordered by
// smallest candidate set first, tie-broken by smallest remaining count —
// the heuristic of spec.md §4.4.
func playerOrder(c [3]tiles.Set, r [3]uint8) [3]int {
	order := [3]int{0, 1, 2}
	sort.Slice(order[:], func(i, j int) bool {
		si, sj := order[i], order[j]
		if c[si].Popcnt() != c[sj].Popcnt() {
			return c[si].Popcnt() < c[sj].Popcnt()
		}
		return r[si] < r[sj]
	})
	return order
}
