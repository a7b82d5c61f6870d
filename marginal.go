package domino

import (
	"github.com/ocp-domino/domino-infer/internal/dispatch"
	"github.com/ocp-domino/domino-infer/internal/player"
	"github.com/ocp-domino/domino-infer/internal/tiles"
)

// Table is the marginal table of spec.md §3/§6: P(p,t) for every unknown
// player p and tile t currently in U. It is derived fresh by every
// Session.Marginals call, never stored on the session itself.
type Table struct {
	u     tiles.Set
	inner *dispatch.Table
}

// Backend names which back-end produced this table ("exact", "rejection",
// or "mcmc"), exposed for observability/testing — callers should never
// branch on it.
func (t *Table) Backend() string { return string(t.inner.Backend) }

// Get returns P(p,t). The result is only meaningful for t ∈ U at the time
// the table was computed (spec.md §3: undefined for t ∉ U); Get returns 0
// for such t, matching the zero value of an unrepresented probability.
func (t *Table) Get(p Player, tl Tile) float64 {
	if !t.u.Has(tl) {
		return 0
	}
	return t.inner.Get(p, tl)
}

// MarginalEntry is one row of the marginal-table schema of spec.md §6: an
// array of (player, tile, probability) triples covering exactly P × U.
type MarginalEntry struct {
	Player      Player  `json:"player"`
	Tile        Tile    `json:"tile"`
	Probability float64 `json:"probability"`
}

// Entries flattens the table into the (player, tile, probability) triples
// of spec.md §6's marginal-table schema, one row per (p,t) with t ∈ U.
func (t *Table) Entries() []MarginalEntry {
	out := make([]MarginalEntry, 0, t.u.Popcnt()*3)
	for _, p := range player.Unknown {
		t.u.Iter(func(tl tiles.Tile) {
			out = append(out, MarginalEntry{Player: p, Tile: tl, Probability: t.inner.Get(p, tl)})
		})
	}
	return out
}
