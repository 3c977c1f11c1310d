package graph

import "math"

// Vertex is a routing node: a dense integer id assigned on insertion, its
// WGS84 coordinates, and its contraction rank (lower ranks are contracted
// first). An unassigned rank reads as 0, per spec.
type Vertex struct {
	ID        uint32
	Lat, Lon  float64
	Rank      uint32
	HasRank   bool
}

// ArcKey identifies an arc by its ordered endpoint pair. At most one arc
// exists per key.
type ArcKey struct {
	Source, Target uint32
}

// InfCost is the sentinel cost of a shortcut arc that has not yet been
// priced by customization. It must be excluded whenever costs are combined;
// customization and unpacking skip any witness with an InfCost side.
var InfCost = math.Inf(1)

// Arc is a directed edge. Cost is in kilometres for real arcs, or the
// minimum combined cost of a witnessing triangle for shortcuts (InfCost
// until customization prices it).
type Arc struct {
	Key      ArcKey
	Cost     float64
	Shortcut bool // true for arcs created during contraction, false for real arcs
}

// Triangle is a pair of arcs meeting at a common middle vertex, witnessing
// a shortcut s: u -> w where FromSide is u -> m and ToSide is m -> w, with m
// the lower-ranked middle vertex.
type Triangle struct {
	FromSide ArcKey
	ToSide   ArcKey
}

// CombineFunc combines the costs of a triangle's two sides into a candidate
// shortcut cost. It must be finite-propagating: Combine(Inf, x) == Inf ==
// Combine(x, Inf) for any finite x, and monotone non-decreasing in each
// argument so that min-combine remains correct across witnesses.
type CombineFunc func(a, b float64) float64

// AddCombine is the default combining function: ordinary path-cost addition.
func AddCombine(a, b float64) float64 {
	return a + b
}

// MaxCombine combines by the larger of the two costs. Used by
// scenario S6 to demonstrate that customization is metric-agnostic.
func MaxCombine(a, b float64) float64 {
	return math.Max(a, b)
}
