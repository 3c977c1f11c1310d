package routing

import (
	"math"

	"github.com/azybler/bikecch/pkg/graph"
)

// costTolerance bounds the deviation allowed between a shortcut's priced
// cost and a witnessing triangle's combined cost when matching a triangle
// during unpacking (spec §9: customization costs are floating point and are
// compared within this tolerance, not exactly).
const costTolerance = 1e-3

// maxUnpackDepth bounds shortcut recursion depth as a safety net; a
// well-formed CCH never nests this deep.
const maxUnpackDepth = 100

// UnpackArc expands the arc at key into the sequence of real (non-shortcut)
// arcs it represents, source to target. A real arc unpacks to itself. A
// shortcut arc is expanded by finding the witnessing triangle whose combined
// cost reproduces the shortcut's priced cost (within costTolerance) —
// ties broken by whichever witness was registered first — and recursively
// unpacking its two sides. This is the recursive definition the Python
// ancestor's unpack_path stopped short of: it located the matching triangle
// but never recursed into its sides.
//
// combine must be the function g was customized with; a mismatched combine
// will fail to reproduce any shortcut's cost and every shortcut will surface
// unexpanded.
func UnpackArc(g *graph.Graph, key graph.ArcKey, combine graph.CombineFunc) []graph.Arc {
	if combine == nil {
		combine = graph.AddCombine
	}

	type stackItem struct {
		key   graph.ArcKey
		depth int
	}

	var result []graph.Arc
	stack := []stackItem{{key, 0}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		arc, ok := g.GetArc(item.key.Source, item.key.Target)
		if !ok {
			continue
		}
		if !arc.Shortcut {
			result = append(result, *arc)
			continue
		}
		if item.depth > maxUnpackDepth {
			result = append(result, *arc)
			continue
		}

		triangle, found := matchingTriangle(g, arc, combine)
		if !found {
			result = append(result, *arc)
			continue
		}

		// Push ToSide then FromSide: the stack pops FromSide first, and any
		// further expansion it triggers completes before ToSide is reached,
		// preserving source-to-target order in the flattened result.
		stack = append(stack, stackItem{triangle.ToSide, item.depth + 1})
		stack = append(stack, stackItem{triangle.FromSide, item.depth + 1})
	}

	return result
}

// matchingTriangle finds the lower triangle of arc whose combined side cost
// reproduces arc.Cost within costTolerance, preferring the lowest combined
// cost and breaking ties by registration order.
func matchingTriangle(g *graph.Graph, arc *graph.Arc, combine graph.CombineFunc) (graph.Triangle, bool) {
	var best graph.Triangle
	bestCombined := math.Inf(1)
	found := false

	for _, t := range g.LowerTriangles(arc.Key) {
		fromArc, ok1 := g.GetArc(t.FromSide.Source, t.FromSide.Target)
		toArc, ok2 := g.GetArc(t.ToSide.Source, t.ToSide.Target)
		if !ok1 || !ok2 {
			continue
		}
		if math.IsInf(fromArc.Cost, 1) || math.IsInf(toArc.Cost, 1) {
			continue
		}

		combined := combine(fromArc.Cost, toArc.Cost)
		if math.Abs(combined-arc.Cost) > costTolerance {
			continue
		}
		if !found || combined < bestCombined {
			best, bestCombined, found = t, combined, true
		}
	}

	return best, found
}
