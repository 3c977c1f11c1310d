package cch

import (
	"log"
	"math"

	"github.com/azybler/bikecch/pkg/graph"
)

// Customize runs the bulk customization pass (spec §4.4): arcs are visited
// in non-decreasing source-rank order (graph.ArcsSortedBySourceRank already
// guarantees this), and for every arc with non-empty lower triangles, its
// cost is lowered to the minimum finite combine(from.Cost, to.Cost) over its
// witnesses, if that is smaller than its current cost. Because arcs are
// visited in source-rank order, every witness's component costs are
// finalized before they are read, so one sweep suffices.
//
// combine defaults to graph.AddCombine (ordinary addition) when nil.
func Customize(g *graph.Graph, combine graph.CombineFunc) {
	if combine == nil {
		combine = graph.AddCombine
	}

	log.Printf("cch: starting bulk customization pass")
	var updated int

	for _, arc := range g.ArcsSortedBySourceRank() {
		triangles := g.LowerTriangles(arc.Key)
		if len(triangles) == 0 {
			continue
		}

		candidate := minWitnessCost(g, triangles, combine)
		if candidate < arc.Cost {
			g.SetCost(arc.Key, candidate)
			updated++
		}
	}

	log.Printf("cch: bulk customization complete, %d arc costs lowered", updated)
}

// minWitnessCost returns the minimum combine(from.Cost, to.Cost) over
// triangles, ignoring any witness whose side cost is InfCost, or +Inf if no
// witness is finite.
func minWitnessCost(g *graph.Graph, triangles []graph.Triangle, combine graph.CombineFunc) float64 {
	best := math.Inf(1)
	for _, t := range triangles {
		fromArc, ok1 := g.GetArc(t.FromSide.Source, t.FromSide.Target)
		toArc, ok2 := g.GetArc(t.ToSide.Source, t.ToSide.Target)
		if !ok1 || !ok2 {
			continue
		}
		if math.IsInf(fromArc.Cost, 1) || math.IsInf(toArc.Cost, 1) {
			continue
		}
		combined := combine(fromArc.Cost, toArc.Cost)
		if combined < best {
			best = combined
		}
	}
	return best
}

// Recustomize re-prices the shortcuts affected by an external cost change to
// the given arcs (e.g. updated real-arc costs, or a new combine function),
// propagating through the intermediate-triangle index until no further
// shortcut needs revisiting (spec §4.4's incremental update).
//
// A changed arc — real or shortcut — affects exactly the shortcuts it
// witnesses one side of: for every triangle t with t.FromSide or t.ToSide
// equal to the changed arc's key, the shortcut at
// {t.FromSide.Source, t.ToSide.Target} is a candidate for re-pricing. That
// shortcut's new cost is min(its current cost, the best combine(...) over
// all its witnesses); if it drops, the shortcut itself just became a
// "changed arc" for any triangle it in turn participates in, so the same
// lookup runs again from its key. The changed arcs themselves are only fanned
// out, never re-priced; a real arc that occupies a shortcut's key carries
// that shortcut's witnesses and is re-priced like any shortcut when popped —
// matching the source's affected-arc propagation rule.
func Recustomize(g *graph.Graph, changed []graph.ArcKey, combine graph.CombineFunc) {
	if combine == nil {
		combine = graph.AddCombine
	}

	pq := newCostHeap()
	queued := make(map[graph.ArcKey]bool)
	enqueue := func(key graph.ArcKey) {
		if queued[key] {
			return
		}
		arc, ok := g.GetArc(key.Source, key.Target)
		if !ok {
			return
		}
		queued[key] = true
		pq.push(key, arc.Cost)
	}

	fanOut := func(key graph.ArcKey) {
		for _, t := range g.IntermediateTrianglesFor(key) {
			enqueue(graph.ArcKey{Source: t.FromSide.Source, Target: t.ToSide.Target})
		}
	}

	for _, key := range changed {
		fanOut(key)
	}

	var iterations int
	for pq.len() > 0 {
		key := pq.pop()
		queued[key] = false
		iterations++

		arc, ok := g.GetArc(key.Source, key.Target)
		if !ok {
			continue
		}

		candidate := minWitnessCost(g, g.LowerTriangles(key), combine)
		newCost := math.Min(arc.Cost, candidate)
		if newCost < arc.Cost {
			g.SetCost(key, newCost)
			fanOut(key)
		}
	}

	log.Printf("cch: incremental recustomization converged after %d arc pops", iterations)
}

// costHeap is a concrete-typed binary min-heap of (ArcKey, cost) entries,
// matching the routing package's distHeap in preferring a typed heap over
// container/heap's interface boxing.
type costHeap struct {
	items []costHeapItem
}

type costHeapItem struct {
	key  graph.ArcKey
	cost float64
}

func newCostHeap() *costHeap {
	return &costHeap{items: make([]costHeapItem, 0, 64)}
}

func (h *costHeap) len() int { return len(h.items) }

func (h *costHeap) push(key graph.ArcKey, cost float64) {
	h.items = append(h.items, costHeapItem{key, cost})
	h.siftUp(len(h.items) - 1)
}

func (h *costHeap) pop() graph.ArcKey {
	top := h.items[0]
	n := len(h.items) - 1
	h.items[0] = h.items[n]
	h.items = h.items[:n]
	if n > 0 {
		h.siftDown(0)
	}
	return top.key
}

func (h *costHeap) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if item.cost >= h.items[parent].cost {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

func (h *costHeap) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		child := 2*i + 1
		if child >= n {
			break
		}
		if right := child + 1; right < n && h.items[right].cost < h.items[child].cost {
			child = right
		}
		if item.cost <= h.items[child].cost {
			break
		}
		h.items[i] = h.items[child]
		i = child
	}
	h.items[i] = item
}
