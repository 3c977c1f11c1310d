package routing

import (
	"math"

	"github.com/azybler/bikecch/pkg/graph"
)

// distHeap is a concrete-typed min-heap for the Dijkstra fallback search.
// Avoids interface boxing overhead of container/heap.
type distHeap struct {
	items []distHeapItem
}

type distHeapItem struct {
	node uint32
	dist float64
}

func (h *distHeap) Len() int { return len(h.items) }

func (h *distHeap) Push(node uint32, dist float64) {
	h.items = append(h.items, distHeapItem{node, dist})
	h.siftUp(len(h.items) - 1)
}

func (h *distHeap) Pop() distHeapItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

func (h *distHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].dist >= h.items[parent].dist {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *distHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && h.items[left].dist < h.items[smallest].dist {
			smallest = left
		}
		if right < n && h.items[right].dist < h.items[smallest].dist {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// dijkstra runs a single-source label-setting search from s over every arc
// in g — real and shortcut, the shortcuts already priced by customization —
// serving as the fallback used when s and t share no direct arc (spec
// §4.5). It returns the settled distance to every reached vertex and, for
// each, the key of the arc that last improved it.
func dijkstra(g *graph.Graph, s uint32) (dist map[uint32]float64, pred map[uint32]graph.ArcKey) {
	dist = map[uint32]float64{s: 0}
	pred = make(map[uint32]graph.ArcKey)
	settled := make(map[uint32]bool)

	var pq distHeap
	pq.Push(s, 0)

	for pq.Len() > 0 {
		item := pq.Pop()
		if settled[item.node] {
			continue
		}
		settled[item.node] = true

		for _, t := range g.OutTargets(item.node) {
			arc, ok := g.GetArc(item.node, t)
			if !ok || math.IsInf(arc.Cost, 1) {
				continue
			}
			newDist := item.dist + arc.Cost
			if d, seen := dist[t]; !seen || newDist < d {
				dist[t] = newDist
				pred[t] = arc.Key
				pq.Push(t, newDist)
			}
		}
	}

	return dist, pred
}
