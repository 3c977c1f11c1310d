// Package routing answers shortest-path queries over a customized graph:
// direct-arc unpacking where possible, a label-setting fallback otherwise.
package routing

import (
	"fmt"
	"math"

	"github.com/azybler/bikecch/pkg/graph"
)

// ShortestPath computes the minimum-cost path from s to t as a flattened
// sequence of real arcs (spec §4.5). A direct arc between s and t, if
// priced, is unpacked straight away; otherwise a label-setting search over
// the full (real + shortcut) arc set finds the cheapest sequence of arcs,
// each of which is then unpacked in turn. s == t yields an empty path. An
// unreachable t also yields an empty path — unreachability is not an error
// (spec §7) — while an unknown vertex id is.
func ShortestPath(g *graph.Graph, combine graph.CombineFunc, s, t uint32) ([]graph.Arc, error) {
	if combine == nil {
		combine = graph.AddCombine
	}

	if _, err := g.Vertex(s); err != nil {
		return nil, fmt.Errorf("%w: source vertex %d", graph.ErrInvalidArgument, s)
	}
	if _, err := g.Vertex(t); err != nil {
		return nil, fmt.Errorf("%w: target vertex %d", graph.ErrInvalidArgument, t)
	}

	if s == t {
		return nil, nil
	}

	if arc, ok := g.GetArc(s, t); ok && !math.IsInf(arc.Cost, 1) {
		return UnpackArc(g, arc.Key, combine), nil
	}

	_, pred := dijkstra(g, s)
	if _, reached := pred[t]; !reached {
		return nil, nil
	}

	keys := reconstruct(pred, s, t)

	var path []graph.Arc
	for _, key := range keys {
		path = append(path, UnpackArc(g, key, combine)...)
	}
	return path, nil
}

// reconstruct walks pred backward from t to s, returning the arc keys used
// in source-to-target order.
func reconstruct(pred map[uint32]graph.ArcKey, s, t uint32) []graph.ArcKey {
	var keys []graph.ArcKey
	node := t
	for node != s {
		key, ok := pred[node]
		if !ok {
			return nil
		}
		keys = append(keys, key)
		node = key.Source
	}
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}
