// Package graph owns the CCH data model: vertices, arcs keyed by
// (source, target), and the lower-triangle / intermediate-triangle indices
// that preprocessing and customization populate. Vertices and arcs are
// owned by the Graph in dense, id-addressed storage; triangles reference
// their two arcs by ArcKey, never by pointer, so the graph is the single
// ownership root (see spec §9's design note on avoiding reference cycles).
package graph

import (
	"fmt"
	"sort"
)

// Graph owns all vertices and arcs of one routing network. It is built and
// preprocessed by a single owner, then becomes read-only for concurrent
// queries; see spec §5.
type Graph struct {
	vertices []Vertex
	arcs     map[ArcKey]*Arc

	// outIndex lists, for each vertex, the targets of its outgoing arcs in
	// insertion order. It backs UpperRankedNeighbours, OutTargets and
	// LargestComponentSize.
	outIndex map[uint32][]uint32

	// lowerTriangles maps a shortcut arc's key to the triangles that
	// witness it (spec §3/§4.3).
	lowerTriangles map[ArcKey][]Triangle

	// sideIndex maps an arc key to every triangle in which that arc
	// participates as either side — the "intermediate triangles" used by
	// the incremental customization update (spec §4.4). It re-indexes the
	// same triangle set as lowerTriangles, keyed by each side instead of by
	// the shortcut the triangle witnesses.
	sideIndex map[ArcKey][]Triangle

	rankIndex map[uint32]uint32 // rank -> vertex id, populated as ranks are assigned
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		arcs:           make(map[ArcKey]*Arc),
		outIndex:       make(map[uint32][]uint32),
		lowerTriangles: make(map[ArcKey][]Triangle),
		sideIndex:      make(map[ArcKey][]Triangle),
		rankIndex:      make(map[uint32]uint32),
	}
}

// NumVertices returns the number of vertices in the graph.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// AddVertex inserts v by id. The id must equal the next dense id
// (len(vertices)); any other value — including a duplicate of an existing
// id — is a programming error.
func (g *Graph) AddVertex(v Vertex) error {
	if int(v.ID) != len(g.vertices) {
		return fmt.Errorf("%w: vertex id %d is not the next dense id %d", ErrInvalidArgument, v.ID, len(g.vertices))
	}
	g.vertices = append(g.vertices, v)
	if v.HasRank {
		g.rankIndex[v.Rank] = v.ID
	}
	return nil
}

// Vertex returns the vertex with the given id.
func (g *Graph) Vertex(id uint32) (Vertex, error) {
	if int(id) >= len(g.vertices) {
		return Vertex{}, fmt.Errorf("%w: no vertex with id %d", ErrInvalidArgument, id)
	}
	return g.vertices[id], nil
}

// SetRank assigns a contraction rank to a vertex. Ranks must be assigned
// once, densely, before preprocessing runs (spec §9: rank assignment is a
// required input contract, not the preprocessor's responsibility).
func (g *Graph) SetRank(id uint32, rank uint32) error {
	if int(id) >= len(g.vertices) {
		return fmt.Errorf("%w: no vertex with id %d", ErrInvalidArgument, id)
	}
	if existing, ok := g.rankIndex[rank]; ok && existing != id {
		return fmt.Errorf("%w: rank %d already assigned to vertex %d", ErrInvariantViolation, rank, existing)
	}
	g.vertices[id].Rank = rank
	g.vertices[id].HasRank = true
	g.rankIndex[rank] = id
	return nil
}

// AddArc inserts or replaces the arc at (source, target).
func (g *Graph) AddArc(a Arc) error {
	if int(a.Key.Source) >= len(g.vertices) || int(a.Key.Target) >= len(g.vertices) {
		return fmt.Errorf("%w: arc references unknown vertex in %v", ErrInvalidArgument, a.Key)
	}
	if _, exists := g.arcs[a.Key]; !exists {
		g.outIndex[a.Key.Source] = append(g.outIndex[a.Key.Source], a.Key.Target)
	}
	cp := a
	g.arcs[a.Key] = &cp
	return nil
}

// AddShortcutArc ensures an arc exists at key, creating it with InfCost if
// absent. If a real (non-shortcut) arc already occupies the key, it is left
// untouched — "real arcs win; shortcut creation is skipped if a real arc
// already exists" (spec §9) — the caller still records the witnessing
// triangle via AddLowerTriangle regardless of whether a new arc was
// created. Returns true if a new shortcut arc was created.
func (g *Graph) AddShortcutArc(key ArcKey) (created bool, err error) {
	if _, ok := g.arcs[key]; ok {
		return false, nil
	}
	if err := g.AddArc(Arc{Key: key, Cost: InfCost, Shortcut: true}); err != nil {
		return false, err
	}
	return true, nil
}

// GetArc returns the arc at (src, tgt), if any.
func (g *Graph) GetArc(src, tgt uint32) (*Arc, bool) {
	a, ok := g.arcs[ArcKey{src, tgt}]
	return a, ok
}

// VertexByRank returns the first vertex whose rank equals r. Ranks are
// required to be unique (SetRank enforces this), so "first" is also "only".
func (g *Graph) VertexByRank(r uint32) (Vertex, bool) {
	id, ok := g.rankIndex[r]
	if !ok {
		return Vertex{}, false
	}
	return g.vertices[id], true
}

// UpperRankedNeighbours returns every target t such that an arc v->t exists
// and rank(t) > rank(v).
func (g *Graph) UpperRankedNeighbours(v uint32) []uint32 {
	vRank := g.vertices[v].Rank
	var out []uint32
	for _, t := range g.outIndex[v] {
		if g.vertices[t].Rank > vRank {
			out = append(out, t)
		}
	}
	return out
}

// OutTargets returns every target reachable by a single outgoing arc from v,
// in insertion order, regardless of rank. Used by the label-setting
// fallback search.
func (g *Graph) OutTargets(v uint32) []uint32 {
	return g.outIndex[v]
}

// ArcsSortedBySourceRank returns all arcs in non-decreasing order of
// source.rank, stable with respect to that key. This is the customization
// ordering required by spec §4.4.
func (g *Graph) ArcsSortedBySourceRank() []*Arc {
	out := make([]*Arc, 0, len(g.arcs))
	for _, a := range g.arcs {
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return g.vertices[out[i].Key.Source].Rank < g.vertices[out[j].Key.Source].Rank
	})
	return out
}

// LowerTriangles returns the triangles witnessing the shortcut at key,
// possibly empty.
func (g *Graph) LowerTriangles(key ArcKey) []Triangle {
	return g.lowerTriangles[key]
}

// AddLowerTriangle registers t as a witness of the shortcut at key.
func (g *Graph) AddLowerTriangle(key ArcKey, t Triangle) {
	g.lowerTriangles[key] = append(g.lowerTriangles[key], t)
}

// AddIntermediateTriangle records t in the side index used by incremental
// customization, keyed by both of its sides.
func (g *Graph) AddIntermediateTriangle(t Triangle) {
	g.sideIndex[t.FromSide] = append(g.sideIndex[t.FromSide], t)
	g.sideIndex[t.ToSide] = append(g.sideIndex[t.ToSide], t)
}

// IntermediateTrianglesFor returns every triangle in which the arc at key
// participates as either side.
func (g *Graph) IntermediateTrianglesFor(key ArcKey) []Triangle {
	return g.sideIndex[key]
}

// SetCost mutates the cost of the arc at key. Used only by customization and
// explicit recustomization (spec §3 lifecycle).
func (g *Graph) SetCost(key ArcKey, cost float64) {
	if a, ok := g.arcs[key]; ok {
		a.Cost = cost
	}
}
