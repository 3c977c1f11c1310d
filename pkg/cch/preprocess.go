// Package cch implements Customizable Contraction Hierarchies preprocessing
// and customization over a graph.Graph: a metric-independent contraction
// pass that fixes shortcut topology from the vertex ranks alone, and a
// customization pass that prices those shortcuts from real arc costs.
package cch

import (
	"fmt"
	"log"

	"github.com/azybler/bikecch/pkg/graph"
)

// Preprocess runs metric-independent contraction over every vertex, rank 0
// through n-1 (spec §4.3). For each vertex u in rank order, it pairs up u's
// upper-ranked neighbours: for every ordered pair (v1, v2) with v1 != v2,
// rank(v1) < rank(v2), and both arcs v1->u and u->v2 present, it ensures an
// arc v1->v2 exists (creating a InfCost shortcut if not) and registers the
// triangle (v1->u, u->v2) as a witness, via both the lower-triangle and
// intermediate-triangle indices.
//
// Preprocessing does not touch arc costs; that is customize's job. The only
// failure is a vertex with no assigned rank, which is a programming error
// (spec §9: rank assignment is a required input contract).
func Preprocess(g *graph.Graph) error {
	n := g.NumVertices()
	log.Printf("cch: starting metric-independent preprocessing of %d vertices", n)

	for id := uint32(0); id < uint32(n); id++ {
		if v, _ := g.Vertex(id); !v.HasRank {
			return fmt.Errorf("%w: vertex %d has no assigned rank", graph.ErrInvariantViolation, id)
		}
	}

	var totalShortcuts int

	for rank := uint32(0); rank < uint32(n); rank++ {
		u, ok := g.VertexByRank(rank)
		if !ok {
			continue // no vertex at this rank; ranks need not be contiguous mid-range
		}

		neighbours := g.UpperRankedNeighbours(u.ID)
		if len(neighbours) == 0 {
			continue
		}

		for _, v1 := range neighbours {
			vx1, err := g.Vertex(v1)
			if err != nil {
				return err
			}
			for _, v2 := range neighbours {
				if v1 == v2 {
					continue
				}
				vx2, err := g.Vertex(v2)
				if err != nil {
					return err
				}
				if vx1.Rank >= vx2.Rank {
					continue // tie-break: only v1 < v2 by rank, avoids duplicating the shortcut
				}

				arc1, ok1 := g.GetArc(v1, u.ID)
				arc2, ok2 := g.GetArc(u.ID, v2)
				if !ok1 || !ok2 {
					continue // v1->u is absent when u->v1 is a one-way shortcut; no triangle then
				}

				key := graph.ArcKey{Source: v1, Target: v2}
				created, err := g.AddShortcutArc(key)
				if err != nil {
					return err
				}
				if created {
					totalShortcuts++
				}

				triangle := graph.Triangle{FromSide: arc1.Key, ToSide: arc2.Key}
				g.AddLowerTriangle(key, triangle)
				g.AddIntermediateTriangle(triangle)
			}
		}
	}

	log.Printf("cch: preprocessing complete, %d shortcut arcs created", totalShortcuts)
	return nil
}
