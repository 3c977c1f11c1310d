package graph

import "sort"

// AssignDegreeRanks assigns contraction ranks by ascending out-degree,
// breaking ties by vertex id. Low-degree vertices contract first, a common
// contraction-order heuristic for CH-family preprocessors when no
// precomputed edge-difference ordering is available. Rank assignment is a
// required input to Preprocess (spec §9: it is the caller's
// responsibility, not the preprocessor's); this is the ordering cmd/route
// uses.
func AssignDegreeRanks(g *Graph) error {
	n := g.NumVertices()
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = uint32(i)
	}

	sort.SliceStable(ids, func(i, j int) bool {
		di, dj := len(g.outIndex[ids[i]]), len(g.outIndex[ids[j]])
		if di != dj {
			return di < dj
		}
		return ids[i] < ids[j]
	})

	for rank, id := range ids {
		if err := g.SetRank(id, uint32(rank)); err != nil {
			return err
		}
	}
	return nil
}
