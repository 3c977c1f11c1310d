package graph

import "testing"

func TestAssignDegreeRanksOrdersByOutDegree(t *testing.T) {
	g := New()
	for i := uint32(0); i < 4; i++ {
		mustAddTestVertex(t, g, i)
	}
	// Vertex 0: out-degree 3 (hub). Vertices 1-3: out-degree 1 each (spokes).
	mustAddTestArc(t, g, 0, 1, 1)
	mustAddTestArc(t, g, 0, 2, 1)
	mustAddTestArc(t, g, 0, 3, 1)
	mustAddTestArc(t, g, 1, 0, 1)
	mustAddTestArc(t, g, 2, 0, 1)
	mustAddTestArc(t, g, 3, 0, 1)

	if err := AssignDegreeRanks(g); err != nil {
		t.Fatalf("AssignDegreeRanks: %v", err)
	}

	hub, _ := g.Vertex(0)
	for id := uint32(1); id < 4; id++ {
		spoke, _ := g.Vertex(id)
		if spoke.Rank >= hub.Rank {
			t.Errorf("spoke %d rank %d should be lower than hub rank %d", id, spoke.Rank, hub.Rank)
		}
	}
}

func TestAssignDegreeRanksIsDenseAndUnique(t *testing.T) {
	g := buildLinearGraph(t, 5)
	if err := AssignDegreeRanks(g); err != nil {
		t.Fatalf("AssignDegreeRanks: %v", err)
	}

	seen := make(map[uint32]bool)
	for r := uint32(0); r < 5; r++ {
		v, ok := g.VertexByRank(r)
		if !ok {
			t.Errorf("no vertex found at rank %d", r)
			continue
		}
		seen[v.ID] = true
	}
	if len(seen) != 5 {
		t.Errorf("ranks are not unique: %v", seen)
	}
}
