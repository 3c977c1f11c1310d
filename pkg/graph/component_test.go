package graph

import "testing"

func buildLinearGraph(t *testing.T, n int) *Graph {
	t.Helper()
	g := New()
	for i := 0; i < n; i++ {
		if err := g.AddVertex(Vertex{ID: uint32(i), Lat: float64(i), Lon: float64(i)}); err != nil {
			t.Fatalf("AddVertex(%d): %v", i, err)
		}
	}
	for i := 0; i < n-1; i++ {
		if err := g.AddArc(Arc{Key: ArcKey{uint32(i), uint32(i + 1)}, Cost: 1}); err != nil {
			t.Fatalf("AddArc(%d,%d): %v", i, i+1, err)
		}
		if err := g.AddArc(Arc{Key: ArcKey{uint32(i + 1), uint32(i)}, Cost: 1}); err != nil {
			t.Fatalf("AddArc(%d,%d): %v", i+1, i, err)
		}
	}
	return g
}

func TestLargestComponentSizeSingleComponent(t *testing.T) {
	g := buildLinearGraph(t, 3)
	largest, total := LargestComponentSize(g)
	if largest != 3 || total != 3 {
		t.Fatalf("LargestComponentSize = (%d, %d), want (3, 3)", largest, total)
	}
}

func TestLargestComponentSizeTwoComponents(t *testing.T) {
	g := New()
	// Component 1: 0-1-2 (3 vertices).
	for i := 0; i < 3; i++ {
		mustAddTestVertex(t, g, uint32(i))
	}
	mustAddBidirArc(t, g, 0, 1)
	mustAddBidirArc(t, g, 1, 2)
	// Component 2: 3-4 (2 vertices).
	mustAddTestVertex(t, g, 3)
	mustAddTestVertex(t, g, 4)
	mustAddBidirArc(t, g, 3, 4)

	largest, total := LargestComponentSize(g)
	if largest != 3 {
		t.Errorf("largest = %d, want 3", largest)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
}

func TestLargestComponentSizeCountsIsolatedVertexAsItsOwnComponent(t *testing.T) {
	g := New()
	mustAddTestVertex(t, g, 0)
	mustAddTestVertex(t, g, 1)
	mustAddBidirArc(t, g, 0, 1)
	mustAddTestVertex(t, g, 2) // no arcs at all

	largest, total := LargestComponentSize(g)
	if largest != 2 {
		t.Errorf("largest = %d, want 2", largest)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestLargestComponentSizeEmptyGraph(t *testing.T) {
	g := New()
	largest, total := LargestComponentSize(g)
	if largest != 0 || total != 0 {
		t.Errorf("LargestComponentSize on empty graph = (%d, %d), want (0, 0)", largest, total)
	}
}

func mustAddTestVertex(t *testing.T, g *Graph, id uint32) {
	t.Helper()
	if err := g.AddVertex(Vertex{ID: id, Lat: float64(id), Lon: float64(id)}); err != nil {
		t.Fatalf("AddVertex(%d): %v", id, err)
	}
}

func mustAddBidirArc(t *testing.T, g *Graph, u, v uint32) {
	t.Helper()
	if err := g.AddArc(Arc{Key: ArcKey{u, v}, Cost: 1}); err != nil {
		t.Fatalf("AddArc(%d,%d): %v", u, v, err)
	}
	if err := g.AddArc(Arc{Key: ArcKey{v, u}, Cost: 1}); err != nil {
		t.Fatalf("AddArc(%d,%d): %v", v, u, err)
	}
}
