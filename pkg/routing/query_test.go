package routing

import (
	"errors"
	"testing"

	"github.com/azybler/bikecch/pkg/graph"
)

func TestShortestPathSameVertexIsEmpty(t *testing.T) {
	g := starGraph(t)

	path, err := ShortestPath(g, graph.AddCombine, 1, 1)
	if err != nil {
		t.Fatalf("ShortestPath(s,s): unexpected error %v", err)
	}
	if len(path) != 0 {
		t.Errorf("ShortestPath(s,s) = %v, want empty", path)
	}
}

func TestShortestPathUnknownVertexIsInvalidArgument(t *testing.T) {
	g := starGraph(t)

	if _, err := ShortestPath(g, graph.AddCombine, 0, 99); !errors.Is(err, graph.ErrInvalidArgument) {
		t.Errorf("ShortestPath(_, unknown target) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := ShortestPath(g, graph.AddCombine, 99, 0); !errors.Is(err, graph.ErrInvalidArgument) {
		t.Errorf("ShortestPath(unknown source, _) error = %v, want ErrInvalidArgument", err)
	}
}

func TestShortestPathUnreachableTargetIsNotAnError(t *testing.T) {
	g := starGraph(t)
	// starGraph already uses ids 0-2 and ranks 0-2; the next dense id is 3.
	if err := g.AddVertex(graph.Vertex{ID: 3}); err != nil {
		t.Fatalf("AddVertex: %v", err)
	}
	if err := g.SetRank(3, 3); err != nil {
		t.Fatalf("SetRank: %v", err)
	}

	path, err := ShortestPath(g, graph.AddCombine, 1, 3)
	if err != nil {
		t.Fatalf("ShortestPath(unreachable): unexpected error %v", err)
	}
	if len(path) != 0 {
		t.Errorf("ShortestPath(unreachable) = %v, want empty", path)
	}
}

func TestShortestPathUsesDirectPricedArc(t *testing.T) {
	g := starGraph(t)

	path, err := ShortestPath(g, graph.AddCombine, 0, 1)
	if err != nil {
		t.Fatalf("ShortestPath(0,1): %v", err)
	}
	if len(path) != 1 || path[0].Key != (graph.ArcKey{Source: 0, Target: 1}) {
		t.Errorf("ShortestPath(0,1) = %v, want the single direct arc 0->1", path)
	}
}

func TestShortestPathFallsBackToDijkstraAndUnpacksShortcuts(t *testing.T) {
	g := nestedGraph(t)

	// b (1) and d (3) share no direct arc in either the real or shortcut
	// set, so this must go through the label-setting fallback rather than
	// the direct-arc branch.
	const b, d = 1, 3
	if _, ok := g.GetArc(b, d); ok {
		t.Fatal("test fixture invalid: b and d should have no direct arc")
	}

	path, err := ShortestPath(g, graph.AddCombine, b, d)
	if err != nil {
		t.Fatalf("ShortestPath(b,d): %v", err)
	}

	wantKeys := []graph.ArcKey{{Source: b, Target: 2}, {Source: 2, Target: d}}
	if len(path) != len(wantKeys) {
		t.Fatalf("ShortestPath(b,d) has %d arcs, want %d: %v", len(path), len(wantKeys), path)
	}
	var total float64
	for i, want := range wantKeys {
		if path[i].Key != want {
			t.Errorf("path[%d].Key = %v, want %v", i, path[i].Key, want)
		}
		if path[i].Shortcut {
			t.Errorf("path[%d] is still marked as a shortcut", i)
		}
		total += path[i].Cost
	}
	if total != 5 {
		t.Errorf("ShortestPath(b,d) total cost = %v, want 5", total)
	}
}

func TestShortestPathOverNestedShortcutsUnpacksFully(t *testing.T) {
	g := nestedGraph(t)

	const a, e = 0, 4
	path, err := ShortestPath(g, graph.AddCombine, e, a)
	if err != nil {
		t.Fatalf("ShortestPath(e,a): %v", err)
	}

	wantKeys := []graph.ArcKey{{Source: e, Target: 2}, {Source: 2, Target: 1}, {Source: 1, Target: a}}
	if len(path) != len(wantKeys) {
		t.Fatalf("ShortestPath(e,a) has %d arcs, want %d: %v", len(path), len(wantKeys), path)
	}
	for i, want := range wantKeys {
		if path[i].Key != want {
			t.Errorf("path[%d].Key = %v, want %v", i, path[i].Key, want)
		}
	}
}
