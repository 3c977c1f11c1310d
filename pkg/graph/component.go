package graph

// LargestComponentSize scans every vertex with an iterative BFS over
// outIndex and returns the size of the largest component found alongside
// the graph's total vertex count. The BFS follows outgoing arcs only; it
// does not add reverse arcs, so the result is the largest weakly connected
// component only when every arc has its reverse, as holds for the graph
// Build produces (see builder.go). The builder logs this after densification so
// a caller can see whether the 2 km connector pass actually knit the
// bike-lane records into one reachable network.
func LargestComponentSize(g *Graph) (largest, total int) {
	n := len(g.vertices)
	if n == 0 {
		return 0, 0
	}

	visited := make([]bool, n)
	var queue []uint32

	for start := uint32(0); int(start) < n; start++ {
		if visited[start] {
			continue
		}

		size := 0
		visited[start] = true
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			size++
			for _, v := range g.outIndex[u] {
				if !visited[v] {
					visited[v] = true
					queue = append(queue, v)
				}
			}
		}

		if size > largest {
			largest = size
		}
	}

	return largest, n
}
