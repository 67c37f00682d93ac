package graph

import "math"

// Unreachable is the distance returned when no path exists between two
// nodes, or when either endpoint is outside the graph. Callers must not
// add it to distance totals.
const Unreachable = math.MaxInt

// ShortestDistance computes the shortest-path distance from one node to
// another with Dijkstra's algorithm, stopping as soon as the target is
// finalized. Decrease-key is handled lazily: relaxations push duplicate
// heap entries and stale ones are discarded via the visited set.
//
// Edge weights must be non-negative; there is no negative-edge handling.
func (g *Graph) ShortestDistance(from, to int) int {
	if !g.hasNode(from) || !g.hasNode(to) {
		return Unreachable
	}

	dist := make([]int, g.NodeCount())
	visited := make([]bool, g.NodeCount())
	for i := range dist {
		dist[i] = Unreachable
	}
	dist[from] = 0

	var pq PriorityQueue[int]
	pq.Push(from, 0)

	for {
		current, ok := pq.Pop()
		if !ok {
			break
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		if current == to {
			break
		}

		for _, e := range g.adj[current] {
			if visited[e.To] {
				continue
			}
			if d := dist[current] + e.Weight; d < dist[e.To] {
				dist[e.To] = d
				pq.Push(e.To, d)
			}
		}
	}

	return dist[to]
}
