package services

import (
	"context"
	"errors"
	"testing"

	"waste-collection-sim/internal/graph"
)

type fakeDistanceCache struct {
	entries map[string]int
	gets    int
	puts    int
	fail    bool
}

func (c *fakeDistanceCache) GetMany(ctx context.Context, scenario string) (map[string]int, error) {
	c.gets++
	if c.fail {
		return nil, errors.New("cache down")
	}
	out := make(map[string]int, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out, nil
}

func (c *fakeDistanceCache) PutMany(ctx context.Context, scenario string, entries map[string]int) error {
	c.puts++
	if c.fail {
		return errors.New("cache down")
	}
	for k, v := range entries {
		c.entries[k] = v
	}
	return nil
}

func warmTestGraph() *graph.Graph {
	g := graph.New(4)
	g.AddBidirectionalEdge(0, 1, 5)
	g.AddBidirectionalEdge(1, 2, 3)
	return g
}

func TestWarmDistancesComputesAllPairs(t *testing.T) {
	g := warmTestGraph()
	fc := &fakeDistanceCache{entries: map[string]int{}}

	matrix, err := WarmDistances(context.Background(), g, []int{0, 1, 2}, fc, "test.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := matrix.ShortestDistance(0, 2); got != 8 {
		t.Fatalf("matrix distance 0->2 = %d, want 8", got)
	}
	if got := matrix.ShortestDistance(2, 0); got != 8 {
		t.Fatalf("matrix distance 2->0 = %d, want 8", got)
	}
	if fc.puts != 1 {
		t.Fatalf("puts = %d, want 1", fc.puts)
	}
	if got := fc.entries["0|2"]; got != 8 {
		t.Fatalf("cached 0|2 = %d, want 8", got)
	}
}

func TestWarmDistancesPrefersCachedEntries(t *testing.T) {
	g := warmTestGraph()
	// A deliberately wrong cached value proves the cache is preferred
	// over recomputation.
	fc := &fakeDistanceCache{entries: map[string]int{"0|1": 42}}

	matrix, err := WarmDistances(context.Background(), g, []int{0, 1}, fc, "test.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := matrix.ShortestDistance(0, 1); got != 42 {
		t.Fatalf("matrix distance 0->1 = %d, want the cached 42", got)
	}
}

func TestWarmDistancesDegradesOnCacheFailure(t *testing.T) {
	g := warmTestGraph()
	fc := &fakeDistanceCache{entries: map[string]int{}, fail: true}

	matrix, err := WarmDistances(context.Background(), g, []int{0, 1, 2}, fc, "test.json")
	if err != nil {
		t.Fatalf("cache failure must not fail warm-up: %v", err)
	}
	if got := matrix.ShortestDistance(0, 2); got != 8 {
		t.Fatalf("matrix distance 0->2 = %d, want 8", got)
	}
}

func TestWarmDistancesWithoutCache(t *testing.T) {
	g := warmTestGraph()

	matrix, err := WarmDistances(context.Background(), g, []int{0, 2, 2, 0}, nil, "test.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := matrix.ShortestDistance(0, 2); got != 8 {
		t.Fatalf("matrix distance 0->2 = %d, want 8", got)
	}
}

func TestDistanceMatrixFallsBackToLiveDijkstra(t *testing.T) {
	g := warmTestGraph()

	matrix, err := WarmDistances(context.Background(), g, []int{0, 1}, nil, "test.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Node 2 was never warmed; the matrix computes it on demand.
	if got := matrix.ShortestDistance(0, 2); got != 8 {
		t.Fatalf("fallback distance 0->2 = %d, want 8", got)
	}
	if got := matrix.ShortestDistance(0, 3); got != graph.Unreachable {
		t.Fatalf("fallback distance 0->3 = %d, want Unreachable", got)
	}
}

func TestWarmDistancesCancelledContext(t *testing.T) {
	g := warmTestGraph()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := WarmDistances(ctx, g, []int{0, 1, 2}, nil, "test.json"); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}
