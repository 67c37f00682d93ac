package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"waste-collection-sim/internal/graph"
	"waste-collection-sim/internal/ports"
)

// warmConcurrency bounds parallel shortest-path computations during
// warm-up.
const warmConcurrency = 5

// DistanceMatrix is a precomputed pairwise shortest-distance table with
// live Dijkstra fallback for pairs outside the warmed node set.
type DistanceMatrix struct {
	graph *graph.Graph
	pairs map[[2]int]int
}

// ShortestDistance implements DistanceEstimator.
func (m *DistanceMatrix) ShortestDistance(from, to int) int {
	if d, ok := m.pairs[[2]int{from, to}]; ok {
		return d
	}
	return m.graph.ShortestDistance(from, to)
}

func pairKey(from, to int) string {
	return strconv.Itoa(from) + "|" + strconv.Itoa(to)
}

func parsePairKey(key string) (from, to int, ok bool) {
	left, right, found := strings.Cut(key, "|")
	if !found {
		return 0, 0, false
	}
	from, err := strconv.Atoi(left)
	if err != nil {
		return 0, 0, false
	}
	to, err = strconv.Atoi(right)
	if err != nil {
		return 0, 0, false
	}
	return from, to, true
}

// WarmDistances precomputes shortest distances between every pair of the
// given nodes, preferring cached entries and persisting fresh ones under
// the scenario key. Cache failures degrade to computing and never fail
// the warm-up. Rows are computed with bounded concurrency; only a context
// cancellation produces an error.
func WarmDistances(ctx context.Context, g *graph.Graph, nodes []int, cache ports.DistanceCache, scenario string) (*DistanceMatrix, error) {
	matrix := &DistanceMatrix{graph: g, pairs: make(map[[2]int]int, len(nodes)*len(nodes))}

	seen := make(map[int]struct{}, len(nodes))
	uniq := make([]int, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}

	if cache != nil {
		cached, err := cache.GetMany(ctx, scenario)
		if err != nil {
			log.Printf("distance cache read failed scenario=%s err=%v", scenario, err)
		}
		for key, d := range cached {
			if from, to, ok := parsePairKey(key); ok {
				matrix.pairs[[2]int{from, to}] = d
			}
		}
	}

	// One worker per origin; workers write disjoint rows and only read
	// the cached pairs map.
	rows := make([][]int, len(uniq))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(warmConcurrency)
	for i, origin := range uniq {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := make([]int, len(uniq))
			for j, target := range uniq {
				if d, ok := matrix.pairs[[2]int{origin, target}]; ok {
					row[j] = d
					continue
				}
				row[j] = g.ShortestDistance(origin, target)
			}
			rows[i] = row
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("warm distances: %w", err)
	}

	fresh := make(map[string]int)
	for i, origin := range uniq {
		for j, target := range uniq {
			pair := [2]int{origin, target}
			if _, ok := matrix.pairs[pair]; ok {
				continue
			}
			matrix.pairs[pair] = rows[i][j]
			fresh[pairKey(origin, target)] = rows[i][j]
		}
	}

	if cache != nil && len(fresh) > 0 {
		if err := cache.PutMany(ctx, scenario, fresh); err != nil {
			log.Printf("distance cache write failed scenario=%s err=%v", scenario, err)
		}
	}

	return matrix, nil
}
