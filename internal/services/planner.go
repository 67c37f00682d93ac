package services

import (
	"math"

	"waste-collection-sim/internal/domain"
	"waste-collection-sim/internal/graph"
)

// DistanceEstimator resolves shortest-path distances between graph nodes.
// *graph.Graph satisfies it directly; WarmDistances wraps it with a
// precomputed matrix.
type DistanceEstimator interface {
	ShortestDistance(from, to int) int
}

// PlannerConfig tunes route scoring.
type PlannerConfig struct {
	// UrgencyWeight multiplies overflow risk in the bin score so that
	// urgency dominates travel distance. It must exceed the largest
	// shortest-path distance in the deployment's network.
	UrgencyWeight int
	// CriticalThresholdDays configures the overflow predictor.
	CriticalThresholdDays int
}

// DefaultPlannerConfig returns the standard weight of 1000, sized for
// networks whose distances stay below it.
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		UrgencyWeight:         1000,
		CriticalThresholdDays: DefaultCriticalThreshold,
	}
}

// RoutePlanner builds one-day collection routes with a greedy
// urgency-then-distance policy. Planning never mutates the facilities
// aggregate: the forward simulation of collections and disposal detours
// runs on a scratch copy of bin fills and truck state.
type RoutePlanner struct {
	distances DistanceEstimator
	predictor OverflowPredictor
	cfg       PlannerConfig
}

func NewRoutePlanner(distances DistanceEstimator, cfg PlannerConfig) *RoutePlanner {
	if cfg.UrgencyWeight <= 0 {
		cfg.UrgencyWeight = DefaultPlannerConfig().UrgencyWeight
	}
	if cfg.CriticalThresholdDays <= 0 {
		cfg.CriticalThresholdDays = DefaultCriticalThreshold
	}
	return &RoutePlanner{
		distances: distances,
		predictor: NewOverflowPredictor(cfg.CriticalThresholdDays),
		cfg:       cfg,
	}
}

// Predictor exposes the planner's overflow predictor.
func (rp *RoutePlanner) Predictor() OverflowPredictor { return rp.predictor }

// Distance resolves a shortest-path distance, preserving the
// graph.Unreachable sentinel.
func (rp *RoutePlanner) Distance(from, to int) int {
	return rp.distances.ShortestDistance(from, to)
}

// scoreBin combines urgency and travel cost. Lower wins; the weight keeps
// risk dominant whenever distances stay below it.
func (rp *RoutePlanner) scoreBin(b *domain.Bin, distance int) float64 {
	return rp.predictor.OverflowRisk(b)*float64(rp.cfg.UrgencyWeight) + float64(distance)
}

// SelectNextBin picks the lowest-scoring non-empty bin relative to the
// truck's current position. Ties keep the lowest index. ok is false when
// every bin is empty.
func (rp *RoutePlanner) SelectNextBin(f *domain.Facilities) (int, bool) {
	fills := make([]int, f.BinCount())
	for i := range fills {
		fills[i] = f.Bin(i).CurrentFill
	}
	return rp.selectNext(f, fills, f.Truck().CurrentNode)
}

// selectNext scores candidates against scratch fill levels. Bins already
// emptied during forward simulation carry a zero scratch fill and are
// skipped; all others still match their real state, so predictor scores
// stay valid.
func (rp *RoutePlanner) selectNext(f *domain.Facilities, fills []int, currentNode int) (int, bool) {
	bestScore := math.Inf(1)
	bestIndex := -1

	for i := 0; i < f.BinCount(); i++ {
		if fills[i] == 0 {
			continue
		}
		b := f.Bin(i)
		score := rp.scoreBin(b, rp.Distance(currentNode, b.NodeID))
		if score < bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex == -1 {
		return 0, false
	}
	return bestIndex, true
}

// FindNearestDisposal returns the node id of the disposal site closest to
// currentNode. Ties keep the first site in insertion order. ok is false
// when no disposal site exists or none is reachable.
func (rp *RoutePlanner) FindNearestDisposal(currentNode int, f *domain.Facilities) (int, bool) {
	nearest := 0
	minDistance := graph.Unreachable
	found := false

	for _, node := range f.DisposalNodes() {
		if d := rp.Distance(currentNode, node); d < minDistance {
			minDistance = d
			nearest = node
			found = true
		}
	}

	return nearest, found
}

// HasCriticalBins reports whether any bin is overflowing or projected to
// overflow within the critical threshold.
func (rp *RoutePlanner) HasCriticalBins(f *domain.Facilities) bool {
	for i := 0; i < f.BinCount(); i++ {
		if rp.predictor.IsCritical(f.Bin(i)) {
			return true
		}
	}
	return false
}

// PlanRoute builds the day's route starting from the depot (or the
// truck's position when no depot exists). Collections are simulated on
// scratch state. When the next pick would not fit, the truck detours to
// the nearest disposal site, unloads, and selection runs again from that
// site; without any disposal site the route ends instead of looping. A bin larger than
// the whole truck gets a single planned visit and execution clamps the
// collected amount.
func (rp *RoutePlanner) PlanRoute(f *domain.Facilities) domain.Route {
	var route domain.Route

	truck := f.Truck()
	load := truck.Load
	capacity := truck.Capacity

	currentNode := truck.CurrentNode
	if depot, ok := f.DepotNode(); ok {
		currentNode = depot
	}

	fills := make([]int, f.BinCount())
	for i := 0; i < f.BinCount(); i++ {
		fills[i] = f.Bin(i).CurrentFill
	}

	for {
		next, ok := rp.selectNext(f, fills, currentNode)
		if !ok {
			break
		}
		bin := f.Bin(next)

		if fills[next] > capacity-load {
			if fills[next] > capacity {
				// Oversized load: no detour makes it fit entirely.
				rp.addLeg(&route, currentNode, bin.NodeID)
				route.AddBin(next)
				route.NeedsDisposal = true
				currentNode = bin.NodeID
				load = capacity
				fills[next] = 0
				continue
			}

			disposal, ok := rp.FindNearestDisposal(currentNode, f)
			if !ok {
				break
			}
			rp.addLeg(&route, currentNode, disposal)
			route.NeedsDisposal = true
			currentNode = disposal
			load = 0
			continue
		}

		rp.addLeg(&route, currentNode, bin.NodeID)
		route.AddBin(next)
		load += fills[next]
		currentNode = bin.NodeID
		fills[next] = 0
	}

	return route
}

// addLeg accrues one finite positive travel leg into the planned distance.
func (rp *RoutePlanner) addLeg(route *domain.Route, from, to int) {
	if d := rp.Distance(from, to); d != graph.Unreachable && d > 0 {
		route.TotalDistance += d
	}
}
