package services

import (
	"waste-collection-sim/internal/domain"
	"waste-collection-sim/internal/graph"
	"waste-collection-sim/internal/ports"
)

// Simulation owns the day loop of the waste-collection service. Each Step
// is one day and runs its phases in a fixed order: fill, overflow
// accounting, planning, route execution, depot return, emergency cleanup,
// time advance. All operations are total; state is consistent between
// steps only.
type Simulation struct {
	graph      *graph.Graph
	facilities *domain.Facilities
	planner    *RoutePlanner

	currentTime int
	maxTime     int

	overflowCount        int
	totalDistance        int
	collectionsCompleted int
}

// NewSimulation wires a simulation with a default planner computing
// distances straight from the graph.
func NewSimulation(g *graph.Graph, f *domain.Facilities, days int) *Simulation {
	return NewSimulationWith(g, f, NewRoutePlanner(g, DefaultPlannerConfig()), days)
}

// NewSimulationWith wires a simulation with a caller-provided planner
// (custom config or a warmed distance matrix).
func NewSimulationWith(g *graph.Graph, f *domain.Facilities, planner *RoutePlanner, days int) *Simulation {
	if days < 0 {
		days = 0
	}
	return &Simulation{graph: g, facilities: f, planner: planner, maxTime: days}
}

// Step advances the simulation by one day.
func (s *Simulation) Step() {
	f := s.facilities

	// Fill phase.
	for i := 0; i < f.BinCount(); i++ {
		f.Bin(i).UpdateFill()
	}

	// Overflow accounting before planning: every bin overflowing now,
	// whether it just filled or carried over, counts once.
	for i := 0; i < f.BinCount(); i++ {
		if f.Bin(i).IsOverflowing() {
			s.overflowCount++
		}
	}

	// Plan phase. The planner is pure, but the snapshot discipline keeps
	// the contract explicit: entity state after planning equals entry.
	route := s.planRestored()

	// Execute phase.
	truck := f.Truck()
	current := truck.CurrentNode
	for _, binIndex := range route.Bins {
		bin := f.Bin(binIndex)
		if bin == nil {
			continue
		}
		current = s.visitBin(bin, current)
	}

	// Return to depot.
	if depot, ok := f.DepotNode(); ok && current != depot {
		s.addDistance(current, depot)
		truck.MoveTo(depot)
	}

	// Emergency cleanup: an extra same-day pass servicing only bins that
	// are overflowing right now. Critical-but-not-overflowing bins wait
	// for the next day's regular plan.
	if s.planner.HasCriticalBins(f) {
		s.emergencyCleanup()
	}

	s.currentTime++
}

// planRestored runs the planner between a snapshot and restore of the
// aggregate, so a planner regression can never leak forward-simulated
// state into the executed day.
func (s *Simulation) planRestored() domain.Route {
	before := s.facilities.Snapshot()
	route := s.planner.PlanRoute(s.facilities)
	s.facilities.Restore(before)
	return route
}

// visitBin moves the truck to the bin, collects as much as fits, and
// detours to a disposal site when the truck fills up. Returns the truck's
// node after the visit.
func (s *Simulation) visitBin(bin *domain.Bin, current int) int {
	truck := s.facilities.Truck()

	s.addDistance(current, bin.NodeID)
	truck.MoveTo(bin.NodeID)
	current = bin.NodeID

	amount := bin.CurrentFill
	if r := truck.RemainingCapacity(); amount > r {
		amount = r
	}
	if amount > 0 {
		truck.Collect(amount)
		bin.Collect(amount)
		s.collectionsCompleted++
	}

	if truck.IsFull() {
		if disposal, ok := s.planner.FindNearestDisposal(current, s.facilities); ok {
			s.addDistance(current, disposal)
			truck.MoveTo(disposal)
			truck.Unload()
			current = disposal
		}
	}

	return current
}

// emergencyCleanup plans a fresh route and services only the bins in it
// that are overflowing at this moment.
func (s *Simulation) emergencyCleanup() {
	f := s.facilities
	route := s.planRestored()

	current := f.Truck().CurrentNode
	for _, binIndex := range route.Bins {
		bin := f.Bin(binIndex)
		if bin == nil || !bin.IsOverflowing() {
			continue
		}
		current = s.visitBin(bin, current)
	}
}

// addDistance accrues finite positive shortest-path distances only;
// unreachable legs move the cursor without adding to the total.
func (s *Simulation) addDistance(from, to int) {
	if d := s.planner.Distance(from, to); d != graph.Unreachable && d > 0 {
		s.totalDistance += d
	}
}

// Run steps until the simulation is finished.
func (s *Simulation) Run() {
	for !s.IsFinished() {
		s.Step()
	}
}

// Reset zeroes the clock and the counters. Restoring bins and truck to
// their initial state is the caller's job; Session does both.
func (s *Simulation) Reset() {
	s.currentTime = 0
	s.overflowCount = 0
	s.totalDistance = 0
	s.collectionsCompleted = 0
}

func (s *Simulation) IsFinished() bool { return s.currentTime >= s.maxTime }

func (s *Simulation) CurrentTime() int { return s.currentTime }

func (s *Simulation) MaxTime() int { return s.maxTime }

func (s *Simulation) OverflowCount() int { return s.overflowCount }

func (s *Simulation) TotalDistance() int { return s.totalDistance }

func (s *Simulation) CollectionsCompleted() int { return s.collectionsCompleted }

// Facilities exposes the aggregate for hosts and tests. Views must only
// read between steps.
func (s *Simulation) Facilities() *domain.Facilities { return s.facilities }

// Planner exposes the embedded route planner.
func (s *Simulation) Planner() *RoutePlanner { return s.planner }

// BinCount implements ports.SimulationView.
func (s *Simulation) BinCount() int { return s.facilities.BinCount() }

// BinState implements ports.SimulationView.
func (s *Simulation) BinState(i int) (ports.BinState, bool) {
	b := s.facilities.Bin(i)
	if b == nil {
		return ports.BinState{}, false
	}
	return ports.BinState{
		ID:          b.ID,
		Location:    b.Location,
		Capacity:    b.Capacity,
		CurrentFill: b.CurrentFill,
		FillRate:    b.FillRate,
		NodeID:      b.NodeID,
		Overflowing: b.IsOverflowing(),
	}, true
}

// TruckState implements ports.SimulationView.
func (s *Simulation) TruckState() ports.TruckState {
	t := s.facilities.Truck()
	return ports.TruckState{
		ID:          t.ID,
		Capacity:    t.Capacity,
		Load:        t.Load,
		CurrentNode: t.CurrentNode,
	}
}
