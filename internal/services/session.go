package services

import "waste-collection-sim/internal/domain"

// Session couples a simulation with a snapshot of its initial state so
// that Reset restores bins and truck along with the clock and counters.
// It is the control surface handed to view layers.
type Session struct {
	sim     *Simulation
	initial domain.Snapshot
}

// NewSession captures the simulation's current state as the reset point.
func NewSession(sim *Simulation) *Session {
	return &Session{sim: sim, initial: sim.Facilities().Snapshot()}
}

func (s *Session) Step() { s.sim.Step() }

func (s *Session) Run() { s.sim.Run() }

// Reset restores the initial entity state and zeroes the simulation
// clock and counters. A subsequent Run reproduces the first run's totals;
// planning and shortest-path tie-breaking are deterministic.
func (s *Session) Reset() {
	s.sim.Facilities().Restore(s.initial)
	s.sim.Reset()
}
