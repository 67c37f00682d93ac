package domain

// Route is the ordered bin-visit plan for a single day, plus the planned
// travel distance and a flag for whether a disposal detour is required.
// A route is produced by the planner, executed once by the simulation,
// and then discarded.
type Route struct {
	Bins          []int
	TotalDistance int
	NeedsDisposal bool
}

// AddBin appends a bin index to the visit sequence.
func (r *Route) AddBin(index int) { r.Bins = append(r.Bins, index) }

// Length reports the number of planned visits.
func (r *Route) Length() int { return len(r.Bins) }
