package domain

// Facilities owns every physical asset of the service: the bins, the depot
// and disposal sites, and the single truck. Collections are append-only,
// insertion order is preserved, and indices stay stable for the lifetime of
// the aggregate.
type Facilities struct {
	bins       []Bin
	facilities []Facility
	truck      Truck
}

// AddBin appends a bin. Its index is BinCount()-1 afterwards.
func (f *Facilities) AddBin(b Bin) { f.bins = append(f.bins, b) }

// AddFacility appends a facility.
func (f *Facilities) AddFacility(fc Facility) { f.facilities = append(f.facilities, fc) }

// SetTruck installs the single truck of the fleet.
func (f *Facilities) SetTruck(t Truck) { f.truck = t }

// Bin returns a mutable handle to the bin at index i, or nil when the
// index is out of range.
func (f *Facilities) Bin(i int) *Bin {
	if i < 0 || i >= len(f.bins) {
		return nil
	}
	return &f.bins[i]
}

// BinCount reports the number of bins.
func (f *Facilities) BinCount() int { return len(f.bins) }

// Facility returns the facility at index i, or nil when out of range.
func (f *Facilities) Facility(i int) *Facility {
	if i < 0 || i >= len(f.facilities) {
		return nil
	}
	return &f.facilities[i]
}

// FacilityCount reports the number of facilities.
func (f *Facilities) FacilityCount() int { return len(f.facilities) }

// Truck returns a mutable handle to the truck.
func (f *Facilities) Truck() *Truck { return &f.truck }

// DepotNode scans the facilities for the depot. ok is false when the
// scenario has none.
func (f *Facilities) DepotNode() (int, bool) {
	for i := range f.facilities {
		if f.facilities[i].Type == FacilityDepot {
			return f.facilities[i].NodeID, true
		}
	}
	return 0, false
}

// DisposalNodes returns the node ids of all disposal sites in insertion
// order. The slice is freshly allocated and owned by the caller.
func (f *Facilities) DisposalNodes() []int {
	nodes := make([]int, 0, len(f.facilities))
	for i := range f.facilities {
		if f.facilities[i].Type == FacilityDisposal {
			nodes = append(nodes, f.facilities[i].NodeID)
		}
	}
	return nodes
}

// Snapshot captures the mutable state of the aggregate: every bin (fill
// level and history) and the truck.
type Snapshot struct {
	bins  []Bin
	truck Truck
}

// Snapshot copies the current bin and truck state.
func (f *Facilities) Snapshot() Snapshot {
	s := Snapshot{bins: make([]Bin, len(f.bins)), truck: f.truck}
	copy(s.bins, f.bins)
	return s
}

// Restore writes a snapshot back into the aggregate. The bin set is
// append-only, so a snapshot taken earlier covers a prefix of the current
// bins; bins added after the snapshot keep their state.
func (f *Facilities) Restore(s Snapshot) {
	copy(f.bins, s.bins)
	f.truck = s.truck
}
