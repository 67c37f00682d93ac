package domain

import "fmt"

// FacilityType distinguishes the depot from disposal sites.
type FacilityType int

const (
	FacilityDepot FacilityType = iota
	FacilityDisposal
)

// ParseFacilityType converts the scenario-file type tag into a FacilityType.
func ParseFacilityType(s string) (FacilityType, error) {
	switch s {
	case "depot":
		return FacilityDepot, nil
	case "disposal":
		return FacilityDisposal, nil
	}
	return 0, fmt.Errorf("parse facility type: unknown type %q", s)
}

func (ft FacilityType) String() string {
	switch ft {
	case FacilityDepot:
		return "depot"
	case FacilityDisposal:
		return "disposal"
	}
	return "unknown"
}

// Facility is a fixed service site on the road network. Coordinates are
// display-only and play no part in routing.
type Facility struct {
	ID     string
	Type   FacilityType
	NodeID int
	X      int
	Y      int
}
