package loader

import (
	"errors"
	"fmt"
	"log"

	"waste-collection-sim/internal/domain"
	"waste-collection-sim/internal/graph"
)

// BuildWorld maps scenario locations onto graph nodes and constructs the
// facilities aggregate and road network. Facilities and bins are mapped
// by their id strings (the same strings edges reference); edges are added
// one-directional exactly as listed, so data files carry both directions
// for two-way roads.
func BuildWorld(sc *Scenario) (*graph.Graph, *domain.Facilities, error) {
	if sc == nil {
		return nil, nil, errors.New("build world: scenario is nil")
	}

	mapper := NewLocationMapper()
	world := &domain.Facilities{}

	for _, rec := range sc.Facilities {
		ft, err := domain.ParseFacilityType(rec.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("build world: facility %q: %w", rec.ID, err)
		}
		node := mapper.GetOrCreate(rec.ID)
		world.AddFacility(domain.Facility{ID: rec.ID, Type: ft, NodeID: node, X: rec.X, Y: rec.Y})
	}

	for _, rec := range sc.Bins {
		node := mapper.GetOrCreate(rec.ID)
		world.AddBin(domain.NewBin(rec.ID, rec.Location, rec.Capacity, rec.CurrentFill, rec.FillRate, node))
	}

	if len(sc.Trucks) == 0 {
		log.Printf("build world: no trucks in data file, using an empty truck")
	} else {
		// Only the first truck is used; the fleet has a single vehicle.
		rec := sc.Trucks[0]
		startNode, ok := mapper.Node(rec.Position)
		if !ok {
			log.Printf("build world: truck position %q not found, defaulting to node 0", rec.Position)
			startNode = 0
		}
		world.SetTruck(domain.NewTruck(rec.ID, rec.Capacity, rec.CurrentLoad, startNode))
	}

	g := graph.New(mapper.Count())
	for _, rec := range sc.Edges {
		from, ok := mapper.Node(rec.From)
		if !ok {
			log.Printf("build world: edge endpoint %q not found, skipping edge", rec.From)
			continue
		}
		to, ok := mapper.Node(rec.To)
		if !ok {
			log.Printf("build world: edge endpoint %q not found, skipping edge", rec.To)
			continue
		}
		g.AddEdge(from, to, rec.Distance)
	}

	return g, world, nil
}
