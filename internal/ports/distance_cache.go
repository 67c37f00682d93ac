package ports

import "context"

// DistanceCache persists shortest-path distances across runs, keyed by
// scenario. Entry keys are "from|to" node-id pairs.
type DistanceCache interface {
	// GetMany returns every cached distance entry for a scenario.
	GetMany(ctx context.Context, scenario string) (map[string]int, error)
	// PutMany stores distance entries for a scenario.
	PutMany(ctx context.Context, scenario string, entries map[string]int) error
}
