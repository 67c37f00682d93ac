package handlers

import (
	"net/http"
	"sync"

	"waste-collection-sim/internal/api/dto"
	"waste-collection-sim/internal/ports"
)

// StateHandler exposes the read-only simulation snapshot. The shared
// mutex serializes reads against control commands so every response
// observes between-step state.
type StateHandler struct {
	View ports.SimulationView
	Mu   *sync.Mutex
}

func (h *StateHandler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.Mu.Lock()
	res := snapshotState(h.View)
	h.Mu.Unlock()

	writeJSON(w, r, http.StatusOK, res)
}

func snapshotState(view ports.SimulationView) dto.StateResponse {
	truck := view.TruckState()
	res := dto.StateResponse{
		CurrentTime:          view.CurrentTime(),
		MaxTime:              view.MaxTime(),
		Finished:             view.IsFinished(),
		TotalDistance:        view.TotalDistance(),
		CollectionsCompleted: view.CollectionsCompleted(),
		OverflowCount:        view.OverflowCount(),
		Truck: dto.TruckResponse{
			ID:          truck.ID,
			Capacity:    truck.Capacity,
			Load:        truck.Load,
			CurrentNode: truck.CurrentNode,
		},
		Bins: make([]dto.BinResponse, 0, view.BinCount()),
	}

	for i := 0; i < view.BinCount(); i++ {
		b, ok := view.BinState(i)
		if !ok {
			continue
		}
		res.Bins = append(res.Bins, dto.BinResponse{
			ID:          b.ID,
			Location:    b.Location,
			Capacity:    b.Capacity,
			CurrentFill: b.CurrentFill,
			FillRate:    b.FillRate,
			NodeID:      b.NodeID,
			Overflowing: b.Overflowing,
		})
	}

	return res
}
