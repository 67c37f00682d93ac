package api

import (
	"net/http"
	"sync"

	"waste-collection-sim/internal/api/handlers"
	"waste-collection-sim/internal/ports"
)

// NewRouter wires the view-layer endpoints over the simulation ports and
// returns an http.Handler. A single mutex serializes state reads and
// control commands, so the simulation is only ever observed between steps.
func NewRouter(view ports.SimulationView, control ports.SimulationControl) http.Handler {
	mux := http.NewServeMux()

	var mu sync.Mutex
	stateHandler := &handlers.StateHandler{View: view, Mu: &mu}
	controlHandler := &handlers.ControlHandler{Control: control, View: view, Mu: &mu}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/state", stateHandler.State)
	mux.HandleFunc("/step", controlHandler.Step)
	mux.HandleFunc("/run", controlHandler.Run)
	mux.HandleFunc("/reset", controlHandler.Reset)

	return loggingMiddleware(mux)
}
