package ports

import (
	"context"

	"coordlab/domain/experiment"
)

// Simulation is the external multi-agent simulation collaborator. The
// analysis pipeline never inspects simulation internals - only the metric
// map an episode declares.
type Simulation interface {
	// Initialize resets the simulation world. A nil seed lets the
	// simulation seed itself (non-reproducible).
	Initialize(ctx context.Context, seed *int64) error

	// RunEpisode steps the simulation and returns its raw metrics.
	// Missing metric keys are treated as 0 by the caller.
	RunEpisode(ctx context.Context, numSteps int) (map[string]float64, error)
}

// SimulationFactory constructs a simulation for one experiment
// configuration. Called once per experiment, before its repetitions.
type SimulationFactory interface {
	New(cfg experiment.Config) (Simulation, error)
}
