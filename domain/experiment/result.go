package experiment

import (
	"coordlab/domain/core"
)

// Result is the complete outcome of one experiment: its config, the ordered
// raw runs, and their aggregation. Immutable after aggregation; the batch
// runner owns it for the life of a batch.
type Result struct {
	ID         core.ExperimentID `json:"id"`
	Name       string            `json:"name"`
	Config     Config            `json:"config"`
	Runs       []RunRecord       `json:"runs"`
	Aggregated AggregatedStats   `json:"aggregated"`
	CreatedAt  core.Timestamp    `json:"created_at"`
}

// Efficiencies projects the per-run net efficiency values in run order.
func (r *Result) Efficiencies() []float64 {
	out := make([]float64, len(r.Runs))
	for i, run := range r.Runs {
		out[i] = run.NetEfficiency
	}
	return out
}

// Fingerprint produces a deterministic hash over the experiment identity
// (name and config), independent of when it ran.
func (r *Result) Fingerprint() core.Hash {
	return core.NewHash("experiment", r.Name, r.Config.Hash().String())
}
