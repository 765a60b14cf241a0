// Package compare ranks aggregated experiment results.
package compare

import (
	"coordlab/domain/core"
	"coordlab/domain/experiment"
)

// Selector identifies the best performing experiment in a batch.
type Selector struct{}

// New creates a comparative selector.
func New() *Selector {
	return &Selector{}
}

// Best returns the result with maximal mean efficiency. Ties break to the
// first occurrence, so the argmax is stable in input order.
func (s *Selector) Best(results []*experiment.Result) (*experiment.Result, error) {
	if len(results) == 0 {
		return nil, core.ErrEmptyBatch
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Aggregated.Efficiency.Mean > best.Aggregated.Efficiency.Mean {
			best = r
		}
	}
	return best, nil
}

// SummaryRow is the tabular projection of one experiment for reporting.
type SummaryRow struct {
	Name             string  `json:"name"`
	Agents           int     `json:"agents"`
	BandwidthBits    float64 `json:"bandwidth_bits"`
	MeanEfficiency   float64 `json:"mean_efficiency"`
	StdEfficiency    float64 `json:"std_efficiency"`
	MeanCoordination float64 `json:"mean_coordination"`
	Runs             int     `json:"runs"`
}

// SummaryTable projects a batch into rows, preserving input order.
func (s *Selector) SummaryTable(results []*experiment.Result) []SummaryRow {
	rows := make([]SummaryRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, SummaryRow{
			Name:             r.Name,
			Agents:           r.Config.NumAgents,
			BandwidthBits:    r.Config.BandwidthBits,
			MeanEfficiency:   r.Aggregated.Efficiency.Mean,
			StdEfficiency:    r.Aggregated.Efficiency.Std,
			MeanCoordination: r.Aggregated.Coordination.Mean,
			Runs:             len(r.Runs),
		})
	}
	return rows
}
