// Package aggregate reduces repeated simulation runs into summary
// statistics. Aggregation is a pure function: the same run sequence always
// produces bit-identical output.
package aggregate

import (
	"github.com/montanaflynn/stats"

	"coordlab/domain/core"
	"coordlab/domain/experiment"
)

// Aggregator computes per-metric summary statistics across runs.
type Aggregator struct{}

// New creates a run aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Aggregate reduces a non-empty ordered run sequence into AggregatedStats.
// Mean and std use population definitions throughout the pipeline.
func (a *Aggregator) Aggregate(runs []experiment.RunRecord) (experiment.AggregatedStats, error) {
	if len(runs) == 0 {
		return experiment.AggregatedStats{}, core.ErrInsufficientData
	}

	efficiencies := make([]float64, len(runs))
	coordRates := make([]float64, len(runs))
	food := make([]float64, len(runs))
	dangers := make([]float64, len(runs))
	delivery := make([]float64, len(runs))
	for i, r := range runs {
		efficiencies[i] = r.NetEfficiency
		coordRates[i] = r.CoordinationRate
		food[i] = r.FoodCollected
		dangers[i] = r.DangersHit
		delivery[i] = r.MessageDeliveryRate
	}

	// Inputs are non-empty, so the stats calls below cannot fail.
	effMean, _ := stats.Mean(efficiencies)
	effStd, _ := stats.StandardDeviationPopulation(efficiencies)
	effMin, _ := stats.Min(efficiencies)
	effMax, _ := stats.Max(efficiencies)

	coordMean, _ := stats.Mean(coordRates)
	coordStd, _ := stats.StandardDeviationPopulation(coordRates)

	foodMean, _ := stats.Mean(food)
	foodTotal, _ := stats.Sum(food)

	dangerMean, _ := stats.Mean(dangers)
	dangerTotal, _ := stats.Sum(dangers)

	deliveryMean, _ := stats.Mean(delivery)
	deliveryStd, _ := stats.StandardDeviationPopulation(delivery)

	return experiment.AggregatedStats{
		Efficiency: experiment.RangeStats{
			Mean: effMean,
			Std:  effStd,
			Min:  effMin,
			Max:  effMax,
		},
		Coordination: experiment.DistStats{Mean: coordMean, Std: coordStd},
		Food:         experiment.CountStats{Mean: foodMean, Total: foodTotal},
		Dangers:      experiment.CountStats{Mean: dangerMean, Total: dangerTotal},
		MsgDelivery:  experiment.DistStats{Mean: deliveryMean, Std: deliveryStd},
	}, nil
}
