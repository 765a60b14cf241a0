package app

import (
	"errors"
	"log/slog"

	"github.com/montanaflynn/stats"

	"coordlab/adapters/stats/anova"
	"coordlab/adapters/stats/compare"
	"coordlab/adapters/stats/curvefit"
	"coordlab/domain/core"
	"coordlab/domain/experiment"
	"coordlab/domain/report"
)

// ReportService composes batch results and the statistical analyses into
// the structured report contract. Inferential sections that lack data are
// typed-absent with a reason, never silently dropped.
type ReportService struct {
	selector *compare.Selector
	anova    *anova.Engine
	curvefit *curvefit.Engine
	log      *slog.Logger
}

// NewReportService creates a report service.
func NewReportService(logger *slog.Logger) *ReportService {
	return &ReportService{
		selector: compare.New(),
		anova:    anova.New(),
		curvefit: curvefit.New(),
		log:      logger,
	}
}

// Assemble builds the full report for a completed batch.
func (s *ReportService) Assemble(results []*experiment.Result) (*report.Report, error) {
	if len(results) == 0 {
		return nil, core.ErrEmptyBatch
	}

	rep := &report.Report{
		Metadata:         buildMetadata(results),
		ExecutiveSummary: s.buildExecutiveSummary(results),
		DetailedResults:  buildDetailedResults(results),
		Visualizations:   buildVisualizations(results),
		Statistics:       s.buildStatistics(results),
	}
	return rep, nil
}

func buildMetadata(results []*experiment.Result) report.Metadata {
	totalRuns := 0
	for _, r := range results {
		totalRuns += len(r.Runs)
	}
	return report.Metadata{
		GeneratedAt:    core.Now(),
		NumExperiments: len(results),
		TotalRuns:      totalRuns,
	}
}

func (s *ReportService) buildExecutiveSummary(results []*experiment.Result) report.ExecutiveSummary {
	means := make([]float64, len(results))
	for i, r := range results {
		means[i] = r.Aggregated.Efficiency.Mean
	}

	// Assemble already rejected the empty batch.
	best, _ := s.selector.Best(results)
	worstIdx := 0
	for i, m := range means {
		if m < means[worstIdx] {
			worstIdx = i
		}
	}

	mean, _ := stats.Mean(means)
	std, _ := stats.StandardDeviationPopulation(means)

	return report.ExecutiveSummary{
		BestExperiment:  best.Name,
		BestEfficiency:  best.Aggregated.Efficiency.Mean,
		WorstExperiment: results[worstIdx].Name,
		WorstEfficiency: means[worstIdx],
		MeanAcrossAll:   mean,
		StdAcrossAll:    std,
	}
}

func buildDetailedResults(results []*experiment.Result) []report.DetailedResult {
	rows := make([]report.DetailedResult, len(results))
	for i, r := range results {
		rows[i] = report.DetailedResult{
			Name:             r.Name,
			EfficiencyMean:   r.Aggregated.Efficiency.Mean,
			EfficiencyStd:    r.Aggregated.Efficiency.Std,
			CoordinationMean: r.Aggregated.Coordination.Mean,
			FoodMean:         r.Aggregated.Food.Mean,
			DangersMean:      r.Aggregated.Dangers.Mean,
			Config:           r.Config,
		}
	}
	return rows
}

func buildVisualizations(results []*experiment.Result) report.Visualizations {
	n := len(results)
	names := make([]string, n)
	effMeans := make([]float64, n)
	effStds := make([]float64, n)
	coordMeans := make([]float64, n)
	for i, r := range results {
		names[i] = r.Name
		effMeans[i] = r.Aggregated.Efficiency.Mean
		effStds[i] = r.Aggregated.Efficiency.Std
		coordMeans[i] = r.Aggregated.Coordination.Mean
	}

	viz := report.Visualizations{
		EfficiencyComparison: report.BarSeries{
			Labels:    names,
			Values:    effMeans,
			ErrorBars: effStds,
		},
		CoordinationComparison: report.PercentSeries{
			Labels: names,
			Values: coordMeans,
		},
	}

	if n <= report.MaxRadarExperiments {
		axes := []string{"Efficiency", "Coordination", "Food", "Msg Delivery"}
		radar := make([]report.RadarSeries, n)
		for i, r := range results {
			radar[i] = report.RadarSeries{
				Name: r.Name,
				Axes: axes,
				Values: []float64{
					r.Aggregated.Efficiency.Mean,
					r.Aggregated.Coordination.Mean * 10,
					r.Aggregated.Food.Mean,
					r.Aggregated.MsgDelivery.Mean * 10,
				},
			}
		}
		viz.Radar = radar
	}

	return viz
}

// buildStatistics runs the cross-batch ANOVA and the bandwidth regression,
// recording an explicit skip reason for any section whose data
// preconditions fail. Structural errors from sparse data degrade to skips;
// anything else would abort reporting for the whole batch.
func (s *ReportService) buildStatistics(results []*experiment.Result) report.Statistics {
	var out report.Statistics

	groups := anova.GroupsFromObservations(GroupedEfficiencies(results))
	sig, err := s.anova.OneWay(groups)
	switch {
	case err == nil:
		out.ANOVA = &sig
	case core.IsDataError(err):
		out.ANOVASkipped = err.Error()
		s.log.Warn("skipping batch ANOVA", "reason", err)
	default:
		out.ANOVASkipped = err.Error()
		s.log.Error("batch ANOVA failed", "error", err)
	}

	points := BandwidthPoints(results)
	reg, err := s.curvefit.Fit(points)
	switch {
	case err == nil:
		out.Regression = &reg
	case core.IsDataError(err) || errors.Is(err, core.ErrInvalidConfig):
		out.RegressionSkipped = err.Error()
		s.log.Warn("skipping bandwidth regression", "reason", err)
	default:
		out.RegressionSkipped = err.Error()
		s.log.Error("bandwidth regression failed", "error", err)
	}

	return out
}
