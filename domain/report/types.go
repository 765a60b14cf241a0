// Package report defines the data-only reporting contract. Visualization
// payloads are named numeric/categorical series so any rendering technology
// can consume them; no charting library leaks into this package.
package report

import (
	"coordlab/domain/analysis"
	"coordlab/domain/core"
	"coordlab/domain/experiment"
)

// Metadata describes the batch the report covers.
type Metadata struct {
	GeneratedAt    core.Timestamp `json:"generated_at"`
	NumExperiments int            `json:"num_experiments"`
	TotalRuns      int            `json:"total_runs"`
}

// ExecutiveSummary is the headline comparison across the batch.
type ExecutiveSummary struct {
	BestExperiment  string  `json:"best_experiment"`
	BestEfficiency  float64 `json:"best_efficiency"`
	WorstExperiment string  `json:"worst_experiment"`
	WorstEfficiency float64 `json:"worst_efficiency"`
	MeanAcrossAll   float64 `json:"mean_across_all"`
	StdAcrossAll    float64 `json:"std_across_all"`
}

// DetailedResult summarizes one experiment for the report body.
type DetailedResult struct {
	Name             string            `json:"name"`
	EfficiencyMean   float64           `json:"efficiency_mean"`
	EfficiencyStd    float64           `json:"efficiency_std"`
	CoordinationMean float64           `json:"coordination_mean"`
	FoodMean         float64           `json:"food_mean"`
	DangersMean      float64           `json:"dangers_mean"`
	Config           experiment.Config `json:"config"`
}

// BarSeries is category labels with values and optional symmetric error
// bars, e.g. mean efficiency with one standard deviation.
type BarSeries struct {
	Labels    []string  `json:"labels"`
	Values    []float64 `json:"values"`
	ErrorBars []float64 `json:"error_bars,omitempty"`
}

// PercentSeries is category labels with ratio values meant to be formatted
// as percentages by the renderer.
type PercentSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// RadarSeries is one experiment's values over a shared set of axes.
type RadarSeries struct {
	Name   string    `json:"name"`
	Axes   []string  `json:"axes"`
	Values []float64 `json:"values"`
}

// Visualizations carries the chart data series. Radar is nil when the batch
// exceeds MaxRadarExperiments - omitted rather than rendered illegibly.
type Visualizations struct {
	EfficiencyComparison   BarSeries     `json:"efficiency_comparison"`
	CoordinationComparison PercentSeries `json:"coordination_comparison"`
	Radar                  []RadarSeries `json:"radar,omitempty"`
}

// MaxRadarExperiments caps the radar view.
const MaxRadarExperiments = 5

// Statistics holds the inferential sections. A nil section with a non-empty
// Skipped reason means "not computed because data was insufficient", which
// is distinct from a computed null result.
type Statistics struct {
	ANOVA             *analysis.SignificanceResult `json:"anova,omitempty"`
	ANOVASkipped      string                       `json:"anova_skipped,omitempty"`
	Regression        *analysis.RegressionResult   `json:"regression,omitempty"`
	RegressionSkipped string                       `json:"regression_skipped,omitempty"`
}

// Report is the full structured output handed to report consumers.
type Report struct {
	Metadata         Metadata         `json:"metadata"`
	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	DetailedResults  []DetailedResult `json:"detailed_results"`
	Visualizations   Visualizations   `json:"visualizations"`
	Statistics       Statistics       `json:"statistics"`
}
